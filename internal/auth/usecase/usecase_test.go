package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Register(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var testCfg = &config.Config{Server: config.ServerConfig{JwtSecretKey: "test-secret"}}

func TestAuthUC_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByEmail", ctx, "a@b.co").Return(&models.User{}, nil)

		_, err := NewAuthUseCase(testCfg, repo, logger.NewNop()).Register(ctx, &models.User{Email: "a@b.co"})
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("creates user and token", func(t *testing.T) {
		repo := new(mockRepo)
		id := uuid.New()
		repo.On("FindByEmail", ctx, "new@b.co").Return(nil, apperrors.NotFound("missing"))
		repo.On("Register", ctx, mock.AnythingOfType("*models.User")).
			Return(&models.User{UserID: id, Email: "new@b.co", Password: "hash", Role: models.UserRole}, nil)

		res, err := NewAuthUseCase(testCfg, repo, logger.NewNop()).Register(ctx, &models.User{
			Email: "new@b.co", Username: "new", Password: "password123",
		})
		require.NoError(t, err)
		assert.Empty(t, res.User.Password)

		claims, err := utils.ValidateToken(res.Token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, id.String(), claims.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByEmail", ctx, "x@b.co").Return(nil, errors.New("db down"))

		_, err := NewAuthUseCase(testCfg, repo, logger.NewNop()).Register(ctx, &models.User{Email: "x@b.co"})
		assert.Error(t, err)
		assert.False(t, apperrors.IsConflict(err))
	})
}

func TestAuthUC_Login(t *testing.T) {
	ctx := context.Background()
	stored := &models.User{UserID: uuid.New(), Email: "a@b.co", Password: "password123"}
	require.NoError(t, stored.HashPassword())

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "password123", false},
		{"wrong password", "nope", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			copyUser := *stored
			repo := new(mockRepo)
			repo.On("FindByEmail", ctx, "a@b.co").Return(&copyUser, nil)

			res, err := NewAuthUseCase(testCfg, repo, logger.NewNop()).Login(ctx, &models.LoginInput{Email: "a@b.co", Password: tt.password})
			if tt.wantErr {
				assert.True(t, apperrors.IsAuthorization(err))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, res.Token)
		})
	}
}
