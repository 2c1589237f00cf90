package usecase

import (
	"context"

	"github.com/amankumarsingh77/channel-monitor/internal/auth"
	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type authUC struct {
	cfg      *config.Config
	authRepo auth.Repository
	logger   logger.Logger
}

func NewAuthUseCase(cfg *config.Config, authRepo auth.Repository, log logger.Logger) auth.UseCase {
	return &authUC{
		cfg:      cfg,
		authRepo: authRepo,
		logger:   log,
	}
}

func (u *authUC) Register(ctx context.Context, user *models.User) (*models.UserWithToken, error) {
	_, err := u.authRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return nil, apperrors.Conflict("user with email %s already exists", user.Email)
	}
	if !apperrors.IsNotFound(err) {
		u.logger.Errorf("Register - FindByEmail error: %v", err)
		return nil, errors.Wrap(err, "authUC.Register.FindByEmail")
	}

	if err = user.PrepareCreate(); err != nil {
		return nil, apperrors.Validation("%v", err)
	}
	createdUser, err := u.authRepo.Register(ctx, user)
	if err != nil {
		u.logger.Errorf("Register - Register error: %v", err)
		return nil, errors.Wrap(err, "authUC.Register.Register")
	}
	createdUser.SanitizePassword()

	token, err := utils.GenerateJWTToken(createdUser, u.cfg)
	if err != nil {
		return nil, errors.Wrap(err, "authUC.Register.GenerateJWTToken")
	}
	return &models.UserWithToken{
		User:  createdUser,
		Token: token,
	}, nil
}

func (u *authUC) Login(ctx context.Context, input *models.LoginInput) (*models.UserWithToken, error) {
	existUser, err := u.authRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Forbidden("invalid credentials")
		}
		u.logger.Errorf("Login - FindByEmail error: %v", err)
		return nil, errors.Wrap(err, "authUC.Login.FindByEmail")
	}
	if err = existUser.ComparePassword(input.Password); err != nil {
		return nil, apperrors.Forbidden("invalid credentials")
	}
	existUser.SanitizePassword()

	token, err := utils.GenerateJWTToken(existUser, u.cfg)
	if err != nil {
		return nil, errors.Wrap(err, "authUC.Login.GenerateJWTToken")
	}
	return &models.UserWithToken{
		User:  existUser,
		Token: token,
	}, nil
}

func (u *authUC) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := u.authRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.SanitizePassword()
	return user, nil
}
