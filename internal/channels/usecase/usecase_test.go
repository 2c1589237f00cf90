package usecase

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/youtube"
	ytrepo "github.com/amankumarsingh77/channel-monitor/internal/youtube/repository"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/secret"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, channel *models.Channel) (*models.Channel, error) {
	args := m.Called(ctx, channel)
	if v, ok := args.Get(0).(*models.Channel); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, channelID int64) (*models.Channel, error) {
	args := m.Called(ctx, channelID)
	if v, ok := args.Get(0).(*models.Channel); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, userID uuid.UUID, all bool, pq *utils.Pagination) (*models.ChannelList, error) {
	args := m.Called(ctx, userID, all, pq)
	if v, ok := args.Get(0).(*models.ChannelList); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, channel *models.Channel) (*models.Channel, error) {
	args := m.Called(ctx, channel)
	if v, ok := args.Get(0).(*models.Channel); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, channelID int64) error {
	return m.Called(ctx, channelID).Error(0)
}

func (m *mockRepo) GetAccess(ctx context.Context, channelID int64, userID uuid.UUID) (*models.ChannelAccess, error) {
	args := m.Called(ctx, channelID, userID)
	if v, ok := args.Get(0).(*models.ChannelAccess); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpsertAccess(ctx context.Context, access *models.ChannelAccess) (*models.ChannelAccess, error) {
	args := m.Called(ctx, access)
	if v, ok := args.Get(0).(*models.ChannelAccess); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpsertVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	args := m.Called(ctx, video)
	if v, ok := args.Get(0).(*models.Video); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListVideos(ctx context.Context, channelID int64, pq *utils.Pagination) (*models.VideoList, error) {
	args := m.Called(ctx, channelID, pq)
	if v, ok := args.Get(0).(*models.VideoList); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type fakeProvider struct {
	keys      []string
	info      *models.ChannelInfo
	playlists []*models.PlaylistInfo
}

func (f *fakeProvider) ForKey(_ context.Context, apiKey string) (youtube.MetadataProvider, error) {
	f.keys = append(f.keys, apiKey)
	return f, nil
}

func (f *fakeProvider) ResolveChannelID(_ context.Context, channelURL string) (string, error) {
	ref, err := youtube.ParseChannelURL(channelURL)
	if err != nil {
		return "", err
	}
	return "UC-" + ref.Value, nil
}

func (f *fakeProvider) GetChannelInfo(context.Context, string) (*models.ChannelInfo, error) {
	return f.info, nil
}

func (f *fakeProvider) GetRecentVideos(context.Context, string, int) ([]*models.VideoInfo, error) {
	return nil, nil
}

func (f *fakeProvider) GetPlaylists(context.Context, string) ([]*models.PlaylistInfo, error) {
	return f.playlists, nil
}

type fixture struct {
	repo     *mockRepo
	provider *fakeProvider
	box      *secret.Box
	uc       *channelsUC
}

func newFixture(t *testing.T) *fixture {
	box, err := secret.NewBox("test-passphrase")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := &fixture{
		repo:     new(mockRepo),
		provider: &fakeProvider{info: &models.ChannelInfo{Title: "Go", SubscriberCount: 5}},
		box:      box,
	}
	f.uc = NewChannelsUseCase(f.repo, f.provider, ytrepo.NewYoutubeRedisRepo(client), box, logger.NewNop()).(*channelsUC)
	return f
}

func TestChannelsUC_Authorize(t *testing.T) {
	ctx := context.Background()
	user := &models.User{UserID: uuid.New(), Role: models.UserRole}

	tests := []struct {
		name      string
		access    *models.ChannelAccess
		accessErr error
		perm      models.Permission
		wantErr   bool
	}{
		{"view granted", &models.ChannelAccess{CanView: true}, nil, models.PermissionView, false},
		{"edit missing", &models.ChannelAccess{CanView: true}, nil, models.PermissionEdit, true},
		{"no access row", nil, apperrors.NotFound("none"), models.PermissionView, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.On("GetAccess", ctx, int64(1), user.UserID).Return(tt.access, tt.accessErr)

			err := f.uc.Authorize(ctx, user, 1, tt.perm)
			if tt.wantErr {
				assert.True(t, apperrors.IsAuthorization(err))
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("admin bypasses access rows", func(t *testing.T) {
		f := newFixture(t)
		admin := &models.User{UserID: uuid.New(), Role: models.AdminRole}
		assert.NoError(t, f.uc.Authorize(ctx, admin, 1, models.PermissionDelete))
		f.repo.AssertNotCalled(t, "GetAccess", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestChannelsUC_CreateEncryptsKey(t *testing.T) {
	f := newFixture(t)
	user := &models.User{UserID: uuid.New(), Role: models.UserRole}
	ctx := utils.WithUser(context.Background(), user)

	f.repo.On("Create", ctx, mock.MatchedBy(func(c *models.Channel) bool {
		plain, err := f.box.Decrypt(c.APIKey)
		return err == nil && plain == "raw-key" && c.YoutubeID == "UC-golang" && c.Name == "Go" && c.CreatedBy == user.UserID
	})).Return(&models.Channel{ID: 3}, nil)

	ch, err := f.uc.Create(ctx, &models.CreateChannelInput{ChannelURL: "https://www.youtube.com/@golang", APIKey: "raw-key"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, ch.ID)
	assert.Equal(t, []string{"raw-key"}, f.provider.keys)
	f.repo.AssertExpectations(t)
}

func TestChannelsUC_ListPlaylistsUsesStoredKey(t *testing.T) {
	f := newFixture(t)
	user := &models.User{UserID: uuid.New(), Role: models.UserRole}
	ctx := utils.WithUser(context.Background(), user)
	sealed, err := f.box.Encrypt("stored-key")
	require.NoError(t, err)
	f.provider.playlists = []*models.PlaylistInfo{{ID: "PL1"}}

	f.repo.On("GetByID", ctx, int64(4)).Return(&models.Channel{ID: 4, YoutubeID: "UC4", APIKey: sealed}, nil)
	f.repo.On("GetAccess", ctx, int64(4), user.UserID).Return(&models.ChannelAccess{CanView: true}, nil)

	playlists, err := f.uc.ListPlaylists(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, playlists, 1)
	assert.Equal(t, []string{"stored-key"}, f.provider.keys)
}

func TestChannelsUC_GetByIDMissingChannel(t *testing.T) {
	f := newFixture(t)
	ctx := utils.WithUser(context.Background(), &models.User{UserID: uuid.New()})
	f.repo.On("GetByID", ctx, int64(8)).Return(nil, apperrors.NotFound("channel 8 not found"))

	_, err := f.uc.GetByID(ctx, 8)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestChannelsUC_GrantAccessImpliesView(t *testing.T) {
	f := newFixture(t)
	admin := &models.User{UserID: uuid.New(), Role: models.AdminRole}
	ctx := utils.WithUser(context.Background(), admin)
	target := uuid.New()

	f.repo.On("GetByID", ctx, int64(2)).Return(&models.Channel{ID: 2}, nil)
	f.repo.On("UpsertAccess", ctx, &models.ChannelAccess{
		ChannelID: 2, UserID: target, CanView: true, CanEdit: true, CreatedBy: admin.UserID,
	}).Return(&models.ChannelAccess{ID: 1}, nil)

	_, err := f.uc.GrantAccess(ctx, 2, &models.GrantAccessInput{UserID: target, CanEdit: true})
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}
