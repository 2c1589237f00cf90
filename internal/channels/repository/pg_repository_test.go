package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var channelColumns = []string{
	"id", "channel_url", "youtube_id", "channel_name", "api_key", "description", "avatar_image", "banner_image",
	"subscriber_count", "video_count", "view_count", "last_sync_at", "created_by", "updated_by", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*channelsRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &channelsRepo{db: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestChannelsRepo_CreateGrantsOwnerAccess(t *testing.T) {
	repo, mock := newMockRepo(t)
	owner := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO youtube_channel (")).
		WillReturnRows(sqlmock.NewRows(channelColumns).AddRow(
			7, "https://www.youtube.com/@go", "UC1", "Go", "sealed", nil, nil, nil, 10, 2, 100, now, owner, nil, now, nil,
		))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO youtube_channel_access")).
		WithArgs(int64(7), owner).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	c, err := repo.Create(context.Background(), &models.Channel{
		ChannelURL: "https://www.youtube.com/@go", YoutubeID: "UC1", Name: "Go", APIKey: "sealed", CreatedBy: owner,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, c.ID)
	assert.EqualValues(t, 10, c.SubscriberCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChannelsRepo_CreateRollsBackOnAccessFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	owner := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO youtube_channel (")).
		WillReturnRows(sqlmock.NewRows(channelColumns).AddRow(
			7, "u", "UC1", "Go", "sealed", nil, nil, nil, 0, 0, 0, now, owner, nil, now, nil,
		))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO youtube_channel_access")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &models.Channel{CreatedBy: owner})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChannelsRepo_GetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM youtube_channel WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(channelColumns))

	_, err := repo.GetByID(context.Background(), 9)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestChannelsRepo_ListEmptySkipsSelect(t *testing.T) {
	repo, mock := newMockRepo(t)
	user := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM youtube_channel c")).
		WithArgs(user, false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	list, err := repo.List(context.Background(), user, false, &utils.Pagination{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, list.TotalCount)
	assert.Empty(t, list.Channels)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChannelsRepo_UpsertVideo(t *testing.T) {
	repo, mock := newMockRepo(t)
	published := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (channel_id, video_id) DO UPDATE")).
		WithArgs(int64(3), "abc", "Title", nil, nil, false, &published).
		WillReturnRows(sqlmock.NewRows([]string{"id", "channel_id", "video_id", "title", "description", "thumbnail_url", "is_live", "published_at", "created_at"}).
			AddRow(11, 3, "abc", "Title", nil, nil, false, published, time.Now()))

	v, err := repo.UpsertVideo(context.Background(), &models.Video{ChannelID: 3, VideoID: "abc", Title: "Title", PublishedAt: &published})
	require.NoError(t, err)
	assert.EqualValues(t, 11, v.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
