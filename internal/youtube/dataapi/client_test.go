package dataapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	factory := NewClientFactory(config.YouTubeConfig{
		RequestsPerSecond: 100,
		Burst:             10,
		MaxRetries:        2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
	}, logger.NewNop(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))

	p, err := factory.ForKey(context.Background(), "test-key")
	require.NoError(t, err)
	return p.(*client)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_GetChannelInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/channels"))
		assert.Equal(t, "UC123", r.URL.Query().Get("id"))
		writeJSON(w, map[string]interface{}{
			"items": []map[string]interface{}{{
				"id": "UC123",
				"snippet": map[string]interface{}{
					"title":       "Go Channel",
					"description": "gophers",
					"thumbnails":  map[string]interface{}{"high": map[string]string{"url": "https://img/high.jpg"}},
				},
				"statistics":       map[string]string{"subscriberCount": "42", "videoCount": "7", "viewCount": "1000"},
				"brandingSettings": map[string]interface{}{"image": map[string]string{"bannerExternalUrl": "https://img/banner.jpg"}},
			}},
		})
	})

	info, err := c.GetChannelInfo(context.Background(), "UC123")
	require.NoError(t, err)
	assert.Equal(t, "Go Channel", info.Title)
	assert.Equal(t, "https://img/high.jpg", info.AvatarImage)
	assert.Equal(t, "https://img/banner.jpg", info.BannerImage)
	assert.EqualValues(t, 42, info.SubscriberCount)
	assert.EqualValues(t, 7, info.VideoCount)
}

func TestClient_GetChannelInfoNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"items": []interface{}{}})
	})

	_, err := c.GetChannelInfo(context.Background(), "UCmissing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClient_GetRecentVideos(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/search"):
			assert.Equal(t, "date", r.URL.Query().Get("order"))
			assert.Equal(t, "UC123", r.URL.Query().Get("channelId"))
			writeJSON(w, map[string]interface{}{
				"items": []map[string]interface{}{
					{"id": map[string]string{"kind": "youtube#video", "videoId": "v1"}},
					{"id": map[string]string{"kind": "youtube#video", "videoId": "v2"}},
				},
			})
		case strings.HasSuffix(r.URL.Path, "/videos"):
			writeJSON(w, map[string]interface{}{
				"items": []map[string]interface{}{
					{"id": "v1", "snippet": map[string]string{"title": "first", "publishedAt": "2024-05-01T10:00:00Z"}},
					{"id": "v2", "snippet": map[string]string{"title": "live now"}, "liveStreamingDetails": map[string]string{"actualStartTime": "2024-05-02T10:00:00Z"}},
				},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	videos, err := c.GetRecentVideos(context.Background(), "UC123", 5)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "v1", videos[0].ID)
	assert.False(t, videos[0].IsLive)
	assert.Equal(t, 2024, videos[0].PublishedAt.Year())
	assert.True(t, videos[1].IsLive)
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			writeJSON(w, map[string]interface{}{"error": map[string]interface{}{"code": 503, "message": "backend"}})
			return
		}
		writeJSON(w, map[string]interface{}{
			"items": []map[string]interface{}{{"id": "PL1", "snippet": map[string]string{"title": "Talks"}, "contentDetails": map[string]int{"itemCount": 3}}},
		})
	})

	playlists, err := c.GetPlaylists(context.Background(), "UC123")
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Equal(t, "PL1", playlists[0].ID)
	assert.EqualValues(t, 3, playlists[0].ItemCount)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestClient_InvalidKeyIsNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","errors":[{"reason":"keyInvalid"}]}}`))
	})

	_, err := c.GetPlaylists(context.Background(), "UC123")
	assert.True(t, apperrors.IsValidation(err))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestClient_ResolveChannelID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/channels"))
		assert.Equal(t, "GoogleDevelopers", r.URL.Query().Get("forHandle"))
		writeJSON(w, map[string]interface{}{"items": []map[string]string{{"id": "UC_x5XG1OV2P6uZZ5FSM9Ttw"}}})
	})

	id, err := c.ResolveChannelID(context.Background(), "https://www.youtube.com/@GoogleDevelopers")
	require.NoError(t, err)
	assert.Equal(t, "UC_x5XG1OV2P6uZZ5FSM9Ttw", id)

	id, err = c.ResolveChannelID(context.Background(), "https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw")
	require.NoError(t, err)
	assert.Equal(t, "UC_x5XG1OV2P6uZZ5FSM9Ttw", id)
}

func TestForKey_RequiresKey(t *testing.T) {
	_, err := NewClientFactory(config.YouTubeConfig{}, logger.NewNop()).ForKey(context.Background(), "")
	assert.True(t, apperrors.IsValidation(err))
}
