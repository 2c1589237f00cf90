package models

import (
	"time"

	"github.com/google/uuid"
)

type Channel struct {
	ID              int64      `json:"id" db:"id"`
	ChannelURL      string     `json:"channel_url" db:"channel_url"`
	YoutubeID       string     `json:"youtube_id" db:"youtube_id"`
	Name            string     `json:"channel_name" db:"channel_name"`
	APIKey          string     `json:"-" db:"api_key"`
	Description     *string    `json:"description" db:"description"`
	AvatarImage     *string    `json:"avatar_image" db:"avatar_image"`
	BannerImage     *string    `json:"banner_image" db:"banner_image"`
	SubscriberCount int64      `json:"subscriber_count" db:"subscriber_count"`
	VideoCount      int64      `json:"video_count" db:"video_count"`
	ViewCount       int64      `json:"view_count" db:"view_count"`
	LastSyncAt      *time.Time `json:"last_sync_at" db:"last_sync_at"`
	CreatedBy       uuid.UUID  `json:"created_by" db:"created_by"`
	UpdatedBy       *uuid.UUID `json:"updated_by" db:"updated_by"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at" db:"updated_at"`
}

// ApplyInfo copies provider metadata onto the stored channel.
func (c *Channel) ApplyInfo(info *ChannelInfo) {
	c.Name = info.Title
	c.Description = optional(info.Description)
	c.AvatarImage = optional(info.AvatarImage)
	c.BannerImage = optional(info.BannerImage)
	c.SubscriberCount = info.SubscriberCount
	c.VideoCount = info.VideoCount
	c.ViewCount = info.ViewCount
}

type CreateChannelInput struct {
	ChannelURL string `json:"channel_url" validate:"required,url"`
	APIKey     string `json:"api_key" validate:"required"`
}

type UpdateChannelInput struct {
	ChannelURL *string `json:"channel_url" validate:"omitempty,url"`
	APIKey     *string `json:"api_key" validate:"omitempty,min=1"`
}

type Permission string

const (
	PermissionView   Permission = "view"
	PermissionEdit   Permission = "edit"
	PermissionDelete Permission = "delete"
)

type ChannelAccess struct {
	ID        int64     `json:"id" db:"id"`
	ChannelID int64     `json:"channel_id" db:"channel_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" validate:"required"`
	CanView   bool      `json:"can_view" db:"can_view"`
	CanEdit   bool      `json:"can_edit" db:"can_edit"`
	CanDelete bool      `json:"can_delete" db:"can_delete"`
	CreatedBy uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Allows reports whether the access row grants p.
func (a *ChannelAccess) Allows(p Permission) bool {
	switch p {
	case PermissionView:
		return a.CanView
	case PermissionEdit:
		return a.CanEdit
	case PermissionDelete:
		return a.CanDelete
	default:
		return false
	}
}

type ChannelList struct {
	TotalCount int        `json:"total_count"`
	TotalPages int        `json:"total_pages"`
	Page       int        `json:"page"`
	Size       int        `json:"size"`
	HasMore    bool       `json:"has_more"`
	Channels   []*Channel `json:"channels"`
}

// Video is the stored metadata of a platform video, shared by every job that links it.
type Video struct {
	ID           int64      `json:"id" db:"id"`
	ChannelID    int64      `json:"channel_id" db:"channel_id"`
	VideoID      string     `json:"video_id" db:"video_id"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description" db:"description"`
	ThumbnailURL *string    `json:"thumbnail_url" db:"thumbnail_url"`
	IsLive       bool       `json:"is_live" db:"is_live"`
	PublishedAt  *time.Time `json:"published_at" db:"published_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// ChannelInfo is what the metadata provider reports about a channel.
type ChannelInfo struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	AvatarImage     string `json:"avatar_image"`
	BannerImage     string `json:"banner_image"`
	SubscriberCount int64  `json:"subscriber_count"`
	VideoCount      int64  `json:"video_count"`
	ViewCount       int64  `json:"view_count"`
}

type VideoInfo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	IsLive       bool      `json:"is_live"`
	PublishedAt  time.Time `json:"published_at"`
}

// ToVideo builds the stored row for channelID.
func (v *VideoInfo) ToVideo(channelID int64) *Video {
	video := &Video{
		ChannelID:    channelID,
		VideoID:      v.ID,
		Title:        v.Title,
		Description:  optional(v.Description),
		ThumbnailURL: optional(v.ThumbnailURL),
		IsLive:       v.IsLive,
	}
	if !v.PublishedAt.IsZero() {
		published := v.PublishedAt
		video.PublishedAt = &published
	}
	return video
}

type PlaylistInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	ItemCount    int64  `json:"item_count"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type VideoList struct {
	TotalCount int      `json:"total_count"`
	TotalPages int      `json:"total_pages"`
	Page       int      `json:"page"`
	Size       int      `json:"size"`
	HasMore    bool     `json:"has_more"`
	Videos     []*Video `json:"videos"`
}

// GrantAccessInput sets the permissions of one user on a channel.
type GrantAccessInput struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	CanView   bool      `json:"can_view"`
	CanEdit   bool      `json:"can_edit"`
	CanDelete bool      `json:"can_delete"`
}
