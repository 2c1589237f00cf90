package repository

const (
	createChannel = `INSERT INTO youtube_channel (channel_url, youtube_id, channel_name, api_key, description, avatar_image,
						banner_image, subscriber_count, video_count, view_count, last_sync_at, created_by, created_at)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), $11, now())
						RETURNING *`

	grantOwnerAccess = `INSERT INTO youtube_channel_access (channel_id, user_id, can_view, can_edit, can_delete, created_by, created_at)
						VALUES ($1, $2, true, true, true, $2, now())`

	getChannelByID = `SELECT * FROM youtube_channel WHERE id = $1`

	getTotalChannels = `SELECT COUNT(*) FROM youtube_channel c
						WHERE $2 OR EXISTS (SELECT 1 FROM youtube_channel_access a
											WHERE a.channel_id = c.id AND a.user_id = $1 AND a.can_view)`

	getChannels = `SELECT c.* FROM youtube_channel c
						WHERE $2 OR EXISTS (SELECT 1 FROM youtube_channel_access a
											WHERE a.channel_id = c.id AND a.user_id = $1 AND a.can_view)
						ORDER BY c.created_at DESC, c.id DESC
						OFFSET $3 LIMIT $4`

	updateChannel = `UPDATE youtube_channel
						SET channel_url = $1,
							youtube_id = $2,
							channel_name = $3,
							api_key = $4,
							description = $5,
							avatar_image = $6,
							banner_image = $7,
							subscriber_count = $8,
							video_count = $9,
							view_count = $10,
							last_sync_at = $11,
							updated_by = $12,
							updated_at = now()
						WHERE id = $13
						RETURNING *`

	deleteChannel = `DELETE FROM youtube_channel WHERE id = $1`

	getAccess = `SELECT * FROM youtube_channel_access WHERE channel_id = $1 AND user_id = $2`

	upsertAccess = `INSERT INTO youtube_channel_access (channel_id, user_id, can_view, can_edit, can_delete, created_by, created_at)
						VALUES ($1, $2, $3, $4, $5, $6, now())
						ON CONFLICT (channel_id, user_id) DO UPDATE
						SET can_view = EXCLUDED.can_view, can_edit = EXCLUDED.can_edit, can_delete = EXCLUDED.can_delete
						RETURNING *`

	upsertVideo = `INSERT INTO youtube_video (channel_id, video_id, title, description, thumbnail_url, is_live, published_at, created_at)
						VALUES ($1, $2, $3, $4, $5, $6, $7, now())
						ON CONFLICT (channel_id, video_id) DO UPDATE
						SET title = EXCLUDED.title,
							description = EXCLUDED.description,
							thumbnail_url = EXCLUDED.thumbnail_url,
							is_live = EXCLUDED.is_live,
							published_at = COALESCE(EXCLUDED.published_at, youtube_video.published_at)
						RETURNING *`

	getTotalVideos = `SELECT COUNT(*) FROM youtube_video WHERE channel_id = $1`

	getVideos = `SELECT * FROM youtube_video WHERE channel_id = $1
						ORDER BY published_at DESC NULLS LAST, id DESC
						OFFSET $2 LIMIT $3`
)
