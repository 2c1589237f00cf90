package repository

const (
	createMonitoring = `INSERT INTO youtube_monitoring (channel_id, name, is_continuous, interval_time, status, next_check_at, created_by, created_at)
						VALUES ($1, $2, $3, $4, $5, $6, $7, now())
						RETURNING *`

	addMonitoringVideo = `INSERT INTO monitoring_video (monitoring_id, video_id, status, created_by, created_at)
						VALUES ($1, $2, 'pending', $3, now())
						ON CONFLICT (monitoring_id, video_id) DO NOTHING`

	addMonitoringPlaylist = `INSERT INTO monitoring_playlist (monitoring_id, playlist_id, created_at)
						VALUES ($1, $2, now())
						ON CONFLICT (monitoring_id, playlist_id) DO NOTHING`

	deleteMonitoringPlaylists = `DELETE FROM monitoring_playlist WHERE monitoring_id = $1`

	getMonitoringPlaylists = `SELECT playlist_id FROM monitoring_playlist WHERE monitoring_id = $1 ORDER BY id`

	getMonitoringByID = `SELECT * FROM youtube_monitoring WHERE id = $1`

	getMonitoringDetails = `SELECT m.*,
							COUNT(mv.id) AS total_videos,
							COUNT(mv.id) FILTER (WHERE mv.status = 'completed') AS processed_videos
						FROM youtube_monitoring m
						LEFT JOIN monitoring_video mv ON mv.monitoring_id = m.id
						WHERE m.id = $1
						GROUP BY m.id`

	getTotalMonitorings = `SELECT COUNT(*) FROM youtube_monitoring m
						WHERE ($2 OR EXISTS (SELECT 1 FROM youtube_channel_access a
											WHERE a.channel_id = m.channel_id AND a.user_id = $1 AND a.can_view))
						AND ($3::monitoring_status IS NULL OR m.status = $3::monitoring_status)`

	getMonitorings = `SELECT m.id, m.name, m.channel_id, c.channel_name, c.avatar_image AS channel_avatar,
							m.status, m.is_continuous, m.interval_time, m.created_at, m.last_check_at, m.next_check_at,
							COUNT(mv.id) AS total_videos,
							COUNT(mv.id) FILTER (WHERE mv.status = 'completed') AS processed_videos
						FROM youtube_monitoring m
						JOIN youtube_channel c ON c.id = m.channel_id
						LEFT JOIN monitoring_video mv ON mv.monitoring_id = m.id
						WHERE ($2 OR EXISTS (SELECT 1 FROM youtube_channel_access a
											WHERE a.channel_id = m.channel_id AND a.user_id = $1 AND a.can_view))
						AND ($3::monitoring_status IS NULL OR m.status = $3::monitoring_status)
						GROUP BY m.id, c.id
						ORDER BY m.created_at DESC, m.id DESC
						OFFSET $4 LIMIT $5`

	updateMonitoring = `UPDATE youtube_monitoring
						SET name = $1,
							is_continuous = $2,
							interval_time = $3,
							status = $4,
							next_check_at = $5,
							updated_by = $6,
							updated_at = now()
						WHERE id = $7
						RETURNING *`

	deleteMonitoring = `DELETE FROM youtube_monitoring WHERE id = $1`

	setMonitoringStatus = `UPDATE youtube_monitoring
						SET status = $2::monitoring_status,
							next_check_at = CASE WHEN $2::monitoring_status = 'active' AND is_continuous
												THEN COALESCE(next_check_at, now())
												ELSE next_check_at END,
							updated_at = now()
						WHERE id = $1`

	countChannelVideos = `SELECT COUNT(DISTINCT id) FROM youtube_video WHERE channel_id = ? AND id IN (?)`

	selectMonitoringVideos = `SELECT mv.*, v.video_id AS youtube_video_id, v.title, m.channel_id
						FROM monitoring_video mv
						JOIN youtube_video v ON v.id = mv.video_id
						JOIN youtube_monitoring m ON m.id = mv.monitoring_id`

	listMonitoringVideos = selectMonitoringVideos + `
						WHERE mv.monitoring_id = $1
						ORDER BY mv.id`

	listEligibleVideos = selectMonitoringVideos + `
						WHERE mv.monitoring_id = $1 AND mv.status IN ('pending', 'paused', 'error')
						ORDER BY mv.id ASC`

	getMonitoringVideo = selectMonitoringVideos + `
						WHERE mv.id = $1`

	setVideoStatus = `UPDATE monitoring_video
						SET status = $2, error_message = $3, updated_at = now()
						WHERE id = $1`

	pauseDownloading = `UPDATE monitoring_video
						SET status = 'paused', updated_at = now()
						WHERE monitoring_id = $1 AND status = 'downloading'`

	listDueMonitorings = `SELECT * FROM youtube_monitoring
						WHERE status = 'active' AND is_continuous AND next_check_at <= $1
						ORDER BY next_check_at, id`

	markChecked = `UPDATE youtube_monitoring
						SET last_check_at = $2, next_check_at = $3, updated_at = now()
						WHERE id = $1`
)
