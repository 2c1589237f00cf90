package repository

const (
	getMonitoringVideo = `SELECT mv.*, v.video_id AS youtube_video_id, v.title, m.channel_id
						FROM monitoring_video mv
						JOIN youtube_video v ON v.id = mv.video_id
						JOIN youtube_monitoring m ON m.id = mv.monitoring_id
						WHERE mv.id = $1`

	markDownloading = `UPDATE monitoring_video
						SET status = 'downloading',
							download_progress = 0,
							download_started_at = now(),
							download_completed_at = NULL,
							project_path = $2,
							error_message = NULL,
							updated_at = now()
						WHERE id = $1
						RETURNING download_started_at`

	updateProgress = `UPDATE monitoring_video
						SET download_progress = GREATEST(download_progress, $2), updated_at = now()
						WHERE id = $1`

	markCompleted = `UPDATE monitoring_video
						SET status = 'completed',
							download_progress = 100,
							source_path = $2,
							archive_key = $3,
							download_completed_at = now(),
							error_message = NULL,
							updated_at = now()
						WHERE id = $1`

	markFailed = `UPDATE monitoring_video
						SET status = 'error', error_message = $2, download_completed_at = now(), updated_at = now()
						WHERE id = $1`

	markInterrupted = `UPDATE monitoring_video
						SET status = 'paused', error_message = $2, updated_at = now()
						WHERE id = $1`
)
