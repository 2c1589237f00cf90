package models

import "time"

// ProjectSubdirs are created under every job's project root.
var ProjectSubdirs = []string{"source", "audios", "videos", "docs", "legendas", "assets", "imagens", "voices", "lives"}

// ProgressEvent is pushed to the live subscriber of a download.
type ProgressEvent struct {
	Progress float64  `json:"progress"`
	Status   string   `json:"status"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Speed    *float64 `json:"speed,omitempty"`
	ETA      *int     `json:"eta,omitempty"`
}

const (
	EventDownloading = "downloading"
	EventCompleted   = "completed"
	EventError       = "error"
	EventPaused      = "paused"
)

// TransferProgress is one engine report of bytes moved so far.
type TransferProgress struct {
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
	// BytesPerSecond is zero when unknown.
	BytesPerSecond float64
	ETA            time.Duration
	Title          string
}

// Percent returns downloaded over the exact total, falling back to the estimate, else 0.
func (p TransferProgress) Percent() float64 {
	total := p.TotalBytes
	if total <= 0 {
		total = p.TotalBytesEstimate
	}
	if total <= 0 || p.DownloadedBytes <= 0 {
		return 0
	}
	pct := float64(p.DownloadedBytes) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// FetchResult is what the engine reports after a finished transfer.
type FetchResult struct {
	FilePath string
	Title    string
}

type DownloadRequest struct {
	URL     string `json:"url" validate:"required,url"`
	VideoID int64  `json:"video_id" validate:"required,gt=0"`
}

// TransferHandle lets the caller join or cancel a running transfer.
type TransferHandle interface {
	Done() <-chan struct{}
	Err() error
	Cancel()
}

type DownloadStatus struct {
	Step        string     `json:"step"`
	Progress    float64    `json:"progress"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// DownloadDescriptor is returned as soon as a transfer is launched.
type DownloadDescriptor struct {
	ID             int64             `json:"id"`
	MonitoringID   int64             `json:"monitoring_id"`
	URL            string            `json:"url"`
	Title          string            `json:"title"`
	ProjectPath    string            `json:"project_path"`
	VideoPath      string            `json:"video_path"`
	Directories    map[string]string `json:"directories"`
	Metadata       map[string]string `json:"metadata"`
	DownloadStatus DownloadStatus    `json:"download_status"`

	Handle TransferHandle `json:"-"`
}

// ProgressSnapshot is the last known state of a transfer.
type ProgressSnapshot struct {
	VideoID   int64     `json:"video_id" redis:"video_id"`
	Progress  float64   `json:"progress" redis:"progress"`
	Status    string    `json:"status" redis:"status"`
	Title     string    `json:"title" redis:"title"`
	Message   string    `json:"message" redis:"message"`
	UpdatedAt time.Time `json:"updated_at" redis:"updated_at"`
}
