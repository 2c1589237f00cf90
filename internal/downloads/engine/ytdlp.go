// Package engine drives yt-dlp through go-ytdlp.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/amankumarsingh77/channel-monitor/internal/config"
	"github.com/amankumarsingh77/channel-monitor/internal/downloads"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/amankumarsingh77/channel-monitor/pkg/retry"
	"github.com/lrstanley/go-ytdlp"
)

const (
	outputTemplate  = "%(title)s.%(ext)s"
	defaultInterval = 500 * time.Millisecond
	retryBackoff    = 2 * time.Second
)

type ytdlpEngine struct {
	cfg    config.DownloaderConfig
	logger logger.Logger
}

func NewYtdlpEngine(cfg config.DownloaderConfig, log logger.Logger) downloads.Engine {
	return &ytdlpEngine{cfg: cfg, logger: log}
}

func (e *ytdlpEngine) Fetch(ctx context.Context, url, outputDir string, onProgress func(models.TransferProgress)) (*models.FetchResult, error) {
	dl := ytdlp.New().
		NoPlaylist().
		ForceOverwrites().
		RestrictFilenames().
		Output(filepath.Join(outputDir, outputTemplate))
	if e.cfg.Format != "" {
		dl = dl.Format(e.cfg.Format)
	}

	interval := e.cfg.ProgressInterval
	if interval <= 0 {
		interval = defaultInterval
	}
	if onProgress != nil {
		dl.ProgressFunc(interval, func(update ytdlp.ProgressUpdate) {
			onProgress(toTransferProgress(update))
		})
	}

	var res *ytdlp.Result
	retryCfg := retry.Config{
		MaxRetries:     e.cfg.MaxRetries,
		InitialBackoff: retryBackoff,
		MaxBackoff:     retryBackoff * 4,
	}
	attempt := 0
	err := retry.Do(ctx, retryCfg, nil, func(ctx context.Context) error {
		attempt++
		r, err := dl.Run(ctx, url)
		if err != nil {
			e.logger.Warnf("Fetch - attempt %d failed for %s: %v", attempt, url, err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("yt-dlp run: %w", err)
	}

	info, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp result: %w", err)
	}
	if len(info) == 0 || info[0].Filename == nil {
		return nil, fmt.Errorf("yt-dlp reported no output file for %s", url)
	}

	out := &models.FetchResult{FilePath: *info[0].Filename}
	if info[0].Title != nil {
		out.Title = *info[0].Title
	}
	return out, nil
}

func toTransferProgress(update ytdlp.ProgressUpdate) models.TransferProgress {
	p := models.TransferProgress{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		ETA:             update.ETA(),
	}
	if !update.Started.IsZero() {
		if elapsed := time.Since(update.Started).Seconds(); elapsed > 0 {
			p.BytesPerSecond = float64(update.DownloadedBytes) / elapsed
		}
	}
	if update.Info != nil {
		// format sizes live on the embedded *ExtractedFormat, which yt-dlp may omit
		if f := update.Info.ExtractedFormat; f != nil {
			switch {
			case f.FileSizeApprox != nil:
				p.TotalBytesEstimate = int64(*f.FileSizeApprox)
			case f.FileSize != nil:
				p.TotalBytesEstimate = int64(*f.FileSize)
			}
		}
		if update.Info.Title != nil {
			p.Title = *update.Info.Title
		}
	}
	return p
}
