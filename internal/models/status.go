package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MonitoringStatus is the lifecycle state of a monitoring job.
type MonitoringStatus string

const (
	MonitoringNotConfigured MonitoringStatus = "not_configured"
	MonitoringActive        MonitoringStatus = "active"
	MonitoringPaused        MonitoringStatus = "paused"
	MonitoringCompleted     MonitoringStatus = "completed"
	MonitoringError         MonitoringStatus = "error"
)

func ParseMonitoringStatus(s string) (MonitoringStatus, error) {
	switch st := MonitoringStatus(s); st {
	case MonitoringNotConfigured, MonitoringActive, MonitoringPaused, MonitoringCompleted, MonitoringError:
		return st, nil
	default:
		return "", fmt.Errorf("unknown monitoring status %q", s)
	}
}

func (s MonitoringStatus) String() string { return string(s) }

func (s MonitoringStatus) Value() (driver.Value, error) {
	if _, err := ParseMonitoringStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

func (s *MonitoringStatus) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseMonitoringStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *MonitoringStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseMonitoringStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// VideoStatus is the processing state of a single monitoring video.
type VideoStatus string

const (
	VideoPending     VideoStatus = "pending"
	VideoDownloading VideoStatus = "downloading"
	VideoPaused      VideoStatus = "paused"
	VideoCompleted   VideoStatus = "completed"
	VideoError       VideoStatus = "error"
	VideoSkipped     VideoStatus = "skipped"
)

// RetryableVideoStatuses are picked up again by a job run.
var RetryableVideoStatuses = []VideoStatus{VideoPending, VideoPaused, VideoError}

func ParseVideoStatus(s string) (VideoStatus, error) {
	switch st := VideoStatus(s); st {
	case VideoPending, VideoDownloading, VideoPaused, VideoCompleted, VideoError, VideoSkipped:
		return st, nil
	default:
		return "", fmt.Errorf("unknown video status %q", s)
	}
}

func (s VideoStatus) String() string { return string(s) }

// IsTerminal reports whether the video needs no further processing.
func (s VideoStatus) IsTerminal() bool {
	switch s {
	case VideoCompleted, VideoError, VideoSkipped:
		return true
	case VideoPending, VideoDownloading, VideoPaused:
		return false
	default:
		return false
	}
}

func (s VideoStatus) Value() (driver.Value, error) {
	if _, err := ParseVideoStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

func (s *VideoStatus) Scan(src interface{}) error {
	raw, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseVideoStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *VideoStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseVideoStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("status is null")
	default:
		return "", fmt.Errorf("cannot scan %T into status", src)
	}
}
