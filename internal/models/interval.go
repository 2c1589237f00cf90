package models

import (
	"fmt"
	"time"
)

// Interval is the symbolic name of a check interval. Jobs persist plain minutes.
type Interval string

const (
	Interval10Minutes Interval = "10_minutes"
	Interval20Minutes Interval = "20_minutes"
	Interval30Minutes Interval = "30_minutes"
	Interval45Minutes Interval = "45_minutes"
	Interval1Hour     Interval = "1_hour"
	Interval2Hours    Interval = "2_hours"
	Interval5Hours    Interval = "5_hours"
	Interval12Hours   Interval = "12_hours"
	Interval1Day      Interval = "1_day"
	Interval2Days     Interval = "2_days"
	Interval1Week     Interval = "1_week"
	Interval1Month    Interval = "1_month"
)

var intervalMinutes = map[Interval]int{
	Interval10Minutes: 10,
	Interval20Minutes: 20,
	Interval30Minutes: 30,
	Interval45Minutes: 45,
	Interval1Hour:     60,
	Interval2Hours:    120,
	Interval5Hours:    300,
	Interval12Hours:   720,
	Interval1Day:      1440,
	Interval2Days:     2880,
	Interval1Week:     10080,
	Interval1Month:    43200,
}

// Minutes converts a symbolic interval through the canonical table.
func (i Interval) Minutes() (int, error) {
	m, ok := intervalMinutes[i]
	if !ok {
		return 0, fmt.Errorf("unknown interval %q", string(i))
	}
	return m, nil
}

// IntervalFromMinutes is the reverse lookup; ok is false for values outside the table.
func IntervalFromMinutes(minutes int) (Interval, bool) {
	for name, m := range intervalMinutes {
		if m == minutes {
			return name, true
		}
	}
	return "", false
}

// IntervalDelta is the time between two checks of a job.
func IntervalDelta(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}
