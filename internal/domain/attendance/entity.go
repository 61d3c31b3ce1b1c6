package attendance

import (
	"time"
)

type LogType string

const (
	LogTypeIn  LogType = "IN"
	LogTypeOut LogType = "OUT"
)

// CheckEvent is one raw check-in or check-out record.
type CheckEvent struct {
	ID         string
	EmployeeID string
	LogType    LogType
	Time       time.Time
}

// Session is a reconstructed work interval. A session is complete when both
// InTime and OutTime are set; otherwise it is dangling (no out) or orphaned
// (no in) and its duration is zero.
type Session struct {
	Label           string
	EmployeeID      string
	Date            time.Time
	InTime          *time.Time
	OutTime         *time.Time
	DurationSeconds int64
}

func (s Session) IsComplete() bool {
	return s.InTime != nil && s.OutTime != nil
}

// Reconstruction is the result of pairing one employee's ordered events.
type Reconstruction struct {
	Sessions     []Session
	TotalSeconds int64
	FirstCheckin *time.Time
	LastLogout   *time.Time
}

// DailySummary is the reconstruction of a single calendar day.
type DailySummary struct {
	EmployeeID string
	Date       time.Time
	Reconstruction
}

// PeriodAverage is the mean worked time over the qualifying days of a window.
type PeriodAverage struct {
	AverageSeconds int64
	AverageHHMM    string
	DaysConsidered int
	PeriodLabel    string
	Start          time.Time
	End            time.Time
}
