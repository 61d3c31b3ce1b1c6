package attendance

import (
	"context"
)

// AttendanceService computes attendance summaries from raw check-in events.
type AttendanceService interface {
	// GetAttendance returns the sessions of one day and the worked total
	GetAttendance(ctx context.Context, req AttendanceRequest) (AttendanceResponse, error)

	// GetMainAttendance returns the daily summary with averages and the report hierarchy
	GetMainAttendance(ctx context.Context, req AttendanceRequest) (MainAttendanceResponse, error)

	// GetAverages returns the weekly and monthly averages before the given date
	GetAverages(ctx context.Context, req AttendanceRequest) (WMAverage, error)

	// ClearCache drops cached summaries for one employee, or everything
	ClearCache(ctx context.Context, req ClearCacheRequest) (ClearCacheResponse, error)
}
