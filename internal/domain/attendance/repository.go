package attendance

import (
	"context"
	"time"
)

// CheckinRepository is the read-only view of raw check-in events.
type CheckinRepository interface {
	// ListByEmployeeBetween returns events in [start, end) ordered by time,
	// ties kept in the order the store recorded them.
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]CheckEvent, error)
}
