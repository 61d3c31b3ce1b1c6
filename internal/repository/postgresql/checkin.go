package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/database"
)

type checkinRepository struct {
	db *database.DB
}

func NewCheckinRepository(db *database.DB) attendance.CheckinRepository {
	return &checkinRepository{db: db}
}

// ListByEmployeeBetween implements attendance.CheckinRepository.
func (c *checkinRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.CheckEvent, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id::text, employee_id, log_type, time
		FROM employee_checkins
		WHERE employee_id = $1
		  AND time >= $2
		  AND time < $3
		ORDER BY time ASC, created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query checkins for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	events := make([]attendance.CheckEvent, 0)
	for rows.Next() {
		var ev attendance.CheckEvent
		var logType string
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &logType, &ev.Time); err != nil {
			return nil, fmt.Errorf("failed to scan checkin: %w", err)
		}
		ev.LogType = attendance.LogType(logType)
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checkins: %w", err)
	}

	return events, nil
}
