package attendance

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance"
)

// Reconstruct pairs an ordered IN/OUT stream into work sessions in a single
// pass. Only one session can be open at a time:
//   - IN while another IN is pending closes the pending one as dangling.
//   - OUT with nothing pending becomes an orphaned session.
//   - A pending IN left at the end of the stream is dangling.
//
// Dangling and orphaned sessions last zero seconds and do not count towards
// TotalSeconds.
func Reconstruct(employeeID string, events []attendance.CheckEvent) attendance.Reconstruction {
	result := attendance.Reconstruction{
		Sessions: make([]attendance.Session, 0, len(events)/2+1),
	}

	var pending *time.Time

	emit := func(in, out *time.Time, seconds int64) {
		anchor := in
		if anchor == nil {
			anchor = out
		}
		result.Sessions = append(result.Sessions, attendance.Session{
			Label:           fmt.Sprintf("session %d", len(result.Sessions)+1),
			EmployeeID:      employeeID,
			Date:            dateOf(*anchor),
			InTime:          in,
			OutTime:         out,
			DurationSeconds: seconds,
		})
	}

	for _, ev := range events {
		at := ev.Time

		switch ev.LogType {
		case attendance.LogTypeIn:
			if pending != nil {
				slog.Debug("Dangling check-in replaced by a newer one",
					"employee_id", employeeID, "in_time", pending.Format(time.DateTime))
				emit(pending, nil, 0)
			}
			if result.FirstCheckin == nil {
				result.FirstCheckin = &at
			}
			pending = &at

		case attendance.LogTypeOut:
			result.LastLogout = &at

			if pending == nil {
				slog.Debug("Orphaned check-out without check-in",
					"employee_id", employeeID, "out_time", at.Format(time.DateTime))
				emit(nil, &at, 0)
				continue
			}

			seconds := int64(at.Sub(*pending) / time.Second)
			if seconds < 0 {
				slog.Warn("Negative session duration treated as zero",
					"employee_id", employeeID,
					"in_time", pending.Format(time.DateTime),
					"out_time", at.Format(time.DateTime))
				seconds = 0
			}
			emit(pending, &at, seconds)
			result.TotalSeconds += seconds
			pending = nil

		default:
			slog.Warn("Unknown check-in log type ignored",
				"employee_id", employeeID, "log_type", string(ev.LogType), "event_id", ev.ID)
		}
	}

	if pending != nil {
		emit(pending, nil, 0)
	}

	return result
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
