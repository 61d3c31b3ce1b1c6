package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/utils"
)

const dateLayout = "2006-01-02"

// WeeklyWindow returns [Monday of ref's week, ref). The reference day is still
// in progress and never part of the window, so on a Monday it is empty.
func WeeklyWindow(ref time.Time) (time.Time, time.Time) {
	end := dateOf(ref)
	offset := (int(end.Weekday()) + 6) % 7
	return end.AddDate(0, 0, -offset), end
}

// MonthlyWindow returns [first day of ref's month, ref).
func MonthlyWindow(ref time.Time) (time.Time, time.Time) {
	end := dateOf(ref)
	return time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location()), end
}

// SummarizeDays splits time-ordered events by calendar day and reconstructs
// each day on its own. Days come back in chronological order.
func SummarizeDays(employeeID string, events []attendance.CheckEvent) []attendance.DailySummary {
	days := make([]attendance.DailySummary, 0)

	start := 0
	for i := 1; i <= len(events); i++ {
		if i < len(events) && sameDay(events[i].Time, events[start].Time) {
			continue
		}
		if i > start {
			days = append(days, attendance.DailySummary{
				EmployeeID:     employeeID,
				Date:           dateOf(events[start].Time),
				Reconstruction: Reconstruct(employeeID, events[start:i]),
			})
		}
		start = i
	}
	return days
}

// AveragePeriod averages worked seconds over days whose complete sessions add
// up to more than zero. Without such days the average is "0.00".
func AveragePeriod(days []attendance.DailySummary, start, end time.Time) attendance.PeriodAverage {
	result := attendance.PeriodAverage{
		AverageHHMM: utils.FormatSecondsToAverage(0),
		Start:       start,
		End:         end,
	}

	var total int64
	for _, day := range days {
		if day.Date.Before(start) || !day.Date.Before(end) {
			continue
		}
		if day.TotalSeconds <= 0 {
			continue
		}
		total += day.TotalSeconds
		result.DaysConsidered++
	}

	if result.DaysConsidered == 0 {
		return result
	}

	result.AverageSeconds = total / int64(result.DaysConsidered)
	result.AverageHHMM = utils.FormatSecondsToAverage(result.AverageSeconds)
	return result
}

// MonthLabel renders "March 2024" style labels.
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
