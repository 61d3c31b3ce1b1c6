package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/cache"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-summary-go/internal/service/hierarchy"
)

const cacheNamespace = "attendance"

type AttendanceServiceImpl struct {
	checkinRepo       attendance.CheckinRepository
	employeeRepo      employee.EmployeeRepository
	resolver          *hierarchy.Resolver
	cache             *cache.TTLCache
	hierarchyMaxDepth int
}

func NewAttendanceService(
	checkinRepo attendance.CheckinRepository,
	employeeRepo employee.EmployeeRepository,
	resolver *hierarchy.Resolver,
	c *cache.TTLCache,
	hierarchyMaxDepth int,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		checkinRepo:       checkinRepo,
		employeeRepo:      employeeRepo,
		resolver:          resolver,
		cache:             c,
		hierarchyMaxDepth: hierarchyMaxDepth,
	}
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, req attendance.AttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, err := a.dailySummary(ctx, req.EmployeeID, req.ParsedDate)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapDailySummaryToResponse(day), nil
}

// GetMainAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMainAttendance(ctx context.Context, req attendance.AttendanceRequest) (attendance.MainAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MainAttendanceResponse{}, err
	}

	key := cache.Key(cacheNamespace, req.EmployeeID, "main", req.Date, "d"+strconv.Itoa(a.hierarchyMaxDepth))
	if cached, ok := a.cache.Get(key); ok {
		if resp, ok := cached.(attendance.MainAttendanceResponse); ok {
			return resp, nil
		}
	}

	root, degraded, err := a.employeeSummary(ctx, req.EmployeeID, req.ParsedDate)
	if err != nil {
		return attendance.MainAttendanceResponse{}, err
	}

	nodes := map[string]*attendance.MainAttendanceResponse{req.EmployeeID: &root}
	walkErr := a.resolver.Walk(ctx, req.EmployeeID, a.hierarchyMaxDepth, func(parentID, childID string, depth int) bool {
		parent := nodes[parentID]
		entry := attendance.ReporteeAttendance{Employee: childID}

		summary, partial, err := a.employeeSummary(ctx, childID, req.ParsedDate)
		if err != nil {
			slog.Error("Failed to compute reportee attendance",
				"employee_id", childID, "manager_id", parentID, "date", req.Date, "error", err)
			entry.Error = err.Error()
			parent.ReportHierarchy.ReportNames = append(parent.ReportHierarchy.ReportNames, entry)
			degraded = true
			return false
		}
		degraded = degraded || partial

		entry.ReporteeAttendance = &summary
		nodes[childID] = &summary
		parent.ReportHierarchy.ReportNames = append(parent.ReportHierarchy.ReportNames, entry)
		return true
	})
	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return attendance.MainAttendanceResponse{}, ctxErr
		}
		// The employee's own numbers are still valid without the report tree.
		slog.Error("Failed to resolve report hierarchy",
			"employee_id", req.EmployeeID, "date", req.Date, "error", walkErr)
		degraded = true
	}

	// A view built around a failure is served once and recomputed next time.
	if degraded {
		slog.Warn("Main attendance is partial, not caching", "employee_id", req.EmployeeID, "date", req.Date)
		return root, nil
	}

	a.cache.Set(key, root)
	return root, nil
}

// GetAverages implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAverages(ctx context.Context, req attendance.AttendanceRequest) (attendance.WMAverage, error) {
	if err := req.Validate(); err != nil {
		return attendance.WMAverage{}, err
	}

	week, err := a.weeklyAverage(ctx, req.EmployeeID, req.ParsedDate)
	if err != nil {
		return attendance.WMAverage{}, err
	}

	month, err := a.monthlyAverage(ctx, req.EmployeeID, req.ParsedDate)
	if err != nil {
		return attendance.WMAverage{}, err
	}

	return mapAveragesToResponse(week, month), nil
}

// ClearCache implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClearCache(ctx context.Context, req attendance.ClearCacheRequest) (attendance.ClearCacheResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClearCacheResponse{}, err
	}

	if req.EmployeeID == "" {
		removed := a.cache.Invalidate("")
		slog.Info("Attendance cache cleared", "removed", removed)
		return attendance.ClearCacheResponse{
			Status:  "success",
			Message: "Attendance cache cleared for all employees",
			Removed: removed,
		}, nil
	}

	removed := a.cache.Invalidate(employeePrefix(req.EmployeeID))

	// Cached manager views embed this employee's numbers.
	managers, err := a.resolver.Managers(ctx, req.EmployeeID)
	if err != nil {
		slog.Warn("Could not resolve managers, clearing every cached summary",
			"employee_id", req.EmployeeID, "error", err)
		removed += a.cache.Invalidate(cacheNamespace + ":")
	} else {
		for _, managerID := range managers {
			removed += a.cache.Invalidate(cache.Key(cacheNamespace, managerID, "main") + ":")
		}
	}

	slog.Info("Attendance cache cleared", "employee_id", req.EmployeeID, "managers", len(managers), "removed", removed)
	return attendance.ClearCacheResponse{
		Status:  "success",
		Message: fmt.Sprintf("Attendance cache cleared for employee %s", req.EmployeeID),
		Removed: removed,
	}, nil
}

// employeeSummary computes one employee's flat summary with an empty report
// hierarchy. Missing metadata degrades to placeholders. degraded is set when
// the averages had to fall back to zero.
func (a *AttendanceServiceImpl) employeeSummary(ctx context.Context, employeeID string, date time.Time) (resp attendance.MainAttendanceResponse, degraded bool, err error) {
	day, err := a.dailySummary(ctx, employeeID, date)
	if err != nil {
		return attendance.MainAttendanceResponse{}, false, err
	}

	averages, averagesOK := a.averagesOrEmpty(ctx, employeeID, date)

	resp = attendance.MainAttendanceResponse{
		EmployeeName:      employeeID,
		FirstCheckin:      clockOrPlaceholder(day.FirstCheckin),
		LastLogout:        clockOrPlaceholder(day.LastLogout),
		Department:        attendance.EmptyValue,
		CustomTeam:        attendance.EmptyValue,
		TotalWorkingHours: utils.FormatSecondsToTime(day.TotalSeconds),
		WMAverage:         averages,
		ReportHierarchy: &attendance.ReportHierarchy{
			CurrentDate: date.Format(dateLayout),
			ReportNames: make([]attendance.ReporteeAttendance, 0),
		},
	}

	meta, err := a.employeeRepo.GetMetadata(ctx, employeeID)
	switch {
	case err == nil:
		resp.Department = valueOrPlaceholder(meta.Department)
		resp.CustomTeam = valueOrPlaceholder(meta.Team)
	case errors.Is(err, employee.ErrEmployeeNotFound):
		slog.Debug("No employee metadata", "employee_id", employeeID)
	default:
		return attendance.MainAttendanceResponse{}, false, fmt.Errorf("failed to get employee metadata: %w", err)
	}

	return resp, !averagesOK, nil
}

// averagesOrEmpty never fails: a broken average becomes the empty result and
// ok is false.
func (a *AttendanceServiceImpl) averagesOrEmpty(ctx context.Context, employeeID string, date time.Time) (avg attendance.WMAverage, ok bool) {
	ok = true

	week, err := a.weeklyAverage(ctx, employeeID, date)
	if err != nil {
		ok = false
		slog.Error("Failed to compute weekly average", "employee_id", employeeID, "date", date.Format(dateLayout), "error", err)
		start, end := WeeklyWindow(date)
		week = attendance.PeriodAverage{AverageHHMM: utils.FormatSecondsToAverage(0), Start: start, End: end}
	}

	month, err := a.monthlyAverage(ctx, employeeID, date)
	if err != nil {
		ok = false
		slog.Error("Failed to compute monthly average", "employee_id", employeeID, "date", date.Format(dateLayout), "error", err)
		start, end := MonthlyWindow(date)
		month = attendance.PeriodAverage{AverageHHMM: utils.FormatSecondsToAverage(0), PeriodLabel: MonthLabel(start), Start: start, End: end}
	}

	return mapAveragesToResponse(week, month), ok
}

func (a *AttendanceServiceImpl) dailySummary(ctx context.Context, employeeID string, date time.Time) (attendance.DailySummary, error) {
	day := dateOf(date)
	key := cache.Key(cacheNamespace, employeeID, "daily", day.Format(dateLayout))
	if cached, ok := a.cache.Get(key); ok {
		if summary, ok := cached.(attendance.DailySummary); ok {
			return summary, nil
		}
	}

	events, err := a.checkinRepo.ListByEmployeeBetween(ctx, employeeID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return attendance.DailySummary{}, fmt.Errorf("failed to get checkins: %w", err)
	}

	summary := attendance.DailySummary{
		EmployeeID:     employeeID,
		Date:           day,
		Reconstruction: Reconstruct(employeeID, events),
	}
	a.cache.Set(key, summary)
	return summary, nil
}

func (a *AttendanceServiceImpl) weeklyAverage(ctx context.Context, employeeID string, ref time.Time) (attendance.PeriodAverage, error) {
	start, end := WeeklyWindow(ref)
	return a.periodAverage(ctx, employeeID, "weekly", start, end)
}

func (a *AttendanceServiceImpl) monthlyAverage(ctx context.Context, employeeID string, ref time.Time) (attendance.PeriodAverage, error) {
	start, end := MonthlyWindow(ref)
	avg, err := a.periodAverage(ctx, employeeID, "monthly", start, end)
	if err != nil {
		return attendance.PeriodAverage{}, err
	}
	avg.PeriodLabel = MonthLabel(start)
	return avg, nil
}

// periodAverage reads the whole window with one query and averages it per day.
func (a *AttendanceServiceImpl) periodAverage(ctx context.Context, employeeID, period string, start, end time.Time) (attendance.PeriodAverage, error) {
	key := cache.Key(cacheNamespace, employeeID, period, start.Format(dateLayout), end.Format(dateLayout))
	if cached, ok := a.cache.Get(key); ok {
		if avg, ok := cached.(attendance.PeriodAverage); ok {
			return avg, nil
		}
	}

	var days []attendance.DailySummary
	if start.Before(end) {
		events, err := a.checkinRepo.ListByEmployeeBetween(ctx, employeeID, start, end)
		if err != nil {
			return attendance.PeriodAverage{}, fmt.Errorf("failed to get %s checkins: %w", period, err)
		}
		days = SummarizeDays(employeeID, events)
	}

	avg := AveragePeriod(days, start, end)
	a.cache.Set(key, avg)
	return avg, nil
}

func mapDailySummaryToResponse(day attendance.DailySummary) attendance.AttendanceResponse {
	sessions := make([]attendance.SessionResponse, 0, len(day.Sessions))
	for _, s := range day.Sessions {
		sessions = append(sessions, attendance.SessionResponse{
			Session:      s.Label,
			EmployeeName: s.EmployeeID,
			Date:         s.Date.Format(dateLayout),
			InTime:       clockOrEmpty(s.InTime),
			OutTime:      clockOrEmpty(s.OutTime),
			WorkingHours: utils.FormatSecondsToTime(s.DurationSeconds),
		})
	}

	return attendance.AttendanceResponse{
		AttendanceSessions: sessions,
		WorkingHours:       utils.FormatSecondsToTime(day.TotalSeconds),
	}
}

func mapAveragesToResponse(week, month attendance.PeriodAverage) attendance.WMAverage {
	resp := attendance.WMAverage{
		WeekData: attendance.WeekData{
			WeeklyAvgHHMM:  week.AverageHHMM,
			DaysConsidered: week.DaysConsidered,
		},
		MonthData: attendance.MonthData{
			MonthlyAvgHHMM: month.AverageHHMM,
			DaysConsidered: month.DaysConsidered,
			Month:          month.PeriodLabel,
		},
	}
	if week.DaysConsidered == 0 {
		resp.WeekData.Message = attendance.MsgNoWeeklyWorkingDays
	}
	if month.DaysConsidered == 0 {
		resp.MonthData.Message = attendance.MsgNoMonthlyWorkingDays
	}
	return resp
}

func employeePrefix(employeeID string) string {
	return cache.Key(cacheNamespace, employeeID) + ":"
}

func clockOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.TimeOnly)
}

func clockOrPlaceholder(t *time.Time) string {
	if t == nil {
		return attendance.EmptyValue
	}
	return t.Format(time.TimeOnly)
}

func valueOrPlaceholder(s *string) string {
	if s == nil || *s == "" {
		return attendance.EmptyValue
	}
	return *s
}
