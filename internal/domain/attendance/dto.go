package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/validator"
)

const (
	// Placeholder for a missing check-in, logout, department or team.
	EmptyValue = "-"

	MsgNoWeeklyWorkingDays  = "No working days found for weekly average calculation."
	MsgNoMonthlyWorkingDays = "No working days found for monthly average calculation."
)

// ========================================
// REQUESTS
// ========================================

type AttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`

	// Set by Validate.
	ParsedDate time.Time `json:"-"`
}

func (r *AttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: ErrEmployeeIDRequired.Error(),
		})
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id contains invalid characters",
		})
	}

	if date, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: ErrInvalidDate.Error(),
		})
	} else {
		r.ParsedDate = date
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClearCacheRequest struct {
	// Empty clears every cached summary.
	EmployeeID string `json:"employee_id,omitempty"`
}

// Validate rejects ids that would widen the cache prefix match. An empty id is
// allowed.
func (r *ClearCacheRequest) Validate() error {
	if r.EmployeeID == "" || validator.IsValidEmployeeID(r.EmployeeID) {
		return nil
	}
	return validator.ValidationErrors{{
		Field:   "employee_id",
		Message: "employee_id contains invalid characters",
	}}
}

// ========================================
// SESSIONS
// ========================================

type SessionResponse struct {
	Session      string `json:"session"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	InTime       string `json:"in_time"`
	OutTime      string `json:"out_time"`
	WorkingHours string `json:"working_hours"`
}

type AttendanceResponse struct {
	AttendanceSessions []SessionResponse `json:"attendance_sessions"`
	WorkingHours       string            `json:"working_hours"`
}

// ========================================
// AVERAGES
// ========================================

type WeekData struct {
	WeeklyAvgHHMM  string `json:"weekly_avg_hh_mm"`
	DaysConsidered int    `json:"days_considered"`
	Message        string `json:"message,omitempty"`
}

type MonthData struct {
	MonthlyAvgHHMM string `json:"monthly_avg_hh_mm"`
	DaysConsidered int    `json:"days_considered"`
	Month          string `json:"month"`
	Message        string `json:"message,omitempty"`
}

type WMAverage struct {
	WeekData  WeekData  `json:"week_data"`
	MonthData MonthData `json:"month_data"`
}

// ========================================
// MAIN ATTENDANCE
// ========================================

type MainAttendanceResponse struct {
	EmployeeName      string           `json:"employee_name"`
	FirstCheckin      string           `json:"first_checkin"`
	LastLogout        string           `json:"last_logout"`
	Department        string           `json:"department"`
	CustomTeam        string           `json:"custom_team"`
	TotalWorkingHours string           `json:"total_working_hours"`
	WMAverage         WMAverage        `json:"w_m_average"`
	ReportHierarchy   *ReportHierarchy `json:"report_hierarchy"`
}

type ReportHierarchy struct {
	CurrentDate string               `json:"current_date"`
	ReportNames []ReporteeAttendance `json:"report_names"`
}

// ReporteeAttendance is one direct report. Exactly one of ReporteeAttendance
// and Error is set.
type ReporteeAttendance struct {
	Employee           string                  `json:"employee"`
	ReporteeAttendance *MainAttendanceResponse `json:"reportee_attendance,omitempty"`
	Error              string                  `json:"error,omitempty"`
}

type ClearCacheResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Removed int    `json:"removed"`
}
