package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-summary-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetMain(w http.ResponseWriter, r *http.Request)
	GetSessions(w http.ResponseWriter, r *http.Request)
	GetAverages(w http.ResponseWriter, r *http.Request)
	ClearCache(w http.ResponseWriter, r *http.Request)
	GetDate(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	location          *time.Location
	now               func() time.Time
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, location *time.Location) AttendanceHandler {
	if location == nil {
		location = time.Local
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		location:          location,
		now:               time.Now,
	}
}

type DateResponse struct {
	Date string `json:"date"`
}

// GetMain implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMain(w http.ResponseWriter, r *http.Request) {
	req := h.parseAttendanceRequest(r)

	result, err := h.attendanceService.GetMainAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, h.meta(req.Date))
}

// GetSessions implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetSessions(w http.ResponseWriter, r *http.Request) {
	req := h.parseAttendanceRequest(r)

	result, err := h.attendanceService.GetAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, h.meta(req.Date))
}

// GetAverages implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetAverages(w http.ResponseWriter, r *http.Request) {
	req := h.parseAttendanceRequest(r)

	result, err := h.attendanceService.GetAverages(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, h.meta(req.Date))
}

// ClearCache implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClearCache(w http.ResponseWriter, r *http.Request) {
	req := attendance.ClearCacheRequest{
		EmployeeID: strings.TrimSpace(r.URL.Query().Get("employee_id")),
	}

	result, err := h.attendanceService.ClearCache(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance cache cleared via API", "employee_id", req.EmployeeID, "removed", result.Removed)
	response.SuccessWithMessage(w, result.Message, result)
}

// GetDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDate(w http.ResponseWriter, r *http.Request) {
	response.Success(w, DateResponse{Date: h.today()})
}

// parseAttendanceRequest reads employee_id and date from the query string.
// A missing date means today in the reporting timezone.
func (h *attendanceHandlerImpl) parseAttendanceRequest(r *http.Request) attendance.AttendanceRequest {
	query := r.URL.Query()

	date := strings.TrimSpace(query.Get("date"))
	if date == "" {
		date = h.today()
	}

	return attendance.AttendanceRequest{
		EmployeeID: strings.TrimSpace(query.Get("employee_id")),
		Date:       date,
	}
}

func (h *attendanceHandlerImpl) today() string {
	return h.now().In(h.location).Format(time.DateOnly)
}

func (h *attendanceHandlerImpl) meta(date string) *response.Meta {
	return &response.Meta{
		Date:     date,
		Timezone: h.location.String(),
	}
}
