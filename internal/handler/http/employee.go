package http

import (
	"net/http"
	"strings"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-summary-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/jwt"
)

type EmployeeHandler interface {
	GetUserDetails(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// GetUserDetails implements EmployeeHandler.
func (h *employeeHandlerImpl) GetUserDetails(w http.ResponseWriter, r *http.Request) {
	req := employee.UserDetailsRequest{
		Email: strings.TrimSpace(r.URL.Query().Get("email")),
	}

	// Without an explicit email the caller asks about itself.
	if req.Email == "" {
		if claims, err := jwt.ClaimsFromContext(r.Context()); err == nil {
			req.Email = claims.Email
		}
	}

	result, err := h.employeeService.GetUserDetails(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
