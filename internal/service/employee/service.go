package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-summary-go/internal/config"
	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	directory    config.DirectoryConfig
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	directory config.DirectoryConfig,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		directory:    directory,
	}
}

// GetUserDetails implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetUserDetails(ctx context.Context, req employee.UserDetailsRequest) (employee.UserDetailsResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return employee.UserDetailsResponse{}, err
	}

	if validator.IsInSliceFold(req.Email, s.directory.SuperUserAliases) {
		email := s.directory.SuperUserEmail
		if email == "" {
			email = req.Email
		}
		return employee.UserDetailsResponse{
			FullName: s.directory.SuperUserFullName,
			Email:    email,
		}, nil
	}

	emp, err := s.employeeRepo.GetByUserID(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrUserNotFound) {
			return employee.UserDetailsResponse{}, err
		}
		slog.Error("Failed to look up user", "email", req.Email, "error", err)
		return employee.UserDetailsResponse{}, fmt.Errorf("failed to get user details: %w", err)
	}

	return employee.UserDetailsResponse{
		FullName:   emp.FullName,
		Email:      req.Email,
		EmployeeID: emp.ID,
	}, nil
}
