package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByUserID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, user_id, full_name, department, team, reports_to, status
		FROM employees
		WHERE user_id = $1
		LIMIT 1
	`

	var emp employee.Employee
	var status string
	err := q.QueryRow(ctx, query, userID).Scan(
		&emp.ID, &emp.UserID, &emp.FullName, &emp.Department, &emp.Team, &emp.ReportsTo, &status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrUserNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user id %s: %w", userID, err)
	}
	emp.Status = employee.EmploymentStatus(status)

	return emp, nil
}

// GetMetadata implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetMetadata(ctx context.Context, id string) (employee.Metadata, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT department, team, reports_to
		FROM employees
		WHERE id = $1
	`

	var meta employee.Metadata
	err := q.QueryRow(ctx, query, id).Scan(&meta.Department, &meta.Team, &meta.ManagerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Metadata{}, employee.ErrEmployeeNotFound
		}
		return employee.Metadata{}, fmt.Errorf("failed to get metadata for employee %s: %w", id, err)
	}

	return meta, nil
}

// ListActiveWithManager implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActiveWithManager(ctx context.Context) ([]employee.HierarchyNode, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, reports_to
		FROM employees
		WHERE status = $1
		ORDER BY id ASC
	`

	rows, err := q.Query(ctx, query, string(employee.EmploymentStatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	nodes := make([]employee.HierarchyNode, 0)
	for rows.Next() {
		var node employee.HierarchyNode
		if err := rows.Scan(&node.EmployeeID, &node.ManagerID); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		nodes = append(nodes, node)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate active employees: %w", err)
	}

	return nodes, nil
}
