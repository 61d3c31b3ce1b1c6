package employee

import "context"

type EmployeeRepository interface {
	// GetByUserID looks up the employee linked to a login email.
	GetByUserID(ctx context.Context, userID string) (Employee, error)

	// GetMetadata returns department, team and manager of one employee.
	GetMetadata(ctx context.Context, id string) (Metadata, error)

	// ListActiveWithManager returns every active employee in one read.
	ListActiveWithManager(ctx context.Context) ([]HierarchyNode, error)
}
