package employee

type Employee struct {
	ID         string
	UserID     *string
	FullName   string
	Department *string
	Team       *string
	ReportsTo  *string
	Status     EmploymentStatus
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "Active"
	EmploymentStatusInactive EmploymentStatus = "Inactive"
	EmploymentStatusLeft     EmploymentStatus = "Left"
)

// Metadata is the organisational placement of an employee.
type Metadata struct {
	Department *string
	Team       *string
	ManagerID  *string
}

// HierarchyNode links an active employee to its manager. ManagerID is nil
// for roots of the reporting forest.
type HierarchyNode struct {
	EmployeeID string
	ManagerID  *string
}
