package hierarchy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/cache"
)

var reportingMapKey = cache.Key("hierarchy", "reporting_map")

// ReportingMap is the manager -> direct reports view of the active workforce.
type ReportingMap struct {
	reports  map[string][]string
	managers map[string]string
}

// BuildReportingMap indexes the nodes by manager. Report order follows node
// order, duplicates and self-references are dropped.
func BuildReportingMap(nodes []employee.HierarchyNode) ReportingMap {
	m := ReportingMap{
		reports:  make(map[string][]string),
		managers: make(map[string]string),
	}
	seen := make(map[string]struct{}, len(nodes))

	for _, node := range nodes {
		if node.ManagerID == nil || *node.ManagerID == "" {
			continue
		}
		managerID := *node.ManagerID
		if managerID == node.EmployeeID {
			slog.Warn("Employee reports to itself, ignoring", "employee_id", node.EmployeeID)
			continue
		}
		if _, dup := seen[node.EmployeeID]; dup {
			continue
		}
		seen[node.EmployeeID] = struct{}{}

		m.reports[managerID] = append(m.reports[managerID], node.EmployeeID)
		m.managers[node.EmployeeID] = managerID
	}
	return m
}

// DirectReports returns the direct reports of managerID.
func (m ReportingMap) DirectReports(managerID string) []string {
	reports := m.reports[managerID]
	out := make([]string, len(reports))
	copy(out, reports)
	return out
}

// Manager returns the manager of employeeID, if any.
func (m ReportingMap) Manager(employeeID string) (string, bool) {
	id, ok := m.managers[employeeID]
	return id, ok
}

// VisitFunc is called once per reachable employee. Returning false stops the
// traversal from descending below childID.
type VisitFunc func(parentID, childID string, depth int) bool

type Resolver struct {
	employeeRepo employee.EmployeeRepository
	cache        *cache.TTLCache
}

func NewResolver(employeeRepo employee.EmployeeRepository, c *cache.TTLCache) *Resolver {
	return &Resolver{
		employeeRepo: employeeRepo,
		cache:        c,
	}
}

// ReportingMap loads the whole active hierarchy with a single query and keeps
// it in the cache.
func (r *Resolver) ReportingMap(ctx context.Context) (ReportingMap, error) {
	if cached, ok := r.cache.Get(reportingMapKey); ok {
		if m, ok := cached.(ReportingMap); ok {
			return m, nil
		}
	}

	nodes, err := r.employeeRepo.ListActiveWithManager(ctx)
	if err != nil {
		return ReportingMap{}, fmt.Errorf("failed to load reporting hierarchy: %w", err)
	}

	m := BuildReportingMap(nodes)
	r.cache.Set(reportingMapKey, m)
	return m, nil
}

// Walk visits the reports below rootID breadth first, at most maxDepth levels
// deep. Every employee is visited at most once, so a reporting cycle ends the
// branch instead of looping.
func (r *Resolver) Walk(ctx context.Context, rootID string, maxDepth int, visit VisitFunc) error {
	if maxDepth <= 0 {
		return nil
	}

	m, err := r.ReportingMap(ctx)
	if err != nil {
		return err
	}

	type item struct {
		id    string
		depth int
	}

	visited := map[string]struct{}{rootID: {}}
	queue := []item{{id: rootID, depth: 0}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		current := queue[0]
		queue = queue[1:]

		if current.depth >= maxDepth {
			continue
		}

		for _, childID := range m.DirectReports(current.id) {
			if _, seen := visited[childID]; seen {
				slog.Warn("Reporting cycle detected, employee already visited",
					"root_id", rootID, "manager_id", current.id, "employee_id", childID)
				continue
			}
			visited[childID] = struct{}{}

			if visit(current.id, childID, current.depth+1) {
				queue = append(queue, item{id: childID, depth: current.depth + 1})
			}
		}
	}

	return nil
}

// Managers returns the chain of managers above employeeID, nearest first.
func (r *Resolver) Managers(ctx context.Context, employeeID string) ([]string, error) {
	m, err := r.ReportingMap(ctx)
	if err != nil {
		return nil, err
	}

	chain := make([]string, 0)
	visited := map[string]struct{}{employeeID: {}}
	current := employeeID
	for {
		managerID, ok := m.Manager(current)
		if !ok {
			break
		}
		if _, seen := visited[managerID]; seen {
			break
		}
		visited[managerID] = struct{}{}
		chain = append(chain, managerID)
		current = managerID
	}
	return chain, nil
}
