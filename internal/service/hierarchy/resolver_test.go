package hierarchy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	nodes []employee.HierarchyNode
	err   error
	calls int
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrUserNotFound
}

func (f *fakeEmployeeRepo) GetMetadata(ctx context.Context, id string) (employee.Metadata, error) {
	return employee.Metadata{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActiveWithManager(ctx context.Context) ([]employee.HierarchyNode, error) {
	f.calls++
	return f.nodes, f.err
}

func node(id, manager string) employee.HierarchyNode {
	n := employee.HierarchyNode{EmployeeID: id}
	if manager != "" {
		n.ManagerID = &manager
	}
	return n
}

type visit struct {
	parent string
	child  string
	depth  int
}

func collect(t *testing.T, r *Resolver, root string, depth int) []visit {
	t.Helper()
	var visits []visit
	err := r.Walk(context.Background(), root, depth, func(parentID, childID string, d int) bool {
		visits = append(visits, visit{parentID, childID, d})
		return true
	})
	require.NoError(t, err)
	return visits
}

func sampleNodes() []employee.HierarchyNode {
	return []employee.HierarchyNode{
		node("A", ""),
		node("B", "A"),
		node("C", "A"),
		node("D", "B"),
		node("E", "D"),
	}
}

func TestBuildReportingMap(t *testing.T) {
	m := BuildReportingMap([]employee.HierarchyNode{
		node("A", ""),
		node("B", "A"),
		node("C", "A"),
		node("D", "B"),
		node("S", "S"),
		node("B", "C"),
	})

	assert.Equal(t, []string{"B", "C"}, m.DirectReports("A"))
	assert.Equal(t, []string{"D"}, m.DirectReports("B"))
	assert.Empty(t, m.DirectReports("C"))
	assert.Empty(t, m.DirectReports("S"))
	assert.Empty(t, m.DirectReports("unknown"))

	manager, ok := m.Manager("D")
	assert.True(t, ok)
	assert.Equal(t, "B", manager)

	_, ok = m.Manager("A")
	assert.False(t, ok)
}

func TestReportingMap_DirectReportsReturnsCopy(t *testing.T) {
	m := BuildReportingMap(sampleNodes())

	reports := m.DirectReports("A")
	reports[0] = "X"

	assert.Equal(t, []string{"B", "C"}, m.DirectReports("A"))
}

func TestResolver_ReportingMap(t *testing.T) {
	repo := &fakeEmployeeRepo{nodes: sampleNodes()}
	r := NewResolver(repo, cache.NewTTLCache(time.Minute))

	m, err := r.ReportingMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, m.DirectReports("A"))
	assert.Empty(t, m.DirectReports("E"))
}

func TestResolver_ReportingMapIsReadOnce(t *testing.T) {
	repo := &fakeEmployeeRepo{nodes: sampleNodes()}
	r := NewResolver(repo, cache.NewTTLCache(time.Minute))
	ctx := context.Background()

	for _, id := range []string{"A", "B", "C", "D"} {
		_, err := r.Managers(ctx, id)
		require.NoError(t, err)
	}
	collect(t, r, "A", 3)

	assert.Equal(t, 1, repo.calls)
}

func TestResolver_ReportingMapReloadsAfterExpiry(t *testing.T) {
	now := time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)
	c := cache.NewTTLCache(time.Minute, cache.WithClock(func() time.Time { return now }))
	repo := &fakeEmployeeRepo{nodes: sampleNodes()}
	r := NewResolver(repo, c)

	_, err := r.ReportingMap(context.Background())
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = r.ReportingMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.calls)
}

func TestResolver_ReportingMapError(t *testing.T) {
	repo := &fakeEmployeeRepo{err: errors.New("connection refused")}
	r := NewResolver(repo, cache.NewTTLCache(time.Minute))

	_, err := r.ReportingMap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	err = r.Walk(context.Background(), "A", 1, func(string, string, int) bool { return true })
	require.Error(t, err)
}

func TestResolver_WalkDepth(t *testing.T) {
	r := NewResolver(&fakeEmployeeRepo{nodes: sampleNodes()}, cache.NewTTLCache(time.Minute))

	tests := []struct {
		name  string
		depth int
		want  []visit
	}{
		{"zero", 0, nil},
		{"negative", -1, nil},
		{"one", 1, []visit{{"A", "B", 1}, {"A", "C", 1}}},
		{"two", 2, []visit{{"A", "B", 1}, {"A", "C", 1}, {"B", "D", 2}}},
		{"unbounded", 10, []visit{{"A", "B", 1}, {"A", "C", 1}, {"B", "D", 2}, {"D", "E", 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(t, r, "A", tt.depth))
		})
	}
}

func TestResolver_WalkStopsBelowRejectedChild(t *testing.T) {
	r := NewResolver(&fakeEmployeeRepo{nodes: sampleNodes()}, cache.NewTTLCache(time.Minute))

	var visited []string
	err := r.Walk(context.Background(), "A", 10, func(parentID, childID string, depth int) bool {
		visited = append(visited, childID)
		return childID != "B"
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "C"}, visited)
}

func TestResolver_WalkCycle(t *testing.T) {
	repo := &fakeEmployeeRepo{nodes: []employee.HierarchyNode{
		node("A", "C"),
		node("B", "A"),
		node("C", "B"),
	}}
	r := NewResolver(repo, cache.NewTTLCache(time.Minute))

	visits := collect(t, r, "A", 100)

	assert.Equal(t, []visit{{"A", "B", 1}, {"B", "C", 2}}, visits)
}

func TestResolver_WalkHonoursCancellation(t *testing.T) {
	r := NewResolver(&fakeEmployeeRepo{nodes: sampleNodes()}, cache.NewTTLCache(time.Minute))
	_, err := r.ReportingMap(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = r.Walk(ctx, "A", 3, func(string, string, int) bool { return true })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolver_Managers(t *testing.T) {
	r := NewResolver(&fakeEmployeeRepo{nodes: sampleNodes()}, cache.NewTTLCache(time.Minute))

	chain, err := r.Managers(context.Background(), "E")
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "B", "A"}, chain)

	chain, err = r.Managers(context.Background(), "A")
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestResolver_ManagersCycle(t *testing.T) {
	repo := &fakeEmployeeRepo{nodes: []employee.HierarchyNode{
		node("A", "C"),
		node("B", "A"),
		node("C", "B"),
	}}
	r := NewResolver(repo, cache.NewTTLCache(time.Minute))

	chain, err := r.Managers(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, chain)
}
