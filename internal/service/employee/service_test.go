package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-summary-go/internal/config"
	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	byUserID map[string]employee.Employee
	err      error
	calls    int
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	f.calls++
	if f.err != nil {
		return employee.Employee{}, f.err
	}
	emp, ok := f.byUserID[userID]
	if !ok {
		return employee.Employee{}, employee.ErrUserNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetMetadata(ctx context.Context, id string) (employee.Metadata, error) {
	return employee.Metadata{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActiveWithManager(ctx context.Context) ([]employee.HierarchyNode, error) {
	return nil, nil
}

func newTestService(repo *fakeEmployeeRepo) employee.EmployeeService {
	return NewEmployeeService(repo, config.DirectoryConfig{
		SuperUserAliases:  []string{"admin", "administrator"},
		SuperUserFullName: "Administrator",
		SuperUserEmail:    "admin@example.com",
	})
}

func TestGetUserDetails_Success(t *testing.T) {
	repo := &fakeEmployeeRepo{byUserID: map[string]employee.Employee{
		"jane@example.com": {ID: "HR-EMP-00012", FullName: "Jane Doe"},
	}}
	svc := newTestService(repo)

	resp, err := svc.GetUserDetails(context.Background(), employee.UserDetailsRequest{Email: " jane@example.com "})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, "HR-EMP-00012", resp.EmployeeID)
}

func TestGetUserDetails_SuperUserAlias(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := newTestService(repo)

	resp, err := svc.GetUserDetails(context.Background(), employee.UserDetailsRequest{Email: "Administrator"})
	require.NoError(t, err)

	assert.Equal(t, "Administrator", resp.FullName)
	assert.Equal(t, "admin@example.com", resp.Email)
	assert.Empty(t, resp.EmployeeID)
	assert.Zero(t, repo.calls)
}

func TestGetUserDetails_SuperUserWithoutConfiguredEmail(t *testing.T) {
	svc := NewEmployeeService(&fakeEmployeeRepo{}, config.DirectoryConfig{
		SuperUserAliases:  []string{"admin"},
		SuperUserFullName: "Administrator",
	})

	resp, err := svc.GetUserDetails(context.Background(), employee.UserDetailsRequest{Email: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Email)
}

func TestGetUserDetails_EmailRequired(t *testing.T) {
	svc := newTestService(&fakeEmployeeRepo{})

	_, err := svc.GetUserDetails(context.Background(), employee.UserDetailsRequest{Email: "   "})
	assert.ErrorIs(t, err, employee.ErrEmailRequired)
}

func TestGetUserDetails_NotFound(t *testing.T) {
	svc := newTestService(&fakeEmployeeRepo{byUserID: map[string]employee.Employee{}})

	_, err := svc.GetUserDetails(context.Background(), employee.UserDetailsRequest{Email: "ghost@example.com"})
	assert.ErrorIs(t, err, employee.ErrUserNotFound)
}

func TestGetUserDetails_RepositoryError(t *testing.T) {
	dbErr := errors.New("connection refused")
	svc := newTestService(&fakeEmployeeRepo{err: dbErr})

	_, err := svc.GetUserDetails(context.Background(), employee.UserDetailsRequest{Email: "jane@example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, employee.ErrUserNotFound)
}
