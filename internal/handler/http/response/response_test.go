package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-summary-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-summary-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()

	SuccessWithMeta(rec, map[string]string{"working_hours": "7:30:00"}, &Meta{Date: "2024-03-13", Timezone: "UTC"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, "2024-03-13", resp.Meta.Date)
	assert.Equal(t, "UTC", resp.Meta.Timezone)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", validator.ValidationErrors{{Field: "date", Message: "bad"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"manager required", auth.ErrManagerAccessRequired, http.StatusForbidden, "FORBIDDEN"},
		{"email required", employee.ErrEmailRequired, http.StatusBadRequest, "BAD_REQUEST"},
		{"user not found", employee.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped employee not found", fmt.Errorf("lookup: %w", employee.ErrEmployeeNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"invalid date", attendance.ErrInvalidDate, http.StatusBadRequest, "BAD_REQUEST"},
		{"timeout", fmt.Errorf("failed to get checkins: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, validator.ValidationErrors{
		{Field: "employee_id", Message: "employee_id is required"},
	})

	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "employee_id is required", resp.Error.Details["employee_id"])
}
