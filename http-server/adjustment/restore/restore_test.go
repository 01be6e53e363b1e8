package restore

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"supply-golang/internal/service/allocation"
)

type MockRestorer struct {
	mock.Mock
}

func (m *MockRestorer) RestoreOrders(ctx context.Context, orderIDs []string) (*allocation.RestoreResult, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.RestoreResult), args.Error(1)
}

func TestRestoreOrders_Success(t *testing.T) {
	mockRestorer := new(MockRestorer)
	mockRestorer.On("RestoreOrders", mock.Anything, []string{"P2-8", "P2-7"}).
		Return(&allocation.RestoreResult{Restored: 2}, nil)

	handler := RestoreOrders(slog.Default(), mockRestorer)

	reqBody := `{"order_ids": ["P2-8", "P2-7"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/adjustment/restore", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Restored)

	mockRestorer.AssertExpectations(t)
}

// Already-pending ids are skipped by the status guard; the response simply
// reports how many actually moved.
func TestRestoreOrders_PartiallyRestored(t *testing.T) {
	mockRestorer := new(MockRestorer)
	mockRestorer.On("RestoreOrders", mock.Anything, []string{"P2-8", "P1-1"}).
		Return(&allocation.RestoreResult{Restored: 1}, nil)

	handler := RestoreOrders(slog.Default(), mockRestorer)

	reqBody := `{"order_ids": ["P2-8", "P1-1"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/adjustment/restore", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Restored)
}

func TestRestoreOrders_InvalidJSON(t *testing.T) {
	mockRestorer := new(MockRestorer)
	handler := RestoreOrders(slog.Default(), mockRestorer)

	req := httptest.NewRequest(http.MethodPost, "/api/adjustment/restore", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockRestorer.AssertNotCalled(t, "RestoreOrders")
}

func TestRestoreOrders_ServiceError(t *testing.T) {
	mockRestorer := new(MockRestorer)
	mockRestorer.On("RestoreOrders", mock.Anything, []string{"P2-8"}).
		Return(nil, errors.New("database is down"))

	handler := RestoreOrders(slog.Default(), mockRestorer)

	req := httptest.NewRequest(http.MethodPost, "/api/adjustment/restore", strings.NewReader(`{"order_ids": ["P2-8"]}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
