package substitute

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
	"supply-golang/internal/storage"
)

type MockSubstitutionApplier struct {
	mock.Mock
}

func (m *MockSubstitutionApplier) ApplySubstitution(ctx context.Context, materialCode, alternateCode string, quantity int) (*allocation.GroupView, error) {
	args := m.Called(ctx, materialCode, alternateCode, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.GroupView), args.Error(1)
}

func TestApplySubstitution_Success(t *testing.T) {
	mockApplier := new(MockSubstitutionApplier)
	mockApplier.On("ApplySubstitution", mock.Anything, "M1", "M2", 14).
		Return(&allocation.GroupView{
			MaterialGroup: storage.MaterialGroup{
				MaterialCode:   "M1",
				CurrentStock:   100,
				TotalRequired:  114,
				RemainingStock: -14,
				IsDeficit:      true,
			},
			AdjustedRemaining: 0,
			StillDeficit:      false,
			Allowance: &storage.SubstitutionAllowance{
				MaterialCode:          "M1",
				AlternateMaterialCode: "M2",
				AppliedQuantity:       14,
				Applied:               true,
			},
		}, nil)

	handler := ApplySubstitution(slog.Default(), mockApplier)

	reqBody := `{"material_code": "M1", "alternate_material_code": "M2", "alternate_quantity": 14}`
	req := httptest.NewRequest(http.MethodPost, "/api/adjustment/substitute", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "substitution applied", resp.Message)
	assert.NotNil(t, resp.Group)
	assert.Equal(t, 0, resp.Group.AdjustedRemaining)
	assert.False(t, resp.Group.StillDeficit)

	mockApplier.AssertExpectations(t)
}

func TestApplySubstitution_InvalidSubstitution(t *testing.T) {
	mockApplier := new(MockSubstitutionApplier)
	mockApplier.On("ApplySubstitution", mock.Anything, "M1", "M1", 5).
		Return(nil, allocation.ErrInvalidSubstitution)

	handler := ApplySubstitution(slog.Default(), mockApplier)

	reqBody := `{"material_code": "M1", "alternate_material_code": "M1", "alternate_quantity": 5}`
	req := httptest.NewRequest(http.MethodPost, "/api/adjustment/substitute", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestApplySubstitution_InsufficientAlternateStock(t *testing.T) {
	mockApplier := new(MockSubstitutionApplier)
	mockApplier.On("ApplySubstitution", mock.Anything, "M1", "M2", 60).
		Return(nil, allocation.ErrInsufficientAlternateStock)

	handler := ApplySubstitution(slog.Default(), mockApplier)

	reqBody := `{"material_code": "M1", "alternate_material_code": "M2", "alternate_quantity": 60}`
	req := httptest.NewRequest(http.MethodPost, "/api/adjustment/substitute", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)

	var resp Response
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Error)
}

func TestApplySubstitution_InvalidJSON(t *testing.T) {
	mockApplier := new(MockSubstitutionApplier)
	handler := ApplySubstitution(slog.Default(), mockApplier)

	req := httptest.NewRequest(http.MethodPost, "/api/adjustment/substitute", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockApplier.AssertNotCalled(t, "ApplySubstitution")
}

func TestApplySubstitution_ServiceError(t *testing.T) {
	mockApplier := new(MockSubstitutionApplier)
	mockApplier.On("ApplySubstitution", mock.Anything, "M1", "M2", 14).
		Return(nil, errors.New("database is down"))

	handler := ApplySubstitution(slog.Default(), mockApplier)

	reqBody := `{"material_code": "M1", "alternate_material_code": "M2", "alternate_quantity": 14}`
	req := httptest.NewRequest(http.MethodPost, "/api/adjustment/substitute", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
