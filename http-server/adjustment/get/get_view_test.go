package get

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

type MockViewProvider struct {
	mock.Mock
}

func (m *MockViewProvider) AdjustmentView(ctx context.Context) ([]allocation.GroupView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]allocation.GroupView), args.Error(1)
}

func TestGetAdjustmentView_Success(t *testing.T) {
	mockProvider := new(MockViewProvider)
	mockProvider.On("AdjustmentView", mock.Anything).Return([]allocation.GroupView{
		{
			MaterialGroup: storage.MaterialGroup{
				MaterialCode:   "M1",
				MaterialName:   "Raw base",
				Kind:           storage.KindRaw,
				CurrentStock:   100,
				TotalRequired:  114,
				RemainingStock: -14,
				IsDeficit:      true,
				Products: []storage.ProductRollup{
					{ProductCode: "P1", OrderCount: 10, QuantityPerUnit: 5, RequiredMaterial: 50},
					{ProductCode: "P2", OrderCount: 8, QuantityPerUnit: 8, RequiredMaterial: 64},
				},
			},
			AdjustedRemaining: -14,
			StillDeficit:      true,
		},
	}, nil)

	handler := GetAdjustmentView(slog.Default(), mockProvider)

	req := httptest.NewRequest(http.MethodGet, "/api/adjustment", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseView
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp.Groups, 1)
	assert.Equal(t, "M1", resp.Groups[0].MaterialCode)
	assert.Equal(t, -14, resp.Groups[0].AdjustedRemaining)
	assert.True(t, resp.Groups[0].StillDeficit)
	assert.Len(t, resp.Groups[0].Products, 2)

	mockProvider.AssertExpectations(t)
}

func TestGetAdjustmentView_Empty(t *testing.T) {
	mockProvider := new(MockViewProvider)
	mockProvider.On("AdjustmentView", mock.Anything).Return([]allocation.GroupView{}, nil)

	handler := GetAdjustmentView(slog.Default(), mockProvider)

	req := httptest.NewRequest(http.MethodGet, "/api/adjustment", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGetAdjustmentView_ProviderError(t *testing.T) {
	mockProvider := new(MockViewProvider)
	mockProvider.On("AdjustmentView", mock.Anything).Return(nil, errors.New("database is down"))

	handler := GetAdjustmentView(slog.Default(), mockProvider)

	req := httptest.NewRequest(http.MethodGet, "/api/adjustment", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
