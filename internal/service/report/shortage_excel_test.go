package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"supply-golang/internal/service/allocation"
	"supply-golang/internal/storage"
)

type MockAdjustmentProvider struct {
	mock.Mock
}

func (m *MockAdjustmentProvider) AdjustmentView(ctx context.Context) ([]allocation.GroupView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]allocation.GroupView), args.Error(1)
}

func TestGenerateShortageReport(t *testing.T) {
	mockProvider := new(MockAdjustmentProvider)
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

	service := NewShortageReportService(mockProvider)

	data, err := service.GenerateShortageReport(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := "Shortage Report"

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Material", header)

	code, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "M1", code)

	adjusted, _ := f.GetCellValue(sheet, "G2")
	assert.Equal(t, "-14", adjusted)

	deficit, _ := f.GetCellValue(sheet, "H2")
	assert.Equal(t, "YES", deficit)

	// Product breakdown rows follow the material row.
	product, _ := f.GetCellValue(sheet, "I3")
	assert.Equal(t, "P1", product)
	product, _ = f.GetCellValue(sheet, "I4")
	assert.Equal(t, "P2", product)
}

func TestGenerateShortageReport_EmptyView(t *testing.T) {
	mockProvider := new(MockAdjustmentProvider)
	mockProvider.On("AdjustmentView", mock.Anything).Return([]allocation.GroupView{}, nil)

	service := NewShortageReportService(mockProvider)

	data, err := service.GenerateShortageReport(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, data, "an empty workbook still has the header sheet")
}

func TestGenerateShortageReport_ProviderError(t *testing.T) {
	mockProvider := new(MockAdjustmentProvider)
	mockProvider.On("AdjustmentView", mock.Anything).Return(nil, errors.New("database is down"))

	service := NewShortageReportService(mockProvider)

	_, err := service.GenerateShortageReport(context.Background())
	assert.Error(t, err)
}
