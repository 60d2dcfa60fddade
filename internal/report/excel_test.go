package report

import (
	"bytes"
	"testing"

	"licence-reminder/internal/engine"
	"licence-reminder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func intPtr(v int) *int { return &v }

func TestGenerateExcel(t *testing.T) {
	rows := []engine.ReportRow{
		{
			PersonName:   "张三",
			DocumentType: "护照",
			StartDate:    "2019-06-15",
			ExpiryDate:   "2024-01-01",
			DaysLeft:     intPtr(-30),
			Status:       models.StatusExpired,
			Remarks:      "补办中",
		},
		{
			PersonName:   "李四",
			DocumentType: "身份证",
			ExpiryDate:   "2030-01-01",
			DaysLeft:     intPtr(2000),
			Status:       models.StatusValid,
		},
	}

	data, err := GenerateExcel(rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("证件状态")
	require.NoError(t, err)
	require.Len(t, got, 3) // 表头 + 2 行数据

	assert.Equal(t, reportHeader, got[0])
	assert.Equal(t, []string{"张三", "护照", "2019-06-15", "2024-01-01", "-30", "已过期", "补办中"}, got[1])
	assert.Equal(t, "李四", got[2][0])
	assert.Equal(t, "有效", got[2][5])
}

func TestGenerateExcel_EmptyRows(t *testing.T) {
	data, err := GenerateExcel(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("证件状态")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, reportHeader, got[0])
}
