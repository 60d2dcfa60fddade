package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SupportedFormats(t *testing.T) {
	expected := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []string{
		"20240101",
		"2024-01-01",
		"2024/01/01",
		"01/01/2024",
		"01-01-2024",
		"2024年01月01日",
		"  2024-01-01  ", // 首尾空白
	}
	for _, input := range cases {
		got, ok := Parse(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, expected, got, "input %q", input)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-date", "2024-13-40", "01.01.2024"} {
		_, ok := Parse(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestDaysBetween_Signed(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(today, today))
	assert.Equal(t, 1, DaysBetween(today, today.AddDate(0, 0, 1)))
	assert.Equal(t, -1, DaysBetween(today, today.AddDate(0, 0, -1)))
	assert.Equal(t, 45, DaysBetween(today, today.AddDate(0, 0, 45)))
	assert.Equal(t, -30, DaysBetween(today, today.AddDate(0, 0, -30)))
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	// 仅日历日参与计算，一天内的具体时刻不影响结果
	from := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)
	to := time.Date(2024, 6, 16, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(from, to))
}

func TestDaysLeft(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, -5, DaysLeft(expiry, today))
}

func TestFormat(t *testing.T) {
	d := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-07", Format(d))
	assert.Equal(t, "20240307", FormatCompact(d))
}
