package period

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod_End(t *testing.T) {
	start := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		period Period
		want   time.Time
	}{
		{Monthly, time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)},
		{Quarterly, time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)},
		{Yearly, time.Date(2027, 1, 15, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, err := tt.period.End(start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_EndClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		start  time.Time
		want   time.Time
	}{
		{
			name: "31 января високосного года", period: Monthly,
			start: time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC), want: time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "31 января обычного года", period: Monthly,
			start: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), want: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "квартал с 30 ноября", period: Quarterly,
			start: time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC), want: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "год с 29 февраля", period: Yearly,
			start: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), want: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "31 марта в 31 апреля нет", period: Monthly,
			start: time.Date(2026, 3, 31, 18, 30, 0, 0, time.UTC), want: time.Date(2026, 4, 30, 18, 30, 0, 0, time.UTC),
		},
		{
			name: "декабрь переходит в январь", period: Monthly,
			start: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), want: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.period.End(tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_Unknown(t *testing.T) {
	_, err := Period("weekly").End(time.Now())
	assert.True(t, errors.Is(err, ErrUnknown))
	assert.False(t, Period("weekly").Valid())
	assert.True(t, Yearly.Valid())
}

func TestMonthStartAndDayStart(t *testing.T) {
	ts := time.Date(2026, 3, 17, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), MonthStart(ts))
	assert.Equal(t, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), DayStart(ts))
}
