package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "empty", values: []float64{}, expected: 0},
		{name: "nil", values: nil, expected: 0},
		{name: "single", values: []float64{7}, expected: 7},
		{name: "even count", values: []float64{1, 2, 3, 4}, expected: 2.5},
		{name: "odd count unsorted", values: []float64{9, 1, 5}, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Median(tt.values))
		})
	}
}

func TestMedian_DoesNotModifyInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_ = Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 2.5, Average([]float64{1, 2, 3, 4}))
}

func TestRatioAndPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(3, 0))
	assert.Equal(t, 0.5, Ratio(1, 2))
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 25.0, Percentage(1, 4))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(12, 0, 10))
	assert.Equal(t, 4.2, Clamp(4.2, 0, 10))
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 10))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.2345, 2))
	assert.Equal(t, 2.0, Round(1.5, 0))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected string
	}{
		{name: "days and hours", start: "2020-01-01T00:00:00Z", end: "2020-01-03T01:00:00Z", expected: "2d 1h"},
		{name: "minutes and seconds", start: "2020-01-01T00:00:00Z", end: "2020-01-01T00:05:07Z", expected: "5m 7s"},
		{name: "hours only", start: "2020-01-01T00:00:00Z", end: "2020-01-01T03:59:00Z", expected: "3h"},
		{name: "seconds only", start: "2020-01-01T00:00:00Z", end: "2020-01-01T00:00:42Z", expected: "42s"},
		{name: "zero", start: "2020-01-01T00:00:00Z", end: "2020-01-01T00:00:00Z", expected: "0s"},
		{name: "missing start", start: "", end: "2020-01-01T00:00:00Z", expected: NotAvailable},
		{name: "missing end", start: "2020-01-01T00:00:00Z", end: "", expected: NotAvailable},
		{name: "end before start", start: "2020-01-02T00:00:00Z", end: "2020-01-01T00:00:00Z", expected: NotAvailable},
		{name: "garbage", start: "yesterday", end: "2020-01-01T00:00:00Z", expected: NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.start, tt.end))
		})
	}
}

func TestFormatBetween(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(26 * time.Hour)

	assert.Equal(t, "1d 2h", FormatBetween(&start, &end))
	assert.Equal(t, NotAvailable, FormatBetween(nil, &end))
	assert.Equal(t, NotAvailable, FormatBetween(&start, nil))
	assert.Equal(t, NotAvailable, FormatBetween(&end, &start))
}

func TestHoursBetween(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 36.0, HoursBetween(start, start.Add(36*time.Hour)))
}
