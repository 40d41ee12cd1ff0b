// Package stats provides small numeric helpers used by the metrics aggregators.
//
// Every helper returns 0 for an empty input instead of NaN so that aggregated
// responses never carry undefined values.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// NotAvailable is returned by FormatDuration when a duration cannot be computed.
const NotAvailable = "N/A"

// Median returns the median of values, or 0 for an empty slice.
// The input slice is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Average returns the arithmetic mean of values, or 0 for an empty slice.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Ratio returns part/total, or 0 when total is not positive.
func Ratio(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// Percentage returns part/total*100, or 0 when total is not positive.
func Percentage(part, total int) float64 {
	return Ratio(part, total) * 100
}

// Clamp limits v to the [lo, hi] range. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// HoursBetween returns end-start in hours.
func HoursBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// FormatDuration formats the elapsed time between two RFC 3339 timestamps.
// It returns NotAvailable when either endpoint is empty or unparseable, or when
// end is before start.
func FormatDuration(start, end string) string {
	if start == "" || end == "" {
		return NotAvailable
	}
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return NotAvailable
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return NotAvailable
	}
	return FormatBetween(&s, &e)
}

// FormatBetween is FormatDuration for already parsed timestamps.
func FormatBetween(start, end *time.Time) string {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return NotAvailable
	}
	if end.Before(*start) {
		return NotAvailable
	}
	return FormatElapsed(end.Sub(*start))
}

// FormatElapsed renders d using the largest applicable units:
// "2d 1h", "3h", "5m 7s" or "42s".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		return NotAvailable
	}

	total := int64(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
