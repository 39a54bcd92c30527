// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatEnergy formats a kWh value with one decimal place and comma
// separators, e.g. 8760.04 -> "8,760.0".
func FormatEnergy(kwh float64) string {
	if math.IsNaN(kwh) || math.IsInf(kwh, 0) {
		return "-"
	}
	s := fmt.Sprintf("%.1f", kwh)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	n, _ := strconv.ParseInt(whole, 10, 64)
	out := FormatNumber(n) + "." + frac
	if neg && out != "0.0" {
		return "-" + out
	}
	return out
}

// FormatKWh is FormatEnergy with the unit appended.
func FormatKWh(kwh float64) string {
	return FormatEnergy(kwh) + " kWh"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 value as a whole percentage.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

// FormatDelta formats the change between two energy totals with a sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatEnergy(delta)
	}
	return "-" + FormatEnergy(-delta)
}

// FormatDayOfWeek returns a 3-letter day abbreviation. Monday is 0.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatMonth returns a 3-letter month abbreviation for months 1-12.
func FormatMonth(month int) string {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	if month >= 1 && month <= 12 {
		return months[month-1]
	}
	return "???"
}

// FormatHour renders an hour of the day as "07:00".
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
