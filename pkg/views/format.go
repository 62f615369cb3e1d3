// This file implements display formatting for dates and salary ranges.
// Formatters are total functions: bad input yields a fallback value, never
// an error.
package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Display layouts, day first.
const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

// isoLayouts are the accepted ISO date/time string forms.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// salaryMarkers mean a salary string is already formatted and passes
// through unchanged.
var salaryMarkers = []string{"K", "k", "$", "€", "£", "-", "CHF", "USD", "EUR"}

// FormatTime renders t as DD/MM/YYYY. The zero time yields an empty string.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// FormatTimestamp renders t as DD/MM/YYYY HH:mm, the note-timeline format.
// The zero time yields an empty string.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

// FormatDate renders an ISO date/time string as DD/MM/YYYY. Blank or
// unparseable input yields an empty string.
func FormatDate(iso string) string {
	t, ok := parseISO(iso)
	if !ok {
		return ""
	}
	return FormatTime(t)
}

// FormatDateTime renders an ISO date/time string as DD/MM/YYYY HH:mm. Blank
// or unparseable input yields an empty string.
func FormatDateTime(iso string) string {
	t, ok := parseISO(iso)
	if !ok {
		return ""
	}
	return FormatTimestamp(t)
}

// FormatSalary prepares a salary range for display. Values that already
// carry a currency or unit marker pass through unchanged; a bare number
// gets a K suffix, divided by 1000 first when it is 1000 or more. Anything
// unparseable is returned as supplied.
func FormatSalary(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}

	for _, marker := range salaryMarkers {
		if strings.Contains(cleaned, marker) {
			return raw
		}
	}

	num, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", ""), 64)
	if err != nil {
		return raw
	}
	if num >= 1000 {
		return fmt.Sprintf("%.0fK", num/1000)
	}
	return fmt.Sprintf("%.0fK", num)
}

// parseISO tries the accepted ISO layouts in order.
func parseISO(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
