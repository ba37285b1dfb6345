package hours

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the display date format used across the workbook (DD/MM/YY).
const DateLayout = "02/01/06"

var leadingNumber = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)

// NormalizeDuration canonicalizes a duration cell to "<number> hrs".
// "2.5" and "2.5 hrs" both yield "2.5 hrs"; re-normalizing is a no-op.
// Anything without a leading numeric token degrades to "0 hrs".
func NormalizeDuration(s string) string {
	matches := leadingNumber.FindStringSubmatch(s)
	if len(matches) < 2 {
		return "0 hrs"
	}
	return matches[1] + " hrs"
}

// ParseDuration returns the numeric hour value of a duration cell,
// tolerating a missing or malformed unit suffix. Malformed input yields 0.
func ParseDuration(s string) float64 {
	matches := leadingNumber.FindStringSubmatch(s)
	if len(matches) < 2 {
		return 0
	}
	v, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatDate renders a time in the workbook's DD/MM/YY form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a date cell, accepting DD/MM/YY first and then a few
// common spreadsheet exports.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)

	formats := []string{
		DateLayout,
		"02/01/2006",
		"2006-01-02",
		"01-02-06",
		"Jan 2, 2006",
		"2 January 2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseTimestamp parses an RFC 3339 creation/update timestamp cell.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", s)
}

// ParsedCommand is the result of parsing a free-text logging command such
// as "log 2.5 hours for Acme \"AP replacement\"".
type ParsedCommand struct {
	ClientName      string
	DurationInHours float64
	WorkDescription string
}

var (
	hoursPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:hours?|hrs?)`)
	clientPattern = regexp.MustCompile(`for\s+([A-Za-z][\w&-]*(?:\s+[A-Za-z][\w&-]*)?)`)
	quotedPattern = regexp.MustCompile(`"([^"]+)"`)
)

// ParseCommand extracts client, duration and description from a free-text
// command without calling any external service. Used as the degraded path
// when the AI parse fails.
func ParseCommand(input string) (*ParsedCommand, error) {
	cmd := &ParsedCommand{}

	if matches := hoursPattern.FindStringSubmatch(strings.ToLower(input)); len(matches) > 1 {
		v, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours format: %w", err)
		}
		cmd.DurationInHours = v
	} else {
		return nil, fmt.Errorf("no hours specified in input")
	}

	if matches := clientPattern.FindStringSubmatch(input); len(matches) > 1 {
		cmd.ClientName = strings.TrimSpace(matches[1])
	}
	if cmd.ClientName == "" {
		return nil, fmt.Errorf("no client name found in input")
	}

	if matches := quotedPattern.FindStringSubmatch(input); len(matches) > 1 {
		cmd.WorkDescription = matches[1]
	}

	return cmd, nil
}
