package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateRegex     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDateRegex  = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	relativeRegex = regexp.MustCompile(`^(\d+)\s*(h|hour|hours|d|day|days|w|week|weeks)$`)
)

// ParseDueDate parses the due date formats accepted by add and the form.
// Supported formats:
// - dd/mm/yyyy (e.g., "15/12/2025")
// - yyyy-mm-dd (e.g., "2025-12-15")
// - today, tomorrow
// - X days (e.g., "3 days", "1 day", "3d")
// - X hours (e.g., "24 hours", "1 hour")
// - X weeks (e.g., "2 weeks", "1 week")
// Calendar dates resolve to the end of that day in local time.
func ParseDueDate(input string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	switch strings.ToLower(input) {
	case "today":
		return endOfDay(time.Now(), 0), nil
	case "tomorrow":
		return endOfDay(time.Now(), 1), nil
	}

	if dueDate, err := parseDateFormat(input); err == nil {
		return dueDate, nil
	}

	if dueDate, err := parseISODate(input); err == nil {
		return dueDate, nil
	}

	if dueDate, err := parseRelativeTime(input); err == nil {
		return dueDate, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, yyyy-mm-dd, today, tomorrow, X days, X hours, or X weeks")
}

func endOfDay(t time.Time, addDays int) *time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location()).AddDate(0, 0, addDays)
	return &day
}

// parseDateFormat parses dd/mm/yyyy format
func parseDateFormat(input string) (*time.Time, error) {
	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])
	return buildDate(year, month, day)
}

// parseISODate parses yyyy-mm-dd format
func parseISODate(input string) (*time.Time, error) {
	matches := isoDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	year, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	day, _ := strconv.Atoi(matches[3])
	return buildDate(year, month, day)
}

func buildDate(year, month, day int) (*time.Time, error) {
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("year must be between 2000 and 2100")
	}

	dueDate := time.Date(year, time.Month(month), day, 23, 59, 59, 0, time.Local)
	
	// Check if date is valid (handles leap years, etc.)
	if dueDate.Day() != day || dueDate.Month() != time.Month(month) || dueDate.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}
	
	return &dueDate, nil
}

// parseRelativeTime parses relative time formats like "3 days", "24 hours", etc.
func parseRelativeTime(input string) (*time.Time, error) {
	input = strings.ToLower(input)

	// "X unit", "X units" or "Xd"
	matches := relativeRegex.FindStringSubmatch(input)
	
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative time format")
	}
	
	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}
	
	unit := matches[2]
	now := time.Now()
	
	switch unit {
	case "h", "hour", "hours":
		if amount < 1 || amount > 8760 { // Max 1 year in hours
			return nil, fmt.Errorf("hours must be between 1 and 8760")
		}
		dueDate := now.Add(time.Duration(amount) * time.Hour)
		return &dueDate, nil
		
	case "d", "day", "days":
		if amount < 1 || amount > 365 { // Max 1 year in days
			return nil, fmt.Errorf("days must be between 1 and 365")
		}
		// Set to end of day (23:59:59) for the target date
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		dueDate := today.AddDate(0, 0, amount).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		return &dueDate, nil
		
	case "w", "week", "weeks":
		if amount < 1 || amount > 52 { // Max 1 year in weeks
			return nil, fmt.Errorf("weeks must be between 1 and 52")
		}
		// Set to end of day (23:59:59) for the target date
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		dueDate := today.AddDate(0, 0, amount*7).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		return &dueDate, nil
		
	default:
		return nil, fmt.Errorf("unsupported time unit")
	}
}

// FormatDueDate formats a due date for display with a relative hint.
// layout is the user's display layout; wire formatting lives in the api
// package and is unrelated.
func FormatDueDate(dueDate *time.Time, layout string) string {
	if dueDate == nil {
		return ""
	}

	now := time.Now()
	local := dueDate.In(now.Location())

	// Calculate calendar days difference
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, now.Location())
	daysDiff := int(math.Round(dueDay.Sub(today).Hours() / 24))

	// Always show the actual date to avoid confusion
	dateStr := FormatDate(dueDate, layout)

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("overdue (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("due %s", dateStr)
	}
}

// FormatDate renders a date in local time using layout, falling back to
// dd/mm/yyyy when layout is empty.
func FormatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	if layout == "" {
		layout = "02/01/2006"
	}
	return t.Local().Format(layout)
}
