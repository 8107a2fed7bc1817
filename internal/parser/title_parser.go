package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/tudu/internal/models"
)

var (
	tagRegex      = regexp.MustCompile(`(^|\s)#([\p{L}0-9_,-]+)`)
	projectRegex  = regexp.MustCompile(`(^|\s)@([\p{L}0-9_-]+)`)
	priorityRegex = regexp.MustCompile(`(^|\s)\+([a-zA-Z0-9]+)`)
	dueRegex      = regexp.MustCompile(`(^|\s)due:(\S+)`)
)

// ParsedTask represents a task parsed from quick-add text
type ParsedTask struct {
	Name     string
	Project  string
	Tags     []string
	Priority string
	DueDate  *time.Time
	Errors   []string
}

// ParseTitle extracts metadata from quick-add text
// Syntax: "Task name #tag1,tag2 @project +priority due:3days"
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Name:   input,
		Tags:   []string{},
		Errors: []string{},
	}

	// Extract tags (#tag1,tag2 or #tag1 #tag2)
	for _, match := range tagRegex.FindAllStringSubmatch(input, -1) {
		for _, tag := range strings.Split(match[2], ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				result.Tags = append(result.Tags, tag)
			}
		}
	}
	input = tagRegex.ReplaceAllString(input, "$1")

	// Extract project (@project-name); the first one wins
	if matches := projectRegex.FindStringSubmatch(input); len(matches) > 2 {
		result.Project = matches[2]
		input = projectRegex.ReplaceAllString(input, "$1")
	}

	// Extract priority (+high, +3, +medium, etc.)
	if matches := priorityRegex.FindStringSubmatch(input); len(matches) > 2 {
		priority := strings.ToLower(matches[2])
		if isValidPriority(priority) {
			result.Priority = NormalizePriority(priority)
		} else {
			result.Errors = append(result.Errors, "Invalid priority '"+matches[2]+"'. Use: low, medium, high, 1, 2, or 3")
		}
		input = priorityRegex.ReplaceAllString(input, "$1")
	}

	// Extract due date (due:3days, due:15/12/2025, etc.)
	if matches := dueRegex.FindStringSubmatch(input); len(matches) > 2 {
		dueDate, err := ParseDueDate(matches[2])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+matches[2]+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		input = dueRegex.ReplaceAllString(input, "$1")
	}

	// Clean up the name (remove extra spaces)
	result.Name = strings.Join(strings.Fields(input), " ")

	return result
}

// isValidPriority checks if a priority value is valid
func isValidPriority(priority string) bool {
	validPriorities := map[string]bool{
		"low":    true,
		"medium": true,
		"med":    true,
		"high":   true,
		"1":      true,
		"2":      true,
		"3":      true,
	}
	return validPriorities[strings.ToLower(strings.TrimSpace(priority))]
}

// ValidPriority reports whether NormalizePriority understands priority
func ValidPriority(priority string) bool {
	return isValidPriority(priority)
}

// NormalizePriority converts priority to the server's low/medium/high form.
// Empty or unknown input yields medium, the server default.
func NormalizePriority(priority string) string {
	priority = strings.ToLower(strings.TrimSpace(priority))
	switch priority {
	case "1", "low":
		return models.PriorityLow
	case "2", "medium", "med":
		return models.PriorityMedium
	case "3", "high":
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}
