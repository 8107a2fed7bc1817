package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the numeric task status used by the server
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusDone
	StatusArchived
	StatusWaiting
)

// Statuses lists every known status in display order
var Statuses = []Status{
	StatusNotStarted,
	StatusInProgress,
	StatusDone,
	StatusArchived,
	StatusWaiting,
}

var statusText = map[Status]string{
	StatusNotStarted: "Not Started",
	StatusInProgress: "In Progress",
	StatusDone:       "Done",
	StatusArchived:   "Archived",
	StatusWaiting:    "Waiting",
}

var statusVerb = map[Status]string{
	StatusNotStarted: "not started",
	StatusInProgress: "in progress",
	StatusDone:       "completed",
	StatusArchived:   "archived",
	StatusWaiting:    "waiting",
}

// String returns the display text, "Unknown" for values outside the enum
func (s Status) String() string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return "Unknown"
}

// Verb returns the wording used in "Task marked as ..." notices
func (s Status) Verb() string {
	if verb, ok := statusVerb[s]; ok {
		return verb
	}
	return "unknown"
}

// Known reports whether s is one of the five defined statuses
func (s Status) Known() bool {
	_, ok := statusText[s]
	return ok
}

// ParseStatus accepts a numeric status or its display name
// ("done", "in progress", "in-progress", ...).
func ParseStatus(input string) (Status, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if n, err := strconv.Atoi(input); err == nil {
		s := Status(n)
		if !s.Known() {
			return 0, fmt.Errorf("status must be between 0 and 4, got %d", n)
		}
		return s, nil
	}

	normalized := strings.NewReplacer("-", " ", "_", " ").Replace(input)
	for _, s := range Statuses {
		if strings.ToLower(s.String()) == normalized || s.Verb() == normalized {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q. Use: 0-4, not started, in progress, done, archived, waiting", input)
}
