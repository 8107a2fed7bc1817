package filter

import (
	"strconv"

	"github.com/balkashynov/tudu/internal/models"
)

// Sentinel facet values
const (
	StatusAll = "all"
	NoProject = "no-project"
)

// Facets are the two filter dimensions. Status is StatusAll or a numeric
// status; Project is empty (any), NoProject, or a numeric project id.
type Facets struct {
	Status  string
	Project string
}

// All returns facets that match every task
func All() Facets {
	return Facets{Status: StatusAll}
}

// Restrictive reports whether the facets hide anything
func (f Facets) Restrictive() bool {
	return (f.Status != "" && f.Status != StatusAll) || f.Project != ""
}

// Match reports whether task is visible under f
func (f Facets) Match(task models.Task) bool {
	return f.matchStatus(task) && f.matchProject(task)
}

func (f Facets) matchStatus(task models.Task) bool {
	if f.Status == "" || f.Status == StatusAll {
		return true
	}
	return strconv.Itoa(int(task.Status)) == f.Status
}

func (f Facets) matchProject(task models.Task) bool {
	switch f.Project {
	case "":
		return true
	case NoProject:
		return !task.HasProject()
	default:
		return task.HasProject() && strconv.FormatInt(*task.ProjectID, 10) == f.Project
	}
}

// Apply returns the tasks visible under f in their original order
func Apply(tasks []models.Task, f Facets) []models.Task {
	visible := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Match(task) {
			visible = append(visible, task)
		}
	}
	return visible
}
