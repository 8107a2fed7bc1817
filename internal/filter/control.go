package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/balkashynov/tudu/internal/models"
)

// Kind says which facet a dropdown selection restricts
type Kind int

const (
	KindStatus Kind = iota
	KindProject
)

const (
	statusPrefix  = "status-"
	projectPrefix = "project-"
)

// Selection is one value of the combined filter dropdown
type Selection struct {
	Kind  Kind
	Value string
}

// StatusSelection selects a status ("all" or a number)
func StatusSelection(value string) Selection {
	return Selection{Kind: KindStatus, Value: value}
}

// ProjectSelection selects a project ("", NoProject or an id)
func ProjectSelection(value string) Selection {
	return Selection{Kind: KindProject, Value: value}
}

// String encodes the selection as a dropdown value
func (s Selection) String() string {
	if s.Kind == KindProject {
		return projectPrefix + s.Value
	}
	return statusPrefix + s.Value
}

// Facets expands the selection; the facet it does not name is cleared
func (s Selection) Facets() Facets {
	if s.Kind == KindProject {
		return Facets{Status: StatusAll, Project: s.Value}
	}
	return Facets{Status: s.Value}
}

// ParseSelection decodes a dropdown value such as "status-2",
// "project-7", "project-no-project" or "project-".
func ParseSelection(value string) (Selection, error) {
	switch {
	case strings.HasPrefix(value, statusPrefix):
		v := strings.TrimPrefix(value, statusPrefix)
		if v != StatusAll {
			n, err := strconv.Atoi(v)
			if err != nil || !models.Status(n).Known() {
				return Selection{}, fmt.Errorf("invalid status filter %q", value)
			}
			v = strconv.Itoa(n)
		}
		return StatusSelection(v), nil

	case strings.HasPrefix(value, projectPrefix):
		v, err := ParseProject(strings.TrimPrefix(value, projectPrefix))
		if err != nil {
			return Selection{}, fmt.Errorf("invalid project filter %q", value)
		}
		return ProjectSelection(v), nil

	default:
		return Selection{}, fmt.Errorf("unknown filter %q", value)
	}
}

// ParseProject checks a project facet value and returns it in canonical
// form, so "05" and "+5" both become "5".
func ParseProject(raw string) (string, error) {
	if raw == "" || raw == NoProject {
		return raw, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// Control is the single dropdown that drives both facets. Only one facet
// is restrictive at a time: selecting a project resets the status to all
// and selecting a status clears the project.
type Control struct {
	sel Selection
}

// NewControl returns a control showing every task
func NewControl() *Control {
	return &Control{sel: StatusSelection(StatusAll)}
}

// Set replaces the active selection. Unknown values leave it untouched.
func (c *Control) Set(value string) error {
	sel, err := ParseSelection(value)
	if err != nil {
		return err
	}
	c.sel = sel
	return nil
}

// Select replaces the active selection
func (c *Control) Select(sel Selection) {
	c.sel = sel
}

// Selection returns the active selection
func (c *Control) Selection() Selection {
	return c.sel
}

// Facets returns the facets currently in effect
func (c *Control) Facets() Facets {
	return c.sel.Facets()
}

// Value returns the dropdown value to show as selected. A project
// selection of "all projects" reads back as "status-all".
func (c *Control) Value() string {
	f := c.Facets()
	switch {
	case f.Status != StatusAll:
		return statusPrefix + f.Status
	case f.Project != "":
		return projectPrefix + f.Project
	default:
		return statusPrefix + StatusAll
	}
}

// Option is one dropdown entry
type Option struct {
	Title string
	Value string
}

// Section groups dropdown entries under a heading
type Section struct {
	Title   string
	Options []Option
}

// Options builds the dropdown: a Status section followed by a Project
// section listing every project in the order received.
func Options(projects []models.Project) []Section {
	status := Section{Title: "Status", Options: []Option{{Title: "All", Value: statusPrefix + StatusAll}}}
	for _, s := range models.Statuses {
		status.Options = append(status.Options, Option{
			Title: s.String(),
			Value: StatusSelection(strconv.Itoa(int(s))).String(),
		})
	}

	project := Section{Title: "Project", Options: []Option{
		{Title: "All Projects", Value: projectPrefix},
		{Title: "No Project", Value: projectPrefix + NoProject},
	}}
	for _, p := range projects {
		project.Options = append(project.Options, Option{
			Title: p.Name,
			Value: ProjectSelection(strconv.FormatInt(p.Key(), 10)).String(),
		})
	}

	return []Section{status, project}
}
