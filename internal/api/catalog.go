package api

import (
	"context"

	"github.com/balkashynov/tudu/internal/models"
)

// ListProjects fetches projects. Projects only decorate the task list, so
// any failure yields an empty slice and a warning instead of an error.
func (c *Client) ListProjects(ctx context.Context) []models.Project {
	return softList[models.Project](ctx, c, "projects", "/api/projects")
}

// ListTags fetches tags with the same soft-fail policy as ListProjects
func (c *Client) ListTags(ctx context.Context) []models.Tag {
	return softList[models.Tag](ctx, c, "tags", "/api/tags")
}

func softList[T any](ctx context.Context, c *Client, resource, path string) []T {
	raw, err := c.get(ctx, resource, path)
	if err != nil {
		c.logger.Warn("optional fetch failed", "resource", resource, "error", err)
		return []T{}
	}

	col, ok := Normalize[T](raw, resource)
	if !ok {
		c.logger.Warn("optional fetch returned unrecognised shape", "resource", resource)
		return []T{}
	}
	return col.Items
}
