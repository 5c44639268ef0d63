package projects

import (
	"github.com/statops/tabstat/pkg/api/types/misc/rfctime"
)

type Detail struct {
	ProjectId   string          `json:"project_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OwnerId     string          `json:"owner_id"`
	CreatedAt   rfctime.RFC3339 `json:"created_at"`
}

func (d Detail) Equal(o Detail) bool {
	return d.ProjectId == o.ProjectId &&
		d.Name == o.Name &&
		d.Description == o.Description &&
		d.OwnerId == o.OwnerId &&
		d.CreatedAt.Equal(o.CreatedAt)
}

// CreateRequest is the body of a project registration.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
