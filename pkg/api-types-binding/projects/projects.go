package projects

import (
	"github.com/statops/tabstat/pkg/api/types/misc/rfctime"
	"github.com/statops/tabstat/pkg/api/types/projects"
	"github.com/statops/tabstat/pkg/domain"
)

func ComposeDetail(p domain.Project) projects.Detail {
	return projects.Detail{
		ProjectId:   p.ProjectId,
		Name:        p.Name,
		Description: p.Description,
		OwnerId:     p.OwnerId,
		CreatedAt:   rfctime.RFC3339(p.CreatedAt),
	}
}
