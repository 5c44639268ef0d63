package domain

import "time"

// Project groups datasets under one owner.
type Project struct {
	ProjectId   string
	Name        string
	Description string
	OwnerId     string
	CreatedAt   time.Time
}

func (p *Project) Equal(o *Project) bool {
	if (p == nil) || (o == nil) {
		return (p == nil) && (o == nil)
	}

	return p.ProjectId == o.ProjectId &&
		p.Name == o.Name &&
		p.Description == o.Description &&
		p.OwnerId == o.OwnerId &&
		p.CreatedAt.Equal(o.CreatedAt)
}
