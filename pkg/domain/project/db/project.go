package db

import (
	"context"

	"github.com/statops/tabstat/pkg/domain"
)

type Interface interface {
	// Register a new project.
	//
	// Args
	//
	// - context.Context
	//
	// - domain.Project: project to be created. ProjectId and
	// CreatedAt should be set by the caller.
	//
	// Returns
	//
	// - error: dberrors.AlreadyExists when the id is taken.
	Register(ctx context.Context, project domain.Project) error

	// Retrieve projects by id.
	//
	// Args
	//
	// - context.Context
	//
	// - []string: project ids to be searched
	//
	// Returns
	//
	// - map[string]domain.Project: mapping project id to the found
	// project. Ids without a project are left out silently.
	//
	// - error
	Get(ctx context.Context, projectIds []string) (map[string]domain.Project, error)

	// Find lists project ids, newest first.
	//
	// Returns
	//
	// - []string: project ids
	//
	// - error
	Find(ctx context.Context) ([]string, error)

	// Delete a project by id.
	//
	// Returns
	//
	// - error: dberrors.Missing when no such project exists.
	Delete(ctx context.Context, projectId string) error
}
