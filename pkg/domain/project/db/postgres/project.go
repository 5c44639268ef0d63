package postgres

import (
	"context"
	"fmt"

	kpool "github.com/statops/tabstat/pkg/conn/db/postgres/pool"
	"github.com/statops/tabstat/pkg/domain"
	kpgerr "github.com/statops/tabstat/pkg/domain/errors/dberrors/postgres"
	kdbproject "github.com/statops/tabstat/pkg/domain/project/db"
)

type projectPG struct { // implements project/db.Interface
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbproject.Interface {
	return &projectPG{pool: pool}
}

func (p *projectPG) Register(ctx context.Context, project domain.Project) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		`
		insert into "project"
			("project_id", "name", "description", "owner_id", "created_at")
		values
			($1, $2, $3, $4, $5)
		`,
		project.ProjectId, project.Name, project.Description,
		project.OwnerId, project.CreatedAt,
	); err != nil {
		return kpgerr.WrapUniqueViolation(
			err, "project", fmt.Sprintf("project_id='%s'", project.ProjectId),
		)
	}

	return tx.Commit(ctx)
}

func (p *projectPG) Get(ctx context.Context, projectIds []string) (map[string]domain.Project, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return p.get(ctx, conn, projectIds)
}

func (p *projectPG) get(ctx context.Context, conn kpool.Conn, projectIds []string) (map[string]domain.Project, error) {
	result := map[string]domain.Project{}
	if len(projectIds) == 0 {
		return result, nil
	}

	rows, err := conn.Query(
		ctx,
		`
		select "project_id", "name", "description", "owner_id", "created_at"
		from "project"
		where "project_id" = any($1::varchar[])
		`,
		projectIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ProjectId, &project.Name, &project.Description,
			&project.OwnerId, &project.CreatedAt,
		); err != nil {
			return nil, err
		}
		result[project.ProjectId] = project
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (p *projectPG) Find(ctx context.Context) ([]string, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "project_id" from "project"
		order by "created_at" desc, "project_id"
		`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projectIds := []string{}
	for rows.Next() {
		var projectId string
		if err := rows.Scan(&projectId); err != nil {
			return nil, err
		}
		projectIds = append(projectIds, projectId)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projectIds, nil
}

func (p *projectPG) Delete(ctx context.Context, projectId string) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx, `delete from "project" where "project_id" = $1`, projectId,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table: "project", Identity: fmt.Sprintf("project_id='%s'", projectId),
		}
	}

	return tx.Commit(ctx)
}
