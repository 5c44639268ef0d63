package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	bindprojects "github.com/statops/tabstat/pkg/api-types-binding/projects"
	apierr "github.com/statops/tabstat/pkg/api/types/errors"
	apiprojects "github.com/statops/tabstat/pkg/api/types/projects"
	"github.com/statops/tabstat/pkg/domain"
	kdbdataset "github.com/statops/tabstat/pkg/domain/dataset/db"
	kerr "github.com/statops/tabstat/pkg/domain/errors"
	kdbproject "github.com/statops/tabstat/pkg/domain/project/db"
)

func CreateProjectHandler(dbProject kdbproject.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		claims, ok := currentClaims(c)
		if !ok {
			return apierr.Unauthorized("log in first", nil)
		}

		req := apiprojects.CreateRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
			return apierr.BadRequest("can not understand the requested json", err)
		}
		if req.Name == "" {
			return apierr.BadRequest("name is required", nil)
		}

		project := domain.Project{
			ProjectId:   uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			OwnerId:     claims.Subject,
			CreatedAt:   time.Now(),
		}
		if err := dbProject.Register(ctx, project); err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindprojects.ComposeDetail(project))
	}
}

func FindProjectHandler(dbProject kdbproject.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		projectIds, err := dbProject.Find(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if len(projectIds) == 0 {
			return c.JSON(http.StatusOK, []apiprojects.Detail{})
		}

		projects, err := dbProject.Get(ctx, projectIds)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		found := make([]apiprojects.Detail, 0, len(projects))
		for _, id := range projectIds {
			if p, ok := projects[id]; ok {
				found = append(found, bindprojects.ComposeDetail(p))
			}
		}

		return c.JSON(http.StatusOK, found)
	}
}

func GetProjectHandler(dbProject kdbproject.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		projectId := c.Param("projectId")

		projects, err := dbProject.Get(ctx, []string{projectId})
		if err != nil {
			return apierr.InternalServerError(err)
		}

		project, ok := projects[projectId]
		if !ok {
			return apierr.NotFound()
		}

		return c.JSON(http.StatusOK, bindprojects.ComposeDetail(project))
	}
}

// DeleteProjectHandler removes an empty project.
//
// A project still holding datasets is not deleted; its datasets should
// be deleted first, so no blob is left behind unaccounted.
func DeleteProjectHandler(dbProject kdbproject.Interface, dbDataset kdbdataset.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		projectId := c.Param("projectId")

		datasetIds, err := dbDataset.Find(ctx, projectId)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if len(datasetIds) != 0 {
			return apierr.Conflict(
				"project still has datasets",
				apierr.WithAdvice("delete the datasets of this project first"),
			)
		}

		if err := dbProject.Delete(ctx, projectId); err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
