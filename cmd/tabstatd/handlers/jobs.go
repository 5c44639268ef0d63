package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	bindjobs "github.com/statops/tabstat/pkg/api-types-binding/jobs"
	apierr "github.com/statops/tabstat/pkg/api/types/errors"
	apijobs "github.com/statops/tabstat/pkg/api/types/jobs"
	"github.com/statops/tabstat/pkg/domain"
	kdbjob "github.com/statops/tabstat/pkg/domain/job/db"
)

// SubmitJobHandler queues one execution of a configured pipeline.
//
// pipelines is the configured pipeline set; a name outside it is 404,
// same as any other missing resource. The job is accepted, not run:
// a worker picks it up later.
func SubmitJobHandler(dbJob kdbjob.Interface, pipelines map[string][]string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		pipelineName := c.Param("pipelineName")

		if _, ok := pipelines[pipelineName]; !ok {
			return apierr.NotFound()
		}

		claims, ok := currentClaims(c)
		if !ok {
			return apierr.Unauthorized("log in first", nil)
		}

		// the body is optional. no body means no parameters.
		req := apijobs.SubmitRequest{}
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return apierr.BadRequest("can not understand the requested json", err)
		}

		job := domain.Job{
			JobId:        uuid.NewString(),
			PipelineName: pipelineName,
			UserId:       claims.Subject,
			Status:       domain.JobPending,
			Parameters:   req.Parameters,
			CreatedAt:    time.Now(),
		}
		if err := dbJob.Register(ctx, job); err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusAccepted, bindjobs.ComposeDetail(job))
	}
}

func FindJobHandler(dbJob kdbjob.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		query, err := func() (domain.JobFindQuery, error) {
			query := domain.JobFindQuery{}

			if param := c.QueryParam("status"); param != "" {
				status, err := domain.AsJobStatus(param)
				if err != nil {
					return query, apierr.BadRequest(
						"status should be one of pending, running, completed or failed", err,
					)
				}
				query.Status = &status
			}

			limit := 50
			if param := c.QueryParam("limit"); param != "" {
				parsed, err := strconv.Atoi(param)
				if err != nil || parsed < 1 {
					return query, apierr.BadRequest("limit should be a positive integer", err)
				}
				limit = parsed
			}
			query.Limit = &limit

			return query, nil
		}()
		if err != nil {
			return err
		}

		jobIds, err := dbJob.Find(ctx, query)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if len(jobIds) == 0 {
			return c.JSON(http.StatusOK, []apijobs.Detail{})
		}

		jobs, err := dbJob.Get(ctx, jobIds)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		found := make([]apijobs.Detail, 0, len(jobs))
		for _, id := range jobIds {
			if j, ok := jobs[id]; ok {
				found = append(found, bindjobs.ComposeDetail(j))
			}
		}

		return c.JSON(http.StatusOK, found)
	}
}

func GetJobHandler(dbJob kdbjob.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		jobId := c.Param("jobId")

		jobs, err := dbJob.Get(ctx, []string{jobId})
		if err != nil {
			return apierr.InternalServerError(err)
		}

		job, ok := jobs[jobId]
		if !ok {
			return apierr.NotFound()
		}

		return c.JSON(http.StatusOK, bindjobs.ComposeDetail(job))
	}
}
