package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	binddatasets "github.com/statops/tabstat/pkg/api-types-binding/datasets"
	apidatasets "github.com/statops/tabstat/pkg/api/types/datasets"
	apierr "github.com/statops/tabstat/pkg/api/types/errors"
	"github.com/statops/tabstat/pkg/domain"
	kdbanalysis "github.com/statops/tabstat/pkg/domain/analysis/db"
	"github.com/statops/tabstat/pkg/domain/analysis/frame"
	"github.com/statops/tabstat/pkg/domain/dataset/blob"
	kdbdataset "github.com/statops/tabstat/pkg/domain/dataset/db"
	kerr "github.com/statops/tabstat/pkg/domain/errors"
	kdbproject "github.com/statops/tabstat/pkg/domain/project/db"
)

// UploadDatasetHandler accepts a multipart CSV upload and registers it
// as a dataset of a project.
//
// Fields: file (the CSV), name, project_id, description (optional).
//
// The payload is parsed before anything is stored, so a dataset record
// always points at a readable table.
func UploadDatasetHandler(
	dbDataset kdbdataset.Interface,
	dbProject kdbproject.Interface,
	store blob.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		name := c.FormValue("name")
		projectId := c.FormValue("project_id")
		description := c.FormValue("description")

		if name == "" {
			return apierr.BadRequest("name is required", nil)
		}
		if projectId == "" {
			return apierr.BadRequest("project_id is required", nil)
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return apierr.BadRequest("send the dataset as multipart field `file`", err)
		}

		projects, err := dbProject.Get(ctx, []string{projectId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if _, ok := projects[projectId]; !ok {
			return apierr.NotFound()
		}

		file, err := fileHeader.Open()
		if err != nil {
			return apierr.InternalServerError(err)
		}
		defer file.Close()

		payload, err := io.ReadAll(file)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if _, err := frame.FromCSV(bytes.NewReader(payload)); err != nil {
			return apierr.BadRequest("file should be well-formed CSV with a header line", err)
		}

		dataset := domain.Dataset{
			DatasetId:     uuid.NewString(),
			ProjectId:     projectId,
			Name:          name,
			Description:   description,
			FileName:      fileHeader.Filename,
			FileSizeBytes: int64(len(payload)),
			CreatedAt:     time.Now(),
		}
		dataset.BlobKey = fmt.Sprintf("datasets/%s.csv", dataset.DatasetId)

		if err := store.Put(ctx, dataset.BlobKey, bytes.NewReader(payload), dataset.FileSizeBytes); err != nil {
			return apierr.InternalServerError(err)
		}
		if err := dbDataset.Register(ctx, dataset); err != nil {
			// the blob exists but its record does not. take it back.
			if derr := store.Delete(ctx, dataset.BlobKey); derr != nil {
				c.Logger().Warnf("orphan blob %s is left: %s", dataset.BlobKey, derr)
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, binddatasets.ComposeDetail(dataset))
	}
}

func FindDatasetHandler(dbDataset kdbdataset.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		projectId := c.QueryParam("project")

		datasetIds, err := dbDataset.Find(ctx, projectId)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if len(datasetIds) == 0 {
			return c.JSON(http.StatusOK, []apidatasets.Detail{})
		}

		datasets, err := dbDataset.Get(ctx, datasetIds)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		found := make([]apidatasets.Detail, 0, len(datasets))
		for _, id := range datasetIds {
			if d, ok := datasets[id]; ok {
				found = append(found, binddatasets.ComposeDetail(d))
			}
		}

		return c.JSON(http.StatusOK, found)
	}
}

func GetDatasetHandler(dbDataset kdbdataset.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		datasets, err := dbDataset.Get(ctx, []string{datasetId})
		if err != nil {
			return apierr.InternalServerError(err)
		}

		dataset, ok := datasets[datasetId]
		if !ok {
			return apierr.NotFound()
		}

		return c.JSON(http.StatusOK, binddatasets.ComposeDetail(dataset))
	}
}

// DeleteDatasetHandler removes the dataset record, its cached analyses
// and its blob, in that order. Once the record is gone no new request
// can reach the blob, so a failure halfway leaves garbage, not a
// dataset pointing into the void.
func DeleteDatasetHandler(
	dbDataset kdbdataset.Interface,
	dbAnalysis kdbanalysis.Interface,
	store blob.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		datasets, err := dbDataset.Get(ctx, []string{datasetId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		dataset, ok := datasets[datasetId]
		if !ok {
			return apierr.NotFound()
		}

		if err := dbDataset.Delete(ctx, datasetId); err != nil {
			if errors.Is(err, kerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		if err := dbAnalysis.Drop(ctx, datasetId); err != nil {
			return apierr.InternalServerError(err)
		}
		if err := store.Delete(ctx, dataset.BlobKey); err != nil {
			return apierr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

func GetDatasetPreviewHandler(dbDataset kdbdataset.Interface, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		rows, err := func() (int, error) {
			param := c.QueryParam("rows")
			if param == "" {
				return 100, nil
			}
			rows, err := strconv.Atoi(param)
			if err != nil || rows < 1 {
				return 0, apierr.BadRequest("rows should be a positive integer", err)
			}
			return rows, nil
		}()
		if err != nil {
			return err
		}

		_, f, err := datasetFrame(ctx, dbDataset, store, datasetId)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, binddatasets.ComposePreview(datasetId, f, rows))
	}
}

func GetDatasetSummaryHandler(dbDataset kdbdataset.Interface, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		dataset, f, err := datasetFrame(ctx, dbDataset, store, datasetId)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, binddatasets.ComposeSummary(dataset, f))
	}
}

func GetDatasetQualityHandler(dbDataset kdbdataset.Interface, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		_, f, err := datasetFrame(ctx, dbDataset, store, datasetId)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, binddatasets.ComposeQuality(datasetId, f))
	}
}

// datasetFrame fetches a dataset record and materializes its blob as
// a Frame. Errors come back ready to return from a handler.
func datasetFrame(
	ctx context.Context,
	dbDataset kdbdataset.Interface,
	store blob.Store,
	datasetId string,
) (domain.Dataset, *frame.Frame, error) {
	datasets, err := dbDataset.Get(ctx, []string{datasetId})
	if err != nil {
		return domain.Dataset{}, nil, apierr.InternalServerError(err)
	}
	dataset, ok := datasets[datasetId]
	if !ok {
		return domain.Dataset{}, nil, apierr.NotFound()
	}

	r, err := store.Open(ctx, dataset.BlobKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return domain.Dataset{}, nil, apierr.NotFound()
		}
		return domain.Dataset{}, nil, apierr.InternalServerError(err)
	}
	defer r.Close()

	f, err := frame.FromCSV(r)
	if err != nil {
		// the blob was parsed at upload. failing here means it rotted.
		return domain.Dataset{}, nil, apierr.InternalServerError(err)
	}

	return dataset, f, nil
}
