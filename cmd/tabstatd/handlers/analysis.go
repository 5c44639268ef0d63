package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	bindanalyses "github.com/statops/tabstat/pkg/api-types-binding/analyses"
	apianalyses "github.com/statops/tabstat/pkg/api/types/analyses"
	apierr "github.com/statops/tabstat/pkg/api/types/errors"
	"github.com/statops/tabstat/pkg/domain"
	"github.com/statops/tabstat/pkg/domain/analysis/correlation"
	kdbanalysis "github.com/statops/tabstat/pkg/domain/analysis/db"
	"github.com/statops/tabstat/pkg/domain/dataset/blob"
	kdbdataset "github.com/statops/tabstat/pkg/domain/dataset/db"
	kerr "github.com/statops/tabstat/pkg/domain/errors"
)

// DefaultThreshold applies when an analysis request does not pass
// ?threshold= .
const DefaultThreshold = 0.3

func parseThreshold(c echo.Context) (float64, error) {
	param := c.QueryParam("threshold")
	if param == "" {
		return DefaultThreshold, nil
	}

	threshold, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return 0, apierr.BadRequest("threshold should be a number", err)
	}
	if math.IsNaN(threshold) || threshold < 0.0 || threshold > 1.0 {
		return 0, apierr.BadRequest("threshold should be in range [0.0, 1.0]", nil)
	}
	return threshold, nil
}

// analyzerFor reads the dataset blob and builds an Analyzer over it.
// Errors come back ready to return from a handler.
func analyzerFor(
	ctx context.Context,
	dbDataset kdbdataset.Interface,
	store blob.Store,
	datasetId string,
) (*correlation.Analyzer, error) {
	_, f, err := datasetFrame(ctx, dbDataset, store, datasetId)
	if err != nil {
		return nil, err
	}

	analyzer, err := correlation.New(f)
	if err != nil {
		if errors.Is(err, correlation.ErrEmptyTable) {
			return nil, apierr.UnprocessableEntity(
				"the dataset has no rows to analyze", err,
			)
		}
		return nil, apierr.InternalServerError(err)
	}
	return analyzer, nil
}

func GetEnhancedCorrelationsHandler(dbDataset kdbdataset.Interface, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		threshold, err := parseThreshold(c)
		if err != nil {
			return err
		}

		analyzer, err := analyzerFor(ctx, dbDataset, store, datasetId)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, apianalyses.EnhancedResponse{
			Meta: bindanalyses.ComposeMeta(
				datasetId, domain.AnalysisEnhanced, time.Now(),
				analyzer.TotalFeatures(), &threshold,
			),
			Analysis: bindanalyses.ComposeEnhanced(analyzer.EnhancedCorrelations(threshold)),
		})
	}
}

func GetVIFHandler(dbDataset kdbdataset.Interface, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		analyzer, err := analyzerFor(ctx, dbDataset, store, datasetId)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, apianalyses.VIFResponse{
			Meta: bindanalyses.ComposeMeta(
				datasetId, domain.AnalysisVIF, time.Now(),
				analyzer.TotalFeatures(), nil,
			),
			Analysis: bindanalyses.ComposeVIF(analyzer.VIF()),
		})
	}
}

func GetHeatmapHandler(dbDataset kdbdataset.Interface, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		analyzer, err := analyzerFor(ctx, dbDataset, store, datasetId)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, apianalyses.HeatmapResponse{
			Meta: bindanalyses.ComposeMeta(
				datasetId, domain.AnalysisHeatmap, time.Now(),
				analyzer.TotalFeatures(), nil,
			),
			Analysis: bindanalyses.ComposeHeatmap(analyzer.HeatmapData()),
		})
	}
}

func GetClusteringHandler(dbDataset kdbdataset.Interface, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		analyzer, err := analyzerFor(ctx, dbDataset, store, datasetId)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, apianalyses.ClusteringResponse{
			Meta: bindanalyses.ComposeMeta(
				datasetId, domain.AnalysisClustering, time.Now(),
				analyzer.TotalFeatures(), nil,
			),
			Analysis: bindanalyses.ComposeClustering(analyzer.Clustering()),
		})
	}
}

func GetInsightsHandler(dbDataset kdbdataset.Interface, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		analyzer, err := analyzerFor(ctx, dbDataset, store, datasetId)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, apianalyses.InsightsResponse{
			Meta: bindanalyses.ComposeMeta(
				datasetId, domain.AnalysisInsights, time.Now(),
				analyzer.TotalFeatures(), nil,
			),
			Analysis: bindanalyses.ComposeInsights(analyzer.RelationshipInsights()),
		})
	}
}

func GetWarningsHandler(dbDataset kdbdataset.Interface, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		analyzer, err := analyzerFor(ctx, dbDataset, store, datasetId)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, apianalyses.WarningsResponse{
			Meta: bindanalyses.ComposeMeta(
				datasetId, domain.AnalysisWarnings, time.Now(),
				analyzer.TotalFeatures(), nil,
			),
			Analysis: bindanalyses.ComposeWarnings(analyzer.MulticollinearityWarnings()),
		})
	}
}

// GetCompleteAnalysisHandler serves every analysis at once.
//
// The composed payload is cached per (dataset, threshold); a later
// request for the same pair answers from the cache byte for byte,
// without touching the blob.
func GetCompleteAnalysisHandler(
	dbDataset kdbdataset.Interface,
	dbAnalysis kdbanalysis.Interface,
	store blob.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		datasetId := c.Param("datasetId")

		threshold, err := parseThreshold(c)
		if err != nil {
			return err
		}

		cached, err := dbAnalysis.Get(ctx, datasetId, domain.AnalysisComplete, threshold)
		if err == nil {
			return c.JSONBlob(http.StatusOK, cached.Payload)
		}
		if !errors.Is(err, kerr.ErrMissing) {
			return apierr.InternalServerError(err)
		}

		analyzer, err := analyzerFor(ctx, dbDataset, store, datasetId)
		if err != nil {
			return err
		}

		computedAt := time.Now()
		payload, err := json.Marshal(apianalyses.CompleteResponse{
			Meta: bindanalyses.ComposeMeta(
				datasetId, domain.AnalysisComplete, computedAt,
				analyzer.TotalFeatures(), &threshold,
			),
			Analysis: bindanalyses.ComposeComplete(analyzer.CompleteAnalysis(threshold)),
		})
		if err != nil {
			return apierr.InternalServerError(err)
		}

		if err := dbAnalysis.Save(ctx, domain.AnalysisRecord{
			DatasetId:  datasetId,
			Kind:       domain.AnalysisComplete,
			Threshold:  threshold,
			Payload:    payload,
			ComputedAt: computedAt,
		}); err != nil {
			// losing the cache entry costs a recompute, not the response
			c.Logger().Warnf("analysis of dataset %s is not cached: %s", datasetId, err)
		}

		return c.JSONBlob(http.StatusOK, payload)
	}
}
