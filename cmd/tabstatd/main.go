package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/statops/tabstat/pkg/buildtime"
	kcs "github.com/statops/tabstat/pkg/configs/server"
	"github.com/statops/tabstat/pkg/domain/auth"
	"github.com/statops/tabstat/pkg/domain/dataset/blob"
	kpg "github.com/statops/tabstat/pkg/domain/tabstat/db/postgres"
	"github.com/statops/tabstat/pkg/utils/echoutil"
	"github.com/statops/tabstat/pkg/utils/filewatch"
	kstrings "github.com/statops/tabstat/pkg/utils/strings"

	"github.com/statops/tabstat/cmd/tabstatd/handlers"
)

func main() {

	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf, err := kcs.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	{
		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
		if err != nil {
			log.Fatalf("can not watch configration: %s", err)
		}
		defer cancel()
		context.AfterFunc(ctx, func() {
			log.Println("config file is updated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by config update: %s", err)
			}
		})
	}

	api := root("/api")

	ctx := context.Background()
	db, err := kpg.New(ctx, conf.Database())
	if err != nil {
		log.Fatalf("can not connect to database: %s", err)
	}
	defer db.Close()

	if err := db.Schema().Upgrade(ctx); err != nil {
		log.Fatalf("can not upgrade database schema: %s", err)
	}

	store, err := blobStore(conf.Blob())
	if err != nil {
		log.Fatalf("can not set up the blob store: %s", err)
	}

	authority := auth.NewAuthority(
		[]byte(conf.Auth().Secret()), conf.Auth().TokenExpiry(),
	)
	e.Use(handlers.TokenAuth(
		authority,
		api("health"), api("auth/register"), api("auth/login"),
	))

	// handlers
	{
		e.GET(api("health"), handlers.HealthHandler("tabstatd", buildtime.VERSION()))
		e.POST(api("auth/register"), handlers.RegisterHandler(db.Users(), authority))
		e.POST(api("auth/login"), handlers.LoginHandler(db.Users(), authority))
	}

	{
		e.POST(api("projects"), handlers.CreateProjectHandler(db.Projects()))
		e.GET(api("projects"), handlers.FindProjectHandler(db.Projects()))
		e.GET(api("projects/:projectId"), handlers.GetProjectHandler(db.Projects()))
		e.DELETE(
			api("projects/:projectId"),
			handlers.DeleteProjectHandler(db.Projects(), db.Datasets()),
		)
	}

	{
		e.POST(
			api("datasets"),
			handlers.UploadDatasetHandler(db.Datasets(), db.Projects(), store),
		)
		e.GET(api("datasets"), handlers.FindDatasetHandler(db.Datasets()))
		e.GET(api("datasets/:datasetId"), handlers.GetDatasetHandler(db.Datasets()))
		e.DELETE(
			api("datasets/:datasetId"),
			handlers.DeleteDatasetHandler(db.Datasets(), db.Analyses(), store),
		)

		e.GET(
			api("datasets/:datasetId/preview"),
			handlers.GetDatasetPreviewHandler(db.Datasets(), store),
		)
		e.GET(
			api("datasets/:datasetId/summary"),
			handlers.GetDatasetSummaryHandler(db.Datasets(), store),
		)
		e.GET(
			api("datasets/:datasetId/quality"),
			handlers.GetDatasetQualityHandler(db.Datasets(), store),
		)
	}

	{
		e.GET(
			api("datasets/:datasetId/correlations/enhanced"),
			handlers.GetEnhancedCorrelationsHandler(db.Datasets(), store),
		)
		e.GET(
			api("datasets/:datasetId/correlations/vif"),
			handlers.GetVIFHandler(db.Datasets(), store),
		)
		e.GET(
			api("datasets/:datasetId/correlations/heatmap"),
			handlers.GetHeatmapHandler(db.Datasets(), store),
		)
		e.GET(
			api("datasets/:datasetId/correlations/clustering"),
			handlers.GetClusteringHandler(db.Datasets(), store),
		)
		e.GET(
			api("datasets/:datasetId/correlations/insights"),
			handlers.GetInsightsHandler(db.Datasets(), store),
		)
		e.GET(
			api("datasets/:datasetId/correlations/warnings"),
			handlers.GetWarningsHandler(db.Datasets(), store),
		)
		e.GET(
			api("datasets/:datasetId/correlations/complete"),
			handlers.GetCompleteAnalysisHandler(db.Datasets(), db.Analyses(), store),
		)
	}

	{
		e.POST(
			api("jobs/pipelines/:pipelineName"),
			handlers.SubmitJobHandler(db.Jobs(), conf.Worker().Pipelines()),
		)
		e.GET(api("jobs"), handlers.FindJobHandler(db.Jobs()))
		e.GET(api("jobs/:jobId"), handlers.GetJobHandler(db.Jobs()))
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(fmt.Sprintf(":%d", conf.Port()), cert, key))
	} else {
		e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", conf.Port())))
	}
}

func blobStore(conf *kcs.BlobConfig) (blob.Store, error) {
	switch conf.Backend() {
	case kcs.BlobBackendLocal:
		return blob.NewLocalStore(conf.Local().Root()), nil
	case kcs.BlobBackendMinio:
		m := conf.Minio()
		return blob.NewMinioStore(blob.MinioConfig{
			Endpoint:  m.Endpoint(),
			AccessKey: m.AccessKey(),
			SecretKey: m.SecretKey(),
			UseSSL:    m.UseSSL(),
			Bucket:    m.Bucket(),
			Prefix:    m.Prefix(),
		})
	default:
		return nil, fmt.Errorf("unknown blob backend: %s", conf.Backend())
	}
}

// create api URL factory
//
// args:
//   - base: api root
//
// return:
// - func: it receives relative path from the root, and returns the
//   full, "/" terminated path.
func root(base string) func(...string) string {
	return func(s ...string) string {
		parts := make([]string, len(s)+1)
		parts[0] = base
		copy(parts[1:], s)
		return kstrings.SuppySuffix(path.Join(parts...), "/")
	}
}
