package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/statops/tabstat/cmd/tabstat-worker/recurring"
	"github.com/statops/tabstat/cmd/tabstat-worker/tasks/pipeline"
	kcs "github.com/statops/tabstat/pkg/configs/server"
	kpg "github.com/statops/tabstat/pkg/domain/tabstat/db/postgres"
	"github.com/statops/tabstat/pkg/loop"
	"github.com/statops/tabstat/pkg/utils/filewatch"
	"github.com/statops/tabstat/pkg/utils/try"
)

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	// call cancel() when this function exits
	defer cancel()

	pconfig := flag.String(
		"config", os.Getenv("TABSTAT_CONFIG"), "path to config file",
	)
	flag.Parse()

	{
		// watch config. when it changes, quit to restart with the new one.
		wctx, cancel, err := filewatch.UntilModifyContext(ctx, *pconfig)
		if err != nil {
			logger.Fatal(err)
		}
		defer cancel()
		ctx = wctx
	}

	conf := try.To(kcs.LoadServerConfig(*pconfig)).OrFatal(logger)

	db := try.To(kpg.New(ctx, conf.Database())).OrFatal(logger)
	defer db.Close()

	if err := db.Schema().Upgrade(ctx); err != nil {
		logger.Fatal(err)
	}

	policy := recurring.UntilError(recurring.Forever(conf.Worker().PollInterval()))
	task := pipeline.Task(db.Jobs(), conf.Worker().Pipelines(), pipeline.Exec)

	logger.Printf(`start pipeline worker /w policy "%s"`, policy.String())

	_, err := loop.Start(
		ctx, pipeline.Seed(), monitor(logger, task.Applied(policy)),
	)

	if err == nil || errors.Is(err, context.Canceled) {
		logger.Println("quit:", context.Cause(ctx))
		return
	}
	logger.Fatal(err)
}

// Wrapper for monitoring loop tasks
//
//	Log the start and end of each time a task is executed. Essentially, it executes a task.
func monitor[T any](logger *log.Logger, task loop.Task[T]) loop.Task[T] {
	// counter for execution of the task
	var counter uint64
	return func(ctx context.Context, t T) (ret T, next loop.Next) {
		counter += 1
		timestamp := time.Now()

		logger.Printf("task start: #0x%X: ", counter)

		// log at the end of the task
		defer func() {
			logger.Printf(
				"task end: #0x%X (takes %s): %s\n with value = %#v",
				counter, time.Since(timestamp), next, ret,
			)
		}()

		ret, next = task(ctx, t)
		return
	}
}
