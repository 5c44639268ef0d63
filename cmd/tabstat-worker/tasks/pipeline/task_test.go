package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/statops/tabstat/cmd/tabstat-worker/tasks/pipeline"
	"github.com/statops/tabstat/pkg/domain"
	mockjobdb "github.com/statops/tabstat/pkg/domain/job/db/mock"
	"github.com/statops/tabstat/pkg/utils/cmp"
)

var pipelines = map[string][]string{
	"quality-report": {"python3", "report.py"},
}

func claimedJob(pipelineName string) *domain.Job {
	started := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Job{
		JobId:        "job-1",
		PipelineName: pipelineName,
		UserId:       "user-pooh",
		Status:       domain.JobRunning,
		Parameters:   map[string]string{"format": "pdf"},
		CreatedAt:    started.Add(-time.Minute),
		StartedAt:    &started,
	}
}

func TestTask(t *testing.T) {

	t.Run("it does nothing when no job is claimable", func(t *testing.T) {
		mockJob := mockjobdb.NewJobInterface()
		mockJob.Impl.Claim = func(context.Context) (*domain.Job, error) {
			return nil, nil
		}

		run := func(context.Context, []string, map[string]string) (string, string, error) {
			t.Fatal("no pipeline should run")
			return "", "", nil
		}

		testee := pipeline.Task(mockJob, pipelines, run)

		cursor, ok, err := testee(context.Background(), pipeline.Seed())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Errorf("an idle cycle should not claim backlog")
		}
		if cursor != pipeline.Seed() {
			t.Errorf("unmatch: cursor: %+v", cursor)
		}
		if mockJob.Calls.Finish.Times() != 0 {
			t.Errorf("nothing should be finished: %+v", mockJob.Calls.Finish)
		}
	})

	t.Run("it executes the claimed job and records the success", func(t *testing.T) {
		claimed := claimedJob("quality-report")

		mockJob := mockjobdb.NewJobInterface()
		mockJob.Impl.Claim = func(context.Context) (*domain.Job, error) {
			return claimed, nil
		}
		mockJob.Impl.Finish = func(context.Context, string, domain.JobStatus, string, string) error {
			return nil
		}

		type runInvocation struct {
			argv       []string
			parameters map[string]string
		}
		invocations := []runInvocation{}
		run := func(_ context.Context, argv []string, parameters map[string]string) (string, string, error) {
			invocations = append(invocations, runInvocation{argv: argv, parameters: parameters})
			return "report written\n", "", nil
		}

		testee := pipeline.Task(mockJob, pipelines, run)

		cursor, ok, err := testee(context.Background(), pipeline.Seed())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Errorf("the cycle did something, so there may be backlog")
		}
		if cursor.LastJobId != "job-1" || cursor.Executed != 1 {
			t.Errorf("unmatch: cursor: %+v", cursor)
		}

		if len(invocations) != 1 {
			t.Fatalf("the pipeline should run once: %+v", invocations)
		}
		if !cmp.SliceEq(invocations[0].argv, pipelines["quality-report"]) {
			t.Errorf("unmatch: argv: %+v", invocations[0].argv)
		}
		if !cmp.MapEq(invocations[0].parameters, claimed.Parameters) {
			t.Errorf("unmatch: parameters: %+v", invocations[0].parameters)
		}

		if mockJob.Calls.Finish.Times() != 1 {
			t.Fatalf("the job should be finished once: %+v", mockJob.Calls.Finish)
		}
		finished := mockJob.Calls.Finish[0]
		if finished.JobId != "job-1" ||
			finished.Status != domain.JobCompleted ||
			finished.Results != "report written\n" ||
			finished.ErrorMessage != "" {
			t.Errorf("unmatch: finish: %+v", finished)
		}
	})

	t.Run("it records the failure of a pipeline with its stderr", func(t *testing.T) {
		mockJob := mockjobdb.NewJobInterface()
		mockJob.Impl.Claim = func(context.Context) (*domain.Job, error) {
			return claimedJob("quality-report"), nil
		}
		mockJob.Impl.Finish = func(context.Context, string, domain.JobStatus, string, string) error {
			return nil
		}

		run := func(context.Context, []string, map[string]string) (string, string, error) {
			return "partial output", "boom: missing input", errors.New("exit status 3")
		}

		testee := pipeline.Task(mockJob, pipelines, run)

		if _, _, err := testee(context.Background(), pipeline.Seed()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		finished := mockJob.Calls.Finish[0]
		if finished.Status != domain.JobFailed ||
			finished.Results != "partial output" ||
			finished.ErrorMessage != "boom: missing input" {
			t.Errorf("unmatch: finish: %+v", finished)
		}
	})

	t.Run("it falls back to the error text when stderr is silent", func(t *testing.T) {
		mockJob := mockjobdb.NewJobInterface()
		mockJob.Impl.Claim = func(context.Context) (*domain.Job, error) {
			return claimedJob("quality-report"), nil
		}
		mockJob.Impl.Finish = func(context.Context, string, domain.JobStatus, string, string) error {
			return nil
		}

		run := func(context.Context, []string, map[string]string) (string, string, error) {
			return "", "", errors.New("fork/exec python3: no such file or directory")
		}

		testee := pipeline.Task(mockJob, pipelines, run)

		if _, _, err := testee(context.Background(), pipeline.Seed()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		finished := mockJob.Calls.Finish[0]
		if finished.Status != domain.JobFailed ||
			finished.ErrorMessage != "fork/exec python3: no such file or directory" {
			t.Errorf("unmatch: finish: %+v", finished)
		}
	})

	t.Run("it fails a job whose pipeline is no longer configured", func(t *testing.T) {
		mockJob := mockjobdb.NewJobInterface()
		mockJob.Impl.Claim = func(context.Context) (*domain.Job, error) {
			return claimedJob("retired"), nil
		}
		mockJob.Impl.Finish = func(context.Context, string, domain.JobStatus, string, string) error {
			return nil
		}

		run := func(context.Context, []string, map[string]string) (string, string, error) {
			t.Fatal("no pipeline should run")
			return "", "", nil
		}

		testee := pipeline.Task(mockJob, pipelines, run)

		cursor, ok, err := testee(context.Background(), pipeline.Seed())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || cursor.Executed != 1 {
			t.Errorf("unmatch: (ok, cursor) = (%v, %+v)", ok, cursor)
		}

		finished := mockJob.Calls.Finish[0]
		if finished.Status != domain.JobFailed ||
			finished.ErrorMessage != `pipeline "retired" is not configured` {
			t.Errorf("unmatch: finish: %+v", finished)
		}
	})

	t.Run("it breaks when claiming fails", func(t *testing.T) {
		expectedErr := errors.New("fake error")

		mockJob := mockjobdb.NewJobInterface()
		mockJob.Impl.Claim = func(context.Context) (*domain.Job, error) {
			return nil, expectedErr
		}

		run := func(context.Context, []string, map[string]string) (string, string, error) {
			t.Fatal("no pipeline should run")
			return "", "", nil
		}

		testee := pipeline.Task(mockJob, pipelines, run)

		if _, _, err := testee(context.Background(), pipeline.Seed()); !errors.Is(err, expectedErr) {
			t.Errorf("unmatch: error: %v != %v", err, expectedErr)
		}
	})

	t.Run("it breaks when recording the outcome fails", func(t *testing.T) {
		expectedErr := errors.New("fake error")

		mockJob := mockjobdb.NewJobInterface()
		mockJob.Impl.Claim = func(context.Context) (*domain.Job, error) {
			return claimedJob("quality-report"), nil
		}
		mockJob.Impl.Finish = func(context.Context, string, domain.JobStatus, string, string) error {
			return expectedErr
		}

		run := func(context.Context, []string, map[string]string) (string, string, error) {
			return "report written\n", "", nil
		}

		testee := pipeline.Task(mockJob, pipelines, run)

		if _, _, err := testee(context.Background(), pipeline.Seed()); !errors.Is(err, expectedErr) {
			t.Errorf("unmatch: error: %v != %v", err, expectedErr)
		}
	})
}

func TestExec(t *testing.T) {

	t.Run("it captures the stdout of the command", func(t *testing.T) {
		stdout, stderr, err := pipeline.Exec(
			context.Background(), []string{"/bin/sh", "-c", "echo hello"}, nil,
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "hello\n" {
			t.Errorf("unmatch: stdout: %q != %q", stdout, "hello\n")
		}
		if stderr != "" {
			t.Errorf("unmatch: stderr: %q is not empty", stderr)
		}
	})

	t.Run("it reports a failure together with its stderr", func(t *testing.T) {
		_, stderr, err := pipeline.Exec(
			context.Background(),
			[]string{"/bin/sh", "-c", "echo boom >&2; exit 3"}, nil,
		)
		if err == nil {
			t.Fatal("the command exited non-zero, so Exec should fail")
		}
		if stderr != "boom\n" {
			t.Errorf("unmatch: stderr: %q != %q", stderr, "boom\n")
		}
	})

	t.Run("it hands parameters over as environment entries", func(t *testing.T) {
		stdout, _, err := pipeline.Exec(
			context.Background(),
			[]string{"/bin/sh", "-c", `printf '%s' "$TABSTAT_PARAM_OUTPUT_FORMAT"`},
			map[string]string{"output-format": "pdf"},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "pdf" {
			t.Errorf("unmatch: stdout: %q != %q", stdout, "pdf")
		}
	})
}

func TestEnvName(t *testing.T) {
	t.Run("it maps parameter names to environment entry names", func(t *testing.T) {
		for name, expected := range map[string]string{
			"format":        "TABSTAT_PARAM_FORMAT",
			"output-format": "TABSTAT_PARAM_OUTPUT_FORMAT",
			"n_estimators":  "TABSTAT_PARAM_N_ESTIMATORS",
			"top5":          "TABSTAT_PARAM_TOP5",
		} {
			if actual := pipeline.EnvName(name); actual != expected {
				t.Errorf("unmatch: %s: %s != %s", name, actual, expected)
			}
		}
	})
}
