package recurring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/statops/tabstat/cmd/tabstat-worker/recurring"
	"github.com/statops/tabstat/pkg/loop"
)

func TestForever(t *testing.T) {
	t.Run("it continues immediately while there is backlog", func(t *testing.T) {
		testee := recurring.Forever(42 * time.Second)

		if next := testee.Next(true, nil); next != loop.Continue(0) {
			t.Errorf("unmatch: next: %s != %s", next, loop.Continue(0))
		}
	})

	t.Run("it cools down when the cycle was idle", func(t *testing.T) {
		testee := recurring.Forever(42 * time.Second)

		if next := testee.Next(false, nil); next != loop.Continue(42*time.Second) {
			t.Errorf("unmatch: next: %s != %s", next, loop.Continue(42*time.Second))
		}
	})
}

func TestUntilError(t *testing.T) {
	t.Run("it breaks with the error of the cycle", func(t *testing.T) {
		testee := recurring.UntilError(recurring.Forever(42 * time.Second))

		expectedErr := errors.New("fake error")
		if next := testee.Next(true, expectedErr); next != loop.Break(expectedErr) {
			t.Errorf("unmatch: next: %s != %s", next, loop.Break(expectedErr))
		}
	})

	t.Run("it follows the base policy otherwise", func(t *testing.T) {
		testee := recurring.UntilError(recurring.Forever(42 * time.Second))

		if next := testee.Next(true, nil); next != loop.Continue(0) {
			t.Errorf("unmatch: next: %s != %s", next, loop.Continue(0))
		}
		if next := testee.Next(false, nil); next != loop.Continue(42*time.Second) {
			t.Errorf("unmatch: next: %s != %s", next, loop.Continue(42*time.Second))
		}
	})
}

func TestApplied(t *testing.T) {
	t.Run("it drives the policy with the result of the task", func(t *testing.T) {
		task := recurring.Task[int](func(_ context.Context, value int) (int, bool, error) {
			value += 1
			return value, value < 3, nil
		})

		testee := task.Applied(recurring.UntilError(recurring.Forever(time.Hour)))
		ctx := context.Background()

		if value, next := testee(ctx, 0); value != 1 || next != loop.Continue(0) {
			t.Errorf("unmatch: (value, next) = (%d, %s)", value, next)
		}
		if value, next := testee(ctx, 2); value != 3 || next != loop.Continue(time.Hour) {
			t.Errorf("unmatch: (value, next) = (%d, %s)", value, next)
		}
	})
}
