package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// outputLimit caps how much of each stream is kept for the job record.
const outputLimit = 8 * 1024

// tailWriter keeps the trailing bytes written through it, up to limit.
type tailWriter struct {
	limit int
	buf   []byte
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	if len(w.buf) > w.limit {
		w.buf = w.buf[len(w.buf)-w.limit:]
	}
	return len(p), nil
}

func (w *tailWriter) String() string {
	return string(w.buf)
}

// Exec runs argv as a subprocess. Parameters are handed over as
// TABSTAT_PARAM_* environment entries on top of the worker's own
// environment.
func Exec(ctx context.Context, argv []string, parameters map[string]string) (string, string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	env := os.Environ()
	for name, value := range parameters {
		env = append(env, fmt.Sprintf("%s=%s", EnvName(name), value))
	}
	cmd.Env = env

	stdout := &tailWriter{limit: outputLimit}
	stderr := &tailWriter{limit: outputLimit}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// EnvName maps a parameter name to its environment entry name.
// Anything but letters and digits becomes "_".
func EnvName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		default:
			return '_'
		}
	}, strings.ToUpper(name))
	return "TABSTAT_PARAM_" + mapped
}
