package search

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoMatches is returned by RunOnce when the engine finds nothing.
var ErrNoMatches = errors.New("no matches found")

// Runner abstracts search engine execution for testability.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// OSRunner executes real rg commands via os/exec.
type OSRunner struct{}

func (r OSRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, Binary, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// exit 1 means no matches, not a failure
			if exitErr.ExitCode() == 1 && len(exitErr.Stderr) == 0 {
				return "", nil
			}
			return "", fmt.Errorf("rg %v failed: %s", args, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("rg %v failed: %w", args, err)
	}
	return string(out), nil
}

// FakeRunner is a test double that returns preset output keyed by the
// joined argument list.
type FakeRunner struct {
	Outputs map[string]string
	Errors  map[string]error
}

func (r FakeRunner) key(args ...string) string {
	return fmt.Sprintf("%v", args)
}

func (r FakeRunner) Run(_ context.Context, args ...string) (string, error) {
	key := r.key(args...)
	if err, ok := r.Errors[key]; ok {
		return "", err
	}
	if out, ok := r.Outputs[key]; ok {
		return out, nil
	}
	return "", fmt.Errorf("FakeRunner: no output for key %q", key)
}

// Lines splits raw engine output into non-empty result lines.
func Lines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// RunOnce performs a single complete search and returns the result lines.
// Used by non-interactive mode and by the built-in picker's reloads.
func RunOnce(ctx context.Context, runner Runner, args []string) ([]string, error) {
	out, err := runner.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	lines := Lines(out)
	if len(lines) == 0 {
		return nil, ErrNoMatches
	}
	return lines, nil
}
