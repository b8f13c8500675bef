package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner abstracts git command execution for testability.
type CommandRunner interface {
	Run(dir string, args ...string) (string, error)
}

// OSCommandRunner executes real git commands via os/exec.
type OSCommandRunner struct{}

func (r OSCommandRunner) Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %v failed: %s", args, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %v failed: %w", args, err)
	}
	return string(out), nil
}

// Filter abstracts the rendering tool a preview is piped through
// (delta, bat) so the dispatcher can be tested without either installed.
type Filter interface {
	Filter(input string, args ...string) (string, error)
}

// OSFilter pipes input through a real external program. Rendering tools
// may exit non-zero on odd input; the preview is best-effort, so whatever
// output was produced is returned alongside the error.
type OSFilter struct {
	Program string
}

func (f OSFilter) Filter(input string, args ...string) (string, error) {
	cmd := exec.Command(f.Program, args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.Output()
	if err != nil {
		return string(out), fmt.Errorf("%s failed: %w", f.Program, err)
	}
	return string(out), nil
}

// FakeCommandRunner is a test double that returns preset output.
type FakeCommandRunner struct {
	Outputs map[string]string
	Errors  map[string]error
}

func (r FakeCommandRunner) key(dir string, args ...string) string {
	return fmt.Sprintf("%s:%v", dir, args)
}

func (r FakeCommandRunner) Run(dir string, args ...string) (string, error) {
	key := r.key(dir, args...)
	if err, ok := r.Errors[key]; ok {
		return "", err
	}
	if out, ok := r.Outputs[key]; ok {
		return out, nil
	}
	return "", fmt.Errorf("FakeCommandRunner: no output for key %q", key)
}

// FakeFilter is a test double that tags input so tests can see which
// rendering tool ran.
type FakeFilter struct {
	Tag string
	Err error
}

func (f FakeFilter) Filter(input string, args ...string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return "[" + f.Tag + "]" + input, nil
}
