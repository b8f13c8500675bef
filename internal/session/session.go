// Package session configures the external picker for one interactive
// query/preview/selection loop and interprets its output.
package session

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mikanfactory/sagasu/internal/model"
	"github.com/mikanfactory/sagasu/internal/search"
	"github.com/mikanfactory/sagasu/internal/shellquote"
)

// Picker exit codes: 1 is "no match", 130 is "cancelled by user". Both
// are normal empty selections, not failures.
const (
	exitNoMatch   = 1
	exitCancelled = 130
)

// PickerRunner abstracts the fzf process for testability.
type PickerRunner interface {
	Run(args []string, input string) (output string, exitCode int, err error)
}

// OSPickerRunner runs the real fzf. The picker draws its UI on the
// terminal; only the confirmed rows arrive on stdout.
type OSPickerRunner struct{}

func (r OSPickerRunner) Run(args []string, input string) (string, int, error) {
	cmd := exec.Command("fzf", args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), exitErr.ExitCode(), nil
		}
		return "", 0, fmt.Errorf("running fzf: %w", err)
	}
	return string(out), 0, nil
}

// Controller owns one interactive session. Exe is the path to our own
// binary, re-entered by the picker for per-row previews.
type Controller struct {
	Config      model.Config
	ContentTool model.DiffTool
	DiffTool    model.DiffTool
	Exe         string
	Runner      PickerRunner
}

// commonArgs are the picker options shared by both modes: ANSI
// passthrough, colon-delimited fields, multi-select with toggle-and-move
// bindings, and a toggleable preview pane.
func (c Controller) commonArgs() []string {
	return []string{
		"--ansi",
		"--delimiter", ":",
		"--multi",
		"--bind", "tab:toggle+down",
		"--bind", "shift-tab:toggle+up",
		"--bind", "ctrl-/:toggle-preview",
	}
}

// ContentArgs builds the picker invocation for content search: the
// picker's own fuzzy filtering is disabled and every query change
// re-runs the backing search from scratch, debounced so fast typing does
// not saturate the system. The engine invocation is complete and
// self-contained, so a stale in-flight reload is simply superseded by
// the next one.
func (c Controller) ContentArgs() []string {
	reload := search.CommandTemplate(c.Config, "{q}")
	debounced := fmt.Sprintf("sleep %.2f; %s", c.Config.Debounce.Seconds(), reload)

	preview := fmt.Sprintf("%s preview --tool %s -- {1} {2}",
		shellquote.Quote(c.Exe), c.ContentTool)

	args := append(c.commonArgs(),
		"--disabled",
		"--query", c.Config.Pattern,
		"--bind", "start:reload:"+reload,
		"--bind", "change:reload:"+debounced,
		"--preview", preview,
		"--preview-window", fmt.Sprintf("up,%d%%,+{2}/2", c.Config.PreviewRatio),
	)
	return args
}

// GitArgs builds the picker invocation for repository mode. The input is
// a static aggregated listing, so the picker's own filtering stays
// enabled and no reload wiring is needed.
func (c Controller) GitArgs() []string {
	preview := fmt.Sprintf("%s repo-preview --repo %s --tool %s -- {1} {2..}",
		shellquote.Quote(c.Exe), shellquote.Quote(c.Config.Root), c.DiffTool)

	args := append(c.commonArgs(),
		"--query", c.Config.Pattern,
		"--preview", preview,
		"--preview-window", fmt.Sprintf("up,%d%%", c.Config.PreviewRatio),
	)
	return args
}

// Selection runs the picker and returns the confirmed rows. An empty
// slice means the user cancelled or confirmed nothing; that is a normal
// terminal state.
func (c Controller) Selection(args []string, input string) ([]string, error) {
	out, code, err := c.Runner.Run(args, input)
	if err != nil {
		return nil, err
	}

	switch code {
	case 0:
		return search.Lines(out), nil
	case exitNoMatch, exitCancelled:
		return nil, nil
	default:
		return nil, fmt.Errorf("picker exited with status %d", code)
	}
}

// RunContent drives a content-mode session end to end.
func (c Controller) RunContent() ([]string, error) {
	return c.Selection(c.ContentArgs(), "")
}

// RunGit drives a repository-mode session over the aggregated rows.
func (c Controller) RunGit(rows []string) ([]string, error) {
	return c.Selection(c.GitArgs(), strings.Join(rows, "\n"))
}
