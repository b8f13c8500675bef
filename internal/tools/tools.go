// Package tools probes the availability of external programs once per
// session. The result is threaded through the components as a value;
// nothing re-probes per row.
package tools

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/mikanfactory/sagasu/internal/model"
)

// lookPath is swappable in tests.
var lookPath = exec.LookPath

// Available reports whether a program exists on PATH.
func Available(name string) bool {
	_, err := lookPath(name)
	return err == nil
}

// Capabilities is the per-session snapshot of optional tooling.
type Capabilities struct {
	Fzf   bool
	Bat   bool
	Delta bool
}

// Probe inspects PATH for every optional tool.
func Probe() Capabilities {
	return Capabilities{
		Fzf:   Available("fzf"),
		Bat:   Available("bat"),
		Delta: Available("delta"),
	}
}

// DiffTool resolves the diff preview tool by fixed priority:
// delta, then bat, then plain passthrough.
func (c Capabilities) DiffTool() model.DiffTool {
	switch {
	case c.Delta:
		return model.DiffToolDelta
	case c.Bat:
		return model.DiffToolBat
	default:
		return model.DiffToolPlain
	}
}

// ContentTool resolves the file preview tool: bat, or the in-process
// plain excerpt.
func (c Capabilities) ContentTool() model.DiffTool {
	if c.Bat {
		return model.DiffToolBat
	}
	return model.DiffToolPlain
}

// DependencyError names every required tool that is missing, so the user
// sees the whole list at once.
type DependencyError struct {
	Missing []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing required tools: %s", strings.Join(e.Missing, ", "))
}

// CheckRequired verifies every required program before any subprocess
// runs. Returns nil when everything is present.
func CheckRequired(names []string) error {
	var missing []string
	for _, name := range names {
		if !Available(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Missing: missing}
	}
	return nil
}
