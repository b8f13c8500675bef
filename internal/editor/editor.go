// Package editor maps editor programs to their line-jump argument
// conventions and assembles the final invocation.
package editor

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/mikanfactory/sagasu/internal/model"
)

// convention identifies how an editor expects a line-jump argument.
type convention int

const (
	// plusLine is "+N path", the majority convention and the default.
	plusLine convention = iota
	// gotoColon is "--goto path:N".
	gotoColon
)

// conventions is a static lookup keyed by the editor's base executable
// name. Extend here when a new editor shows up.
var conventions = map[string]convention{
	"vim":    plusLine,
	"nvim":   plusLine,
	"vi":     plusLine,
	"nano":   plusLine,
	"emacs":  plusLine,
	"micro":  plusLine,
	"hx":     plusLine,
	"kak":    plusLine,
	"subl":   plusLine,
	"mate":   plusLine,

	"code":          gotoColon,
	"code-insiders": gotoColon,
	"codium":        gotoColon,
	"vscodium":      gotoColon,
	"cursor":        gotoColon,
	"windsurf":      gotoColon,
}

// BuildArgs maps the editor to its convention and returns the argument
// vector for opening path, jumping to line when it is positive.
func BuildArgs(editorName, path string, line int) []string {
	if line <= 0 {
		return []string{path}
	}

	switch conventions[filepath.Base(editorName)] {
	case gotoColon:
		return []string{"--goto", fmt.Sprintf("%s:%d", path, line)}
	default:
		return []string{"+" + strconv.Itoa(line), path}
	}
}

// Invocation assembles the full argument vector for a resolved selection:
// the primary target first with its line jump, secondaries appended as
// bare paths.
func Invocation(cfg model.Config, targets []model.ResolvedTarget) []string {
	args := append([]string{}, cfg.EditorArgs...)
	for _, t := range targets {
		if t.Primary {
			args = append(args, BuildArgs(cfg.Editor, t.Path, t.LineNumber)...)
		} else {
			args = append(args, t.Path)
		}
	}
	return args
}
