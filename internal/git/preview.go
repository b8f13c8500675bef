package git

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mikanfactory/sagasu/internal/model"
)

// Previewer renders a best-effort preview for one aggregated entry.
// The rendering tool is resolved once per session and fixed here; the
// dispatcher never re-probes.
type Previewer struct {
	Runner   CommandRunner
	Filter   Filter // nil when Tool is plain
	Tool     model.DiffTool
	RepoPath string
}

const branchLogCount = 10

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes color escape sequences so tokens can be extracted
// from colorized payloads.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// Render dispatches purely on the entry's type tag. Failures produce a
// short placeholder message; a preview must never abort the session.
func (p Previewer) Render(entry model.ObjectEntry) string {
	payload := strings.TrimSpace(StripANSI(entry.Payload))

	switch entry.Kind {
	case model.KindCommit, model.KindTag, model.KindReflog:
		return p.renderObjectDiff(firstToken(payload))
	case model.KindBranch:
		return p.renderBranchLog(branchName(payload))
	case model.KindStash:
		return p.renderStash(stashRef(payload))
	default:
		return fmt.Sprintf("could not show %q", payload)
	}
}

// renderObjectDiff shows the patch for a commit-ish token. With only the
// plain viewer an uncolored raw patch is low-value, so it degrades to a
// stat summary.
func (p Previewer) renderObjectDiff(token string) string {
	if token == "" {
		return "could not show: empty reference"
	}

	args := p.colorArgs()
	if p.Tool == model.DiffToolPlain {
		args = append(args, "show", "--stat", token)
	} else {
		args = append(args, "show", token)
	}

	out, err := p.Runner.Run(p.RepoPath, args...)
	if err != nil {
		return fmt.Sprintf("could not show %s", token)
	}
	return p.filtered(out)
}

func (p Previewer) renderBranchLog(name string) string {
	if name == "" {
		return "could not show: empty branch name"
	}

	args := append(p.colorArgs(), "log", "--oneline", fmt.Sprintf("--max-count=%d", branchLogCount), name)
	out, err := p.Runner.Run(p.RepoPath, args...)
	if err != nil {
		return fmt.Sprintf("could not show branch %s", name)
	}
	return out
}

// renderStash always shows the full patch: stash content has no other
// inspection path.
func (p Previewer) renderStash(ref string) string {
	if ref == "" {
		return "could not show: empty stash reference"
	}

	args := append(p.colorArgs(), "stash", "show", "-p", ref)
	out, err := p.Runner.Run(p.RepoPath, args...)
	if err != nil {
		return fmt.Sprintf("could not show stash %s", ref)
	}
	return p.filtered(out)
}

// colorArgs asks git to colorize its own output except when delta will
// recolor the raw text itself.
func (p Previewer) colorArgs() []string {
	if p.Tool.GitColorsOwnOutput() {
		return []string{"-c", "color.ui=always"}
	}
	return nil
}

// filtered pipes diff text through the session's rendering tool.
func (p Previewer) filtered(out string) string {
	if p.Filter == nil {
		return out
	}

	var args []string
	if p.Tool == model.DiffToolBat {
		args = []string{"--language", "diff", "--color=always", "--style=plain", "--paging=never"}
	}

	rendered, err := p.Filter.Filter(out, args...)
	if err != nil {
		// the unrendered text is still useful
		return out
	}
	return rendered
}

// firstToken extracts the leading whitespace-delimited token (hash, tag
// name, reflog ref) of a payload.
func firstToken(payload string) string {
	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return ""
	}
	// tag payloads are "name\tsubject"
	return strings.SplitN(fields[0], "\t", 2)[0]
}

// branchName strips the current-branch marker from a `git branch` row.
func branchName(payload string) string {
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(payload), "* "))
	// a detached HEAD row like "(HEAD detached at abc)" is not previewable
	if strings.HasPrefix(name, "(") {
		return ""
	}
	return name
}

// stashRef extracts the "stash@{N}" token from a `git stash list` row.
func stashRef(payload string) string {
	idx := strings.Index(payload, ":")
	if idx < 0 {
		return strings.TrimSpace(payload)
	}
	return strings.TrimSpace(payload[:idx])
}
