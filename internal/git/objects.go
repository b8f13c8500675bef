package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mikanfactory/sagasu/internal/model"
)

// ErrNotARepository is reported when the target directory is not inside
// a git repository.
var ErrNotARepository = errors.New("not a git repository")

const maxCommits = 1000
const maxReflogEntries = 100

// IsRepository probes whether path is inside a git repository.
func IsRepository(runner CommandRunner, path string) bool {
	_, err := runner.Run(path, "rev-parse", "--git-dir")
	return err == nil
}

// Aggregate enumerates commits, branches, tags, reflog entries, and
// stashes as one line-oriented list, grouped by type in that fixed
// order. Entries are materialized fresh on every call. A source with
// nothing to report (no stashes, no reflog) contributes zero entries;
// only a non-repository target is an error.
func Aggregate(runner CommandRunner, repoPath string, colorize bool) ([]model.ObjectEntry, error) {
	if !IsRepository(runner, repoPath) {
		return nil, ErrNotARepository
	}

	var color []string
	if colorize {
		color = []string{"-c", "color.ui=always"}
	}

	var entries []model.ObjectEntry

	run := func(kind model.ObjectKind, args ...string) {
		out, err := runner.Run(repoPath, args...)
		if err != nil {
			// a source that cannot be listed contributes nothing
			return
		}
		for _, line := range strings.Split(out, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			entries = append(entries, model.ObjectEntry{Kind: kind, Payload: line})
		}
	}

	run(model.KindCommit, append(color, "log", "--oneline", "--all", fmt.Sprintf("--max-count=%d", maxCommits))...)
	run(model.KindBranch, append(color, "branch", "--all")...)
	run(model.KindTag, "for-each-ref", "refs/tags", "--format=%(refname:short)\t%(subject)")
	run(model.KindReflog, append(color, "reflog", fmt.Sprintf("--max-count=%d", maxReflogEntries))...)
	run(model.KindStash, append(color, "stash", "list")...)

	return entries, nil
}

// Rows renders aggregated entries in picker form.
func Rows(entries []model.ObjectEntry) []string {
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.Row())
	}
	return rows
}
