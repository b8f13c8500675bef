package git

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mikanfactory/sagasu/internal/model"
)

func TestStripANSI(t *testing.T) {
	colored := "\x1b[33mabc123\x1b[0m first commit"
	if got := StripANSI(colored); got != "abc123 first commit" {
		t.Errorf("StripANSI = %q", got)
	}
}

func TestFirstToken(t *testing.T) {
	tests := []struct {
		payload string
		want    string
	}{
		{"abc123 fix the bug", "abc123"},
		{"v1.0\tinitial release", "v1.0"},
		{"abc123 HEAD@{0}: commit: x", "abc123"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstToken(tt.payload); got != tt.want {
			t.Errorf("firstToken(%q) = %q, want %q", tt.payload, got, tt.want)
		}
	}
}

func TestBranchName(t *testing.T) {
	tests := []struct {
		payload string
		want    string
	}{
		{"* main", "main"},
		{"  feature/x", "feature/x"},
		{"  remotes/origin/main", "remotes/origin/main"},
		{"* (HEAD detached at abc123)", ""},
	}
	for _, tt := range tests {
		if got := branchName(tt.payload); got != tt.want {
			t.Errorf("branchName(%q) = %q, want %q", tt.payload, got, tt.want)
		}
	}
}

func TestStashRef(t *testing.T) {
	if got := stashRef("stash@{0}: WIP on main: abc123 x"); got != "stash@{0}" {
		t.Errorf("stashRef = %q", got)
	}
}

func TestRender_CommitFullPatchWithBat(t *testing.T) {
	runner := FakeCommandRunner{Outputs: map[string]string{
		"/repo:[-c color.ui=always show abc123]": "diff --git a/x b/x\n",
	}}
	p := Previewer{
		Runner:   runner,
		Filter:   FakeFilter{Tag: "bat"},
		Tool:     model.DiffToolBat,
		RepoPath: "/repo",
	}

	out := p.Render(model.ObjectEntry{Kind: model.KindCommit, Payload: "abc123 fix"})
	if !strings.HasPrefix(out, "[bat]diff --git") {
		t.Errorf("expected bat-rendered full patch, got %q", out)
	}
}

func TestRender_CommitStatOnlyWhenPlain(t *testing.T) {
	runner := FakeCommandRunner{Outputs: map[string]string{
		"/repo:[-c color.ui=always show --stat abc123]": " x | 2 +-\n",
	}}
	p := Previewer{Runner: runner, Tool: model.DiffToolPlain, RepoPath: "/repo"}

	out := p.Render(model.ObjectEntry{Kind: model.KindCommit, Payload: "abc123 fix"})
	if !strings.Contains(out, "x | 2 +-") {
		t.Errorf("expected stat summary, got %q", out)
	}
}

func TestRender_DeltaSuppressesGitColor(t *testing.T) {
	runner := FakeCommandRunner{Outputs: map[string]string{
		"/repo:[show abc123]": "diff --git a/x b/x\n",
	}}
	p := Previewer{
		Runner:   runner,
		Filter:   FakeFilter{Tag: "delta"},
		Tool:     model.DiffToolDelta,
		RepoPath: "/repo",
	}

	out := p.Render(model.ObjectEntry{Kind: model.KindCommit, Payload: "abc123 fix"})
	if !strings.HasPrefix(out, "[delta]") {
		t.Errorf("expected delta-rendered output, got %q", out)
	}
}

// Fallback form depends only on the chosen tool, never on the object
// type: tags and reflog entries degrade exactly like commits.
func TestRender_FallbackIndependentOfKind(t *testing.T) {
	runner := FakeCommandRunner{Outputs: map[string]string{
		"/repo:[-c color.ui=always show --stat v1.0]":   " x | 1 +\n",
		"/repo:[-c color.ui=always show --stat abc123]": " x | 1 +\n",
	}}
	p := Previewer{Runner: runner, Tool: model.DiffToolPlain, RepoPath: "/repo"}

	tag := p.Render(model.ObjectEntry{Kind: model.KindTag, Payload: "v1.0\trelease"})
	reflog := p.Render(model.ObjectEntry{Kind: model.KindReflog, Payload: "abc123 HEAD@{0}: commit"})
	if tag != reflog {
		t.Errorf("fallback form differs by kind: %q vs %q", tag, reflog)
	}
}

func TestRender_BranchLog(t *testing.T) {
	runner := FakeCommandRunner{Outputs: map[string]string{
		"/repo:[-c color.ui=always log --oneline --max-count=10 main]": "abc123 first\n",
	}}
	p := Previewer{Runner: runner, Tool: model.DiffToolBat, Filter: FakeFilter{Tag: "bat"}, RepoPath: "/repo"}

	out := p.Render(model.ObjectEntry{Kind: model.KindBranch, Payload: "* main"})
	if !strings.Contains(out, "abc123 first") {
		t.Errorf("expected branch log, got %q", out)
	}
	if strings.HasPrefix(out, "[bat]") {
		t.Errorf("branch log should not be diff-rendered: %q", out)
	}
}

func TestRender_StashAlwaysFullPatch(t *testing.T) {
	runner := FakeCommandRunner{Outputs: map[string]string{
		"/repo:[-c color.ui=always stash show -p stash@{0}]": "diff --git a/x b/x\n",
	}}
	p := Previewer{Runner: runner, Tool: model.DiffToolPlain, RepoPath: "/repo"}

	out := p.Render(model.ObjectEntry{Kind: model.KindStash, Payload: "stash@{0}: WIP on main"})
	if !strings.Contains(out, "diff --git") {
		t.Errorf("expected full stash patch even in plain mode, got %q", out)
	}
}

func TestRender_UnresolvableObject(t *testing.T) {
	runner := FakeCommandRunner{Errors: map[string]error{
		"/repo:[-c color.ui=always show --stat gone00]": fmt.Errorf("bad object"),
	}}
	p := Previewer{Runner: runner, Tool: model.DiffToolPlain, RepoPath: "/repo"}

	out := p.Render(model.ObjectEntry{Kind: model.KindCommit, Payload: "gone00 vanished"})
	if !strings.Contains(out, "could not show gone00") {
		t.Errorf("expected placeholder message, got %q", out)
	}
}

func TestRender_FilterFailureFallsBackToRawText(t *testing.T) {
	runner := FakeCommandRunner{Outputs: map[string]string{
		"/repo:[show abc123]": "diff --git a/x b/x\n",
	}}
	p := Previewer{
		Runner:   runner,
		Filter:   FakeFilter{Err: fmt.Errorf("delta crashed")},
		Tool:     model.DiffToolDelta,
		RepoPath: "/repo",
	}

	out := p.Render(model.ObjectEntry{Kind: model.KindCommit, Payload: "abc123 fix"})
	if !strings.Contains(out, "diff --git") {
		t.Errorf("expected raw diff on filter failure, got %q", out)
	}
}

func TestRender_ColorizedPayloadTokenExtraction(t *testing.T) {
	runner := FakeCommandRunner{Outputs: map[string]string{
		"/repo:[-c color.ui=always show --stat abc123]": " x | 1 +\n",
	}}
	p := Previewer{Runner: runner, Tool: model.DiffToolPlain, RepoPath: "/repo"}

	out := p.Render(model.ObjectEntry{
		Kind:    model.KindCommit,
		Payload: "\x1b[33mabc123\x1b[0m fix",
	})
	if !strings.Contains(out, "x | 1 +") {
		t.Errorf("token extraction failed on colorized payload: %q", out)
	}
}
