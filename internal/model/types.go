package model

import "time"

// Config represents the fully resolved application configuration.
// Environment lookups (EDITOR, terminal color support) happen exactly once
// at startup; components only ever see this value.
type Config struct {
	Root           string
	Pattern        string
	ExcludeGlobs   []string
	MaxDepth       int // -1 means unset
	IncludeIgnored bool
	Interactive    bool
	GitMode        bool

	Editor       string   // editor program, possibly a bare name from PATH
	EditorArgs   []string // extra args carried by $EDITOR ("code --wait")
	ColorEnabled bool
	Debounce     time.Duration
	PreviewRatio int // preview window height as a percentage of the screen

	SessionID string
}

// FileConfig is the on-disk YAML configuration.
type FileConfig struct {
	ExcludeGlobs []string `yaml:"exclude_globs"`
	Editor       string   `yaml:"editor"`
	DebounceMs   int      `yaml:"debounce_ms"`
	PreviewRatio int      `yaml:"preview_ratio"`
	MaxDepth     int      `yaml:"max_depth"`
}

// ResultLine is one parsed row of search output. In content mode the
// discriminator is a file path and LineToken holds the line number text;
// in git mode the discriminator is an object type tag.
type ResultLine struct {
	Discriminator string
	LineToken     string
	Rest          string
}

// ResolvedTarget is a selection entry that survived resolution.
// Only the primary target carries a line number.
type ResolvedTarget struct {
	Path       string
	LineNumber int // 0 means absent
	Primary    bool
}

// ObjectKind identifies what type of repository object an entry is.
type ObjectKind string

const (
	KindCommit ObjectKind = "commit"
	KindBranch ObjectKind = "branch"
	KindTag    ObjectKind = "tag"
	KindReflog ObjectKind = "reflog"
	KindStash  ObjectKind = "stash"
)

// ObjectEntry is one aggregated repository object, rendered as a single
// "kind:payload" row for the picker.
type ObjectEntry struct {
	Kind    ObjectKind
	Payload string
}

// Row returns the line-oriented form handed to the picker.
func (e ObjectEntry) Row() string {
	return string(e.Kind) + ":" + e.Payload
}

// DiffTool is the diff preview tool resolved once per session, in priority
// order: delta, then bat, then plain passthrough.
type DiffTool int

const (
	DiffToolPlain DiffTool = iota
	DiffToolBat
	DiffToolDelta
)

func (t DiffTool) String() string {
	switch t {
	case DiffToolDelta:
		return "delta"
	case DiffToolBat:
		return "bat"
	default:
		return "plain"
	}
}

// ParseDiffTool is the inverse of String, used by the preview subcommands
// so the capability probe is not repeated per rendered row.
func ParseDiffTool(s string) DiffTool {
	switch s {
	case "delta":
		return DiffToolDelta
	case "bat":
		return DiffToolBat
	default:
		return DiffToolPlain
	}
}

// GitColorsOwnOutput reports whether git should apply its own ANSI
// coloring. Suppressed for delta, which recolors raw diff text itself.
func (t DiffTool) GitColorsOwnOutput() bool {
	return t != DiffToolDelta
}
