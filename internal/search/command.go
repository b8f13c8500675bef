// Package search builds and runs invocations of the backing content
// search engine (ripgrep).
package search

import (
	"strconv"
	"unicode"

	"github.com/mikanfactory/sagasu/internal/model"
	"github.com/mikanfactory/sagasu/internal/shellquote"
)

// Binary is the search engine executable name.
const Binary = "rg"

// baseArgs holds every flag that does not depend on the query text.
func baseArgs(cfg model.Config) []string {
	args := []string{"--line-number", "--no-heading"}

	if cfg.Interactive {
		args = append(args, "--color=always")
	} else {
		args = append(args, "--color=never")
	}

	if cfg.MaxDepth >= 0 {
		args = append(args, "--max-depth", strconv.Itoa(cfg.MaxDepth))
	}

	for _, glob := range cfg.ExcludeGlobs {
		args = append(args, "--glob", "!"+glob)
	}

	if cfg.IncludeIgnored {
		args = append(args, "--no-ignore", "--hidden")
	}

	return args
}

// BuildArgs produces the argument vector for a single engine invocation
// over a literal query. Pure: identical inputs yield identical output.
// Case sensitivity follows the smart-case policy: insensitive unless the
// pattern contains an uppercase rune.
func BuildArgs(cfg model.Config, pattern string) []string {
	args := baseArgs(cfg)
	if !hasUpper(pattern) {
		args = append(args, "-i")
	}
	args = append(args, "--", pattern, cfg.Root)
	return args
}

// CommandTemplate renders the engine invocation as a shell command string
// with the picker's query placeholder in the pattern slot. The query is
// unknown until each keystroke, so the case policy is delegated to the
// engine's own --smart-case, which implements the same rule. Every
// static value is quoted; the placeholder is substituted by the picker,
// which quotes the live query itself.
func CommandTemplate(cfg model.Config, placeholder string) string {
	cmd := shellquote.Join(append([]string{Binary}, baseArgs(cfg)...))
	cmd += " --smart-case -- " + placeholder + " " + shellquote.Quote(cfg.Root)
	// rg exits 1 on no matches; an empty list is not an error here
	cmd += " || true"
	return cmd
}

// hasUpper reports whether the pattern demands case sensitivity under the
// smart-case policy.
func hasUpper(pattern string) bool {
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
