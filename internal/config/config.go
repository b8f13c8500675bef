package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/shlex"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/mikanfactory/sagasu/internal/model"
)

const DefaultDebounceMs = 50
const DefaultPreviewRatio = 60
const DefaultEditor = "vim"

// Flags carries the raw command-line values before resolution.
type Flags struct {
	Root           string
	Pattern        string
	ExcludeGlobs   []string
	MaxDepth       int // -1 means unset
	IncludeIgnored bool
	NonInteractive bool
	GitMode        bool
	ConfigPath     string
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (model.FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FileConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := model.FileConfig{MaxDepth: -1}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.FileConfig{}, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// ResolveConfigPath determines the config file path from flag or default
// location. An empty return with nil error means no config file exists,
// which is fine: everything has a default.
func ResolveConfigPath(flagPath string) (string, error) {
	if flagPath != "" {
		if _, err := os.Stat(flagPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", flagPath)
		}
		return flagPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}

	defaultPath := filepath.Join(home, ".config", "sagasu", "config.yaml")
	if _, err := os.Stat(defaultPath); err != nil {
		return "", nil
	}

	return defaultPath, nil
}

// EnsureDefaultConfig writes a commented template at the default location
// if nothing is there yet. Returns the path and whether a file was created.
func EnsureDefaultConfig() (string, bool, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("getting home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "sagasu")
	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return configPath, false, nil
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating config directory %s: %w", configDir, err)
	}

	content := "# editor: vim\n# debounce_ms: 50\n# preview_ratio: 60\n# max_depth: 0\n#\n# exclude_globs:\n#   - \"*.min.js\"\n#   - \"vendor/\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return "", false, fmt.Errorf("writing config template: %w", err)
	}

	return configPath, true, nil
}

// Resolve merges flags, the config file, and the environment into the
// final Config. This is the only place ambient state is consulted; every
// component downstream receives the result by value.
func Resolve(flags Flags) (model.Config, error) {
	path, err := ResolveConfigPath(flags.ConfigPath)
	if err != nil {
		return model.Config{}, err
	}

	// LoadFile seeds MaxDepth with -1 before unmarshalling, so an absent
	// key stays unset while an explicit `max_depth: 0` survives as 0.
	file := model.FileConfig{MaxDepth: -1}
	if path != "" {
		file, err = LoadFile(path)
		if err != nil {
			return model.Config{}, err
		}
	}

	cfg := model.Config{
		Root:           flags.Root,
		Pattern:        flags.Pattern,
		ExcludeGlobs:   append(append([]string{}, file.ExcludeGlobs...), flags.ExcludeGlobs...),
		MaxDepth:       flags.MaxDepth,
		IncludeIgnored: flags.IncludeIgnored,
		Interactive:    !flags.NonInteractive,
		GitMode:        flags.GitMode,
		PreviewRatio:   file.PreviewRatio,
		SessionID:      uuid.NewString(),
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.MaxDepth < 0 && file.MaxDepth >= 0 {
		cfg.MaxDepth = file.MaxDepth
	}
	if cfg.PreviewRatio <= 0 || cfg.PreviewRatio >= 100 {
		cfg.PreviewRatio = DefaultPreviewRatio
	}

	debounceMs := file.DebounceMs
	if debounceMs <= 0 {
		debounceMs = DefaultDebounceMs
	}
	cfg.Debounce = time.Duration(debounceMs) * time.Millisecond

	editor := file.Editor
	if env := os.Getenv("EDITOR"); editor == "" && env != "" {
		editor = env
	}
	if editor == "" {
		editor = DefaultEditor
	}
	cfg.Editor, cfg.EditorArgs, err = splitEditor(editor)
	if err != nil {
		return model.Config{}, err
	}

	cfg.ColorEnabled = colorEnabled()

	if err := Validate(&cfg); err != nil {
		return model.Config{}, err
	}

	return cfg, nil
}

// splitEditor splits an editor setting that may carry arguments, e.g.
// EDITOR="code --wait".
func splitEditor(editor string) (string, []string, error) {
	parts, err := shlex.Split(editor)
	if err != nil {
		return "", nil, fmt.Errorf("parsing editor %q: %w", editor, err)
	}
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("editor setting %q is empty", editor)
	}
	return parts[0], parts[1:], nil
}

// colorEnabled probes the terminal's color capability once at startup.
var colorEnabled = func() bool {
	if termenv.EnvNoColor() {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// Validate checks the resolved config before any subprocess runs.
func Validate(cfg *model.Config) error {
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return fmt.Errorf("root path %q does not exist", cfg.Root)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %q is not a directory", cfg.Root)
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("resolving root path: %w", err)
	}
	cfg.Root = abs

	if !cfg.Interactive && strings.TrimSpace(cfg.Pattern) == "" {
		return fmt.Errorf("a pattern is required in non-interactive mode")
	}

	// -1 is the unset sentinel; anything below it is a bad value
	if cfg.MaxDepth < -1 {
		return fmt.Errorf("max-depth must be zero or positive, got %d", cfg.MaxDepth)
	}

	for _, glob := range cfg.ExcludeGlobs {
		if !doublestar.ValidatePattern(strings.TrimSuffix(glob, "/")) {
			return fmt.Errorf("invalid exclude glob %q", glob)
		}
	}

	return nil
}
