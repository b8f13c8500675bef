package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `editor: "code --wait"
debounce_ms: 120
preview_ratio: 40
max_depth: 3
exclude_globs:
  - "*.min.js"
  - "vendor/"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Editor != "code --wait" {
		t.Errorf("Editor = %q", cfg.Editor)
	}
	if cfg.DebounceMs != 120 {
		t.Errorf("DebounceMs = %d", cfg.DebounceMs)
	}
	if cfg.PreviewRatio != 40 {
		t.Errorf("PreviewRatio = %d", cfg.PreviewRatio)
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d", cfg.MaxDepth)
	}
	if len(cfg.ExcludeGlobs) != 2 || cfg.ExcludeGlobs[0] != "*.min.js" {
		t.Errorf("ExcludeGlobs = %v", cfg.ExcludeGlobs)
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := writeConfig(t, "editor: [unclosed")

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolveConfigPathMissingFlagPath(t *testing.T) {
	if _, err := ResolveConfigPath("/nonexistent/config.yaml"); err == nil {
		t.Fatal("explicit missing config path must be an error")
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv("EDITOR", "")
	root := t.TempDir()

	cfg, err := Resolve(Flags{Root: root, Pattern: "x", MaxDepth: -1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Editor != DefaultEditor {
		t.Errorf("Editor = %q, want %q", cfg.Editor, DefaultEditor)
	}
	if cfg.Debounce != DefaultDebounceMs*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.Debounce)
	}
	if cfg.PreviewRatio != DefaultPreviewRatio {
		t.Errorf("PreviewRatio = %d", cfg.PreviewRatio)
	}
	if cfg.MaxDepth != -1 {
		t.Errorf("MaxDepth = %d, want -1 (unset)", cfg.MaxDepth)
	}
	if cfg.SessionID == "" {
		t.Error("SessionID not assigned")
	}
	if !cfg.Interactive {
		t.Error("Interactive should default to true")
	}
}

func TestResolveEditorFromEnvironment(t *testing.T) {
	t.Setenv("EDITOR", "nvim -u NONE")
	root := t.TempDir()

	cfg, err := Resolve(Flags{Root: root, MaxDepth: -1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Editor != "nvim" {
		t.Errorf("Editor = %q, want nvim", cfg.Editor)
	}
	if len(cfg.EditorArgs) != 2 || cfg.EditorArgs[0] != "-u" {
		t.Errorf("EditorArgs = %v", cfg.EditorArgs)
	}
}

func TestResolveFileConfigMerged(t *testing.T) {
	t.Setenv("EDITOR", "")
	root := t.TempDir()
	path := writeConfig(t, `editor: hx
debounce_ms: 200
max_depth: 2
exclude_globs:
  - "*.log"
`)

	cfg, err := Resolve(Flags{
		Root:         root,
		Pattern:      "x",
		MaxDepth:     -1,
		ExcludeGlobs: []string{"build/"},
		ConfigPath:   path,
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Editor != "hx" {
		t.Errorf("Editor = %q", cfg.Editor)
	}
	if cfg.Debounce != 200*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.Debounce)
	}
	if cfg.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d", cfg.MaxDepth)
	}
	// file globs come first, flags append
	if len(cfg.ExcludeGlobs) != 2 || cfg.ExcludeGlobs[0] != "*.log" || cfg.ExcludeGlobs[1] != "build/" {
		t.Errorf("ExcludeGlobs = %v", cfg.ExcludeGlobs)
	}
}

func TestEnsureDefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, created, err := EnsureDefaultConfig()
	if err != nil {
		t.Fatalf("EnsureDefaultConfig failed: %v", err)
	}
	if !created {
		t.Error("first run should create the template")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("template not written: %v", err)
	}
	if !strings.Contains(string(data), "# editor:") {
		t.Errorf("template missing commented keys: %q", data)
	}

	again, created, err := EnsureDefaultConfig()
	if err != nil {
		t.Fatalf("second EnsureDefaultConfig failed: %v", err)
	}
	if created {
		t.Error("existing file must not be recreated")
	}
	if again != path {
		t.Errorf("path changed between runs: %q vs %q", again, path)
	}
}

func TestEnsureDefaultConfigKeepsExistingContent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "sagasu")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("editor: hx\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, created, err := EnsureDefaultConfig(); err != nil || created {
		t.Fatalf("EnsureDefaultConfig = created %v, err %v", created, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "editor: hx\n" {
		t.Errorf("existing config overwritten: %q", data)
	}
}

func TestResolveFileDepthZeroKept(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, "max_depth: 0\n")

	cfg, err := Resolve(Flags{Root: root, Pattern: "x", MaxDepth: -1, ConfigPath: path})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want explicit 0 from file", cfg.MaxDepth)
	}
}

func TestValidateRejectsNegativeDepth(t *testing.T) {
	root := t.TempDir()

	_, err := Resolve(Flags{Root: root, Pattern: "x", MaxDepth: -3})
	if err == nil || !strings.Contains(err.Error(), "max-depth") {
		t.Errorf("error = %v, want max-depth rejection", err)
	}
}

func TestResolveFlagDepthBeatsFile(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, "max_depth: 5\n")

	cfg, err := Resolve(Flags{Root: root, Pattern: "x", MaxDepth: 1, ConfigPath: path})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.MaxDepth != 1 {
		t.Errorf("MaxDepth = %d, want flag value 1", cfg.MaxDepth)
	}
}

func TestValidateRootMustExist(t *testing.T) {
	_, err := Resolve(Flags{Root: "/no/such/directory", MaxDepth: -1})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("error = %v", err)
	}
}

func TestValidateRootMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Resolve(Flags{Root: file, MaxDepth: -1})
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("error = %v", err)
	}
}

func TestValidateRootMadeAbsolute(t *testing.T) {
	cfg, err := Resolve(Flags{Root: ".", Pattern: "x", MaxDepth: -1})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !filepath.IsAbs(cfg.Root) {
		t.Errorf("Root = %q, want absolute", cfg.Root)
	}
}

func TestValidatePatternRequiredNonInteractive(t *testing.T) {
	root := t.TempDir()

	_, err := Resolve(Flags{Root: root, NonInteractive: true, MaxDepth: -1})
	if err == nil {
		t.Fatal("non-interactive mode without a pattern must fail")
	}
}

func TestValidateRejectsBadGlob(t *testing.T) {
	root := t.TempDir()

	_, err := Resolve(Flags{Root: root, Pattern: "x", MaxDepth: -1, ExcludeGlobs: []string{"[unclosed"}})
	if err == nil || !strings.Contains(err.Error(), "invalid exclude glob") {
		t.Errorf("error = %v", err)
	}
}

func TestValidateAcceptsDirectoryGlob(t *testing.T) {
	root := t.TempDir()

	_, err := Resolve(Flags{Root: root, Pattern: "x", MaxDepth: -1, ExcludeGlobs: []string{"vendor/"}})
	if err != nil {
		t.Errorf("trailing-slash glob rejected: %v", err)
	}
}

func TestSplitEditor(t *testing.T) {
	tests := []struct {
		in       string
		wantCmd  string
		wantArgs int
	}{
		{"vim", "vim", 0},
		{"code --wait", "code", 1},
		{`emacs -nw --eval "(setq x 1)"`, "emacs", 3},
	}
	for _, tt := range tests {
		cmd, args, err := splitEditor(tt.in)
		if err != nil {
			t.Errorf("splitEditor(%q) error: %v", tt.in, err)
			continue
		}
		if cmd != tt.wantCmd || len(args) != tt.wantArgs {
			t.Errorf("splitEditor(%q) = %q %v", tt.in, cmd, args)
		}
	}
}
