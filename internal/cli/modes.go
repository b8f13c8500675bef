package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"

	"github.com/mikanfactory/sagasu/internal/editor"
	"github.com/mikanfactory/sagasu/internal/git"
	"github.com/mikanfactory/sagasu/internal/model"
	"github.com/mikanfactory/sagasu/internal/picker"
	"github.com/mikanfactory/sagasu/internal/preview"
	"github.com/mikanfactory/sagasu/internal/resolve"
	"github.com/mikanfactory/sagasu/internal/search"
	"github.com/mikanfactory/sagasu/internal/session"
	"github.com/mikanfactory/sagasu/internal/tools"
)

// runContentMode drives the interactive content search loop: fzf when
// available, the built-in picker otherwise.
func runContentMode(cfg model.Config) error {
	if err := tools.CheckRequired([]string{search.Binary, cfg.Editor}); err != nil {
		return err
	}
	caps := tools.Probe()

	var selection []string
	var err error
	if caps.Fzf {
		selection, err = newController(cfg, caps).RunContent()
	} else {
		selection, err = runBuiltinContent(cfg)
	}
	if err != nil {
		return err
	}

	if len(selection) == 0 {
		log.Printf("[%s] session cancelled", cfg.SessionID)
		return nil
	}
	return openSelection(cfg, selection)
}

// runNonInteractive performs one search and opens the first match.
func runNonInteractive(cfg model.Config) error {
	if err := tools.CheckRequired([]string{search.Binary, cfg.Editor}); err != nil {
		return err
	}

	lines, err := search.RunOnce(context.Background(), search.OSRunner{}, search.BuildArgs(cfg, cfg.Pattern))
	if err != nil {
		return err
	}
	return openSelection(cfg, lines[:1])
}

// runGitMode aggregates repository objects and previews them by type.
func runGitMode(cfg model.Config) error {
	if err := tools.CheckRequired([]string{"git"}); err != nil {
		return err
	}
	caps := tools.Probe()
	runner := git.OSCommandRunner{}

	var selection []string
	var err error
	if caps.Fzf {
		tool := caps.DiffTool()
		colorize := cfg.ColorEnabled && tool.GitColorsOwnOutput()
		entries, aggErr := git.Aggregate(runner, cfg.Root, colorize)
		if aggErr != nil {
			return aggErr
		}
		selection, err = newController(cfg, caps).RunGit(git.Rows(entries))
	} else {
		selection, err = runBuiltinGit(cfg, runner)
	}
	if err != nil {
		return err
	}

	// git mode selections are emitted verbatim for the caller to use
	for _, row := range selection {
		fmt.Println(row)
	}
	return nil
}

func newController(cfg model.Config, caps tools.Capabilities) session.Controller {
	exe, err := os.Executable()
	if err != nil {
		exe = "sagasu"
	}
	return session.Controller{
		Config:      cfg,
		ContentTool: caps.ContentTool(),
		DiffTool:    caps.DiffTool(),
		Exe:         exe,
		Runner:      session.OSPickerRunner{},
	}
}

// runBuiltinContent is the fzf-less fallback. The embedded picker
// renders rows and previews itself, so engine output stays plain.
func runBuiltinContent(cfg model.Config) ([]string, error) {
	srcCfg := cfg
	srcCfg.Interactive = false

	previewFn := func(row string) string {
		parsed := resolve.ParseLine(row)
		line, _ := strconv.Atoi(parsed.LineToken)
		return preview.RenderFile(parsed.Discriminator, line, model.DiffToolPlain)
	}

	return picker.Run(
		picker.ContentSource{Config: srcCfg, Runner: search.OSRunner{}},
		previewFn,
		picker.Options{
			InitialQuery: cfg.Pattern,
			Debounce:     cfg.Debounce,
			PreviewRatio: cfg.PreviewRatio,
		},
	)
}

func runBuiltinGit(cfg model.Config, runner git.CommandRunner) ([]string, error) {
	entries, err := git.Aggregate(runner, cfg.Root, false)
	if err != nil {
		return nil, err
	}

	previewer := git.Previewer{
		Runner:   runner,
		Tool:     model.DiffToolPlain,
		RepoPath: cfg.Root,
	}
	previewFn := func(row string) string {
		parsed := resolve.ParseLine(row)
		payload := parsed.LineToken
		if parsed.Rest != "" {
			payload += ":" + parsed.Rest
		}
		return previewer.Render(model.ObjectEntry{
			Kind:    model.ObjectKind(parsed.Discriminator),
			Payload: payload,
		})
	}

	return picker.Run(
		picker.GitSource{Rows: git.Rows(entries)},
		previewFn,
		picker.Options{
			InitialQuery: cfg.Pattern,
			Debounce:     cfg.Debounce,
			PreviewRatio: cfg.PreviewRatio,
		},
	)
}

// openSelection resolves the confirmed rows and hands off to the editor.
func openSelection(cfg model.Config, selection []string) error {
	targets, err := resolve.Resolve(selection, os.Stderr)
	if err != nil {
		return err
	}

	args := editor.Invocation(cfg, targets)
	log.Printf("[%s] opening %s %v", cfg.SessionID, cfg.Editor, args)

	cmd := exec.Command(cfg.Editor, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", cfg.Editor, err)
	}
	return nil
}
