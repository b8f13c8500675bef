package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mikanfactory/sagasu/internal/config"
	"github.com/mikanfactory/sagasu/internal/tools"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
)

type toolCheck struct {
	name     string
	required bool
	note     string
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that sagasu's external tools are installed",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	editorName := config.DefaultEditor
	if cfg, err := config.Resolve(config.Flags{MaxDepth: -1}); err == nil {
		editorName = cfg.Editor
	}

	checks := []toolCheck{
		{name: "rg", required: true, note: "backing content search"},
		{name: "git", required: true, note: "repository mode"},
		{name: editorName, required: true, note: "editor"},
		{name: "fzf", required: false, note: "external picker (built-in fallback otherwise)"},
		{name: "bat", required: false, note: "syntax-highlighted previews"},
		{name: "delta", required: false, note: "rich diff rendering"},
	}

	missingRequired := false
	for _, c := range checks {
		var status string
		switch {
		case tools.Available(c.name):
			status = okStyle.Render("[ok]  ")
		case c.required:
			status = failStyle.Render("[miss]")
			missingRequired = true
		default:
			status = warnStyle.Render("[opt] ")
		}
		fmt.Printf("  %s %-12s %s\n", status, c.name, dimStyle.Render(c.note))
	}

	if missingRequired {
		return fmt.Errorf("required tools are missing")
	}
	return nil
}
