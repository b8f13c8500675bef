package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikanfactory/sagasu/internal/git"
	"github.com/mikanfactory/sagasu/internal/model"
	"github.com/mikanfactory/sagasu/internal/preview"
)

// The preview subcommands are the picker's callback entry points: fzf
// re-enters this binary with the highlighted row's fields as arguments.
// The tool choice is resolved once per session by the controller and
// passed down so nothing is re-probed per row.

var previewTool string

var previewCmd = &cobra.Command{
	Use:    "preview <path> <line>",
	Hidden: true,
	Args:   cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		line, err := strconv.Atoi(args[1])
		if err != nil {
			line = 1
		}
		// missing files render empty; a preview never fails the session
		fmt.Print(preview.RenderFile(args[0], line, model.ParseDiffTool(previewTool)))
	},
}

var repoPreviewRepo string
var repoPreviewTool string

var repoPreviewCmd = &cobra.Command{
	Use:    "repo-preview <kind> <payload>",
	Hidden: true,
	Args:   cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tool := model.ParseDiffTool(repoPreviewTool)

		previewer := git.Previewer{
			Runner:   git.OSCommandRunner{},
			Filter:   filterFor(tool),
			Tool:     tool,
			RepoPath: repoPreviewRepo,
		}

		entry := model.ObjectEntry{
			Kind:    model.ObjectKind(args[0]),
			Payload: strings.Join(args[1:], ":"),
		}
		fmt.Print(previewer.Render(entry))
	},
}

func filterFor(tool model.DiffTool) git.Filter {
	switch tool {
	case model.DiffToolDelta:
		return git.OSFilter{Program: "delta"}
	case model.DiffToolBat:
		return git.OSFilter{Program: "bat"}
	default:
		return nil
	}
}

func init() {
	previewCmd.Flags().StringVar(&previewTool, "tool", "plain", "preview tool to render with")
	repoPreviewCmd.Flags().StringVar(&repoPreviewTool, "tool", "plain", "diff tool to render with")
	repoPreviewCmd.Flags().StringVar(&repoPreviewRepo, "repo", ".", "repository path")
}
