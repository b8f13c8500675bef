// Package cli wires the components into the sagasu command tree.
package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mikanfactory/sagasu/internal/config"
)

// Version is stamped at build time.
var Version = "dev"

var rootFlags = struct {
	root           string
	excludeGlobs   []string
	maxDepth       int
	includeIgnored bool
	nonInteractive bool
	gitMode        bool
	configPath     string
}{}

var rootCmd = &cobra.Command{
	Use:   "sagasu [pattern] [path]",
	Short: "Interactive code search with live preview",
	Long: `sagasu is an interactive front-end over ripgrep and fzf: type a query,
watch matches update live with a contextual preview, and open the chosen
match in your editor at the right line.

With --git, it searches repository metadata (commits, branches, tags,
reflog, stashes) instead of file contents.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&rootFlags.root, "path", "p", "", "directory to search (default: current directory)")
	rootCmd.Flags().StringArrayVarP(&rootFlags.excludeGlobs, "exclude", "e", nil, "glob to exclude, repeatable")
	rootCmd.Flags().IntVarP(&rootFlags.maxDepth, "max-depth", "d", -1, "limit directory descent depth")
	rootCmd.Flags().BoolVarP(&rootFlags.includeIgnored, "no-ignore", "u", false, "search ignored and hidden files too")
	rootCmd.Flags().BoolVarP(&rootFlags.nonInteractive, "no-interactive", "n", false, "open the first match directly (requires a pattern)")
	rootCmd.Flags().BoolVarP(&rootFlags.gitMode, "git", "g", false, "search repository metadata instead of file contents")
	rootCmd.Flags().StringVar(&rootFlags.configPath, "config", "", "path to config file")

	rootCmd.AddCommand(previewCmd, repoPreviewCmd, doctorCmd, versionCmd)
}

// flagsFromArgs merges positional arguments into the flag set: the first
// positional is the pattern, the second the root (unless --path is set).
func flagsFromArgs(args []string) config.Flags {
	flags := config.Flags{
		Root:           rootFlags.root,
		ExcludeGlobs:   rootFlags.excludeGlobs,
		MaxDepth:       rootFlags.maxDepth,
		IncludeIgnored: rootFlags.includeIgnored,
		NonInteractive: rootFlags.nonInteractive,
		GitMode:        rootFlags.gitMode,
		ConfigPath:     rootFlags.configPath,
	}
	if len(args) > 0 {
		flags.Pattern = args[0]
	}
	if len(args) > 1 && flags.Root == "" {
		flags.Root = args[1]
	}
	return flags
}

func runRoot(cmd *cobra.Command, args []string) error {
	// drop a commented template on first run so the file location and
	// available keys are discoverable; an explicit --config opts out
	if rootFlags.configPath == "" {
		if path, created, err := config.EnsureDefaultConfig(); err == nil && created {
			fmt.Fprintf(os.Stderr, "created config template at %s\n", path)
		}
	}

	cfg, err := config.Resolve(flagsFromArgs(args))
	if err != nil {
		return err
	}

	setupDebugLog()
	log.Printf("[%s] session start root=%s git=%v interactive=%v",
		cfg.SessionID, cfg.Root, cfg.GitMode, cfg.Interactive)

	if cfg.GitMode {
		return runGitMode(cfg)
	}
	if !cfg.Interactive {
		return runNonInteractive(cfg)
	}
	return runContentMode(cfg)
}

func setupDebugLog() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	logPath := filepath.Join(home, ".config", "sagasu", "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sagasu version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sagasu %s\n", Version)
	},
}

// Execute runs the command tree and returns the process exit code.
// Cancelling an interactive session is a success, not an error.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
