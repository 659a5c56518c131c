// Package cli provides the Cobra command structure for richtext.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root richtext command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "richtext",
		Short: "Render assistant-style Markdown to safe HTML",
		Long: `richtext renders assistant-style Markdown (code fences, tables, lists,
blockquotes, and LaTeX) into injection-safe HTML fragments or standalone
preview pages.

The engine is streaming-safe: any prefix of a document renders without
errors and without unescaped markup, so output is safe to refresh while
tokens are still arriving.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
