package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/configloader"
	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/fsutil"
	"github.com/yaklabco/richtext/pkg/langdetect"
	"github.com/yaklabco/richtext/pkg/page"
	"github.com/yaklabco/richtext/pkg/richtext"
)

type renderFlags struct {
	output         string
	fullPage       bool
	streaming      bool
	detectLanguage bool
	title          string
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render Markdown to HTML",
		Long: `Render a Markdown file (or stdin when no file is given) to HTML.

By default the output is a bare fragment suitable for embedding. With
--full-page the fragment is wrapped in a standalone HTML page that loads
highlight.js and KaTeX from a CDN to decorate code blocks and math.

Examples:
  richtext render chat.md                   # Fragment to stdout
  richtext render chat.md -o chat.html      # Fragment to a file
  richtext render --full-page chat.md       # Standalone page
  cat chat.md | richtext render             # Read from stdin
  richtext render --streaming partial.md    # Mark output as in progress`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&flags.fullPage, "full-page", false, "wrap the fragment in a standalone HTML page")
	cmd.Flags().BoolVar(&flags.streaming, "streaming", false, "mark the output container as still in progress")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"infer a language tag for untagged code fences")
	cmd.Flags().StringVar(&flags.title, "title", "", "page title for --full-page output")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	logger := logging.Default()
	start := time.Now()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Flags override whatever the config resolved to, but only when the
	// user actually passed them.
	if cmd.Flags().Changed("full-page") {
		cfg.FullPage = flags.fullPage
	}
	if cmd.Flags().Changed("detect-language") {
		cfg.DetectLanguage = flags.detectLanguage
	}
	if cmd.Flags().Changed("title") {
		cfg.Title = flags.title
	}
	logging.SetLevel(cfg.LogLevel)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logging.SetLevel("debug")
	}

	inputName, input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	logger.Debug("rendering",
		logging.FieldInput, inputName,
		logging.FieldBytesIn, len(input),
		logging.FieldFullPage, cfg.FullPage,
		logging.FieldStreaming, flags.streaming,
		logging.FieldDetect, cfg.DetectLanguage,
	)

	opts := richtext.Options{}
	if cfg.DetectLanguage {
		opts.DetectLanguage = langdetect.Detect
	}
	out := richtext.RenderWithOptions(string(input), flags.streaming, opts)

	if cfg.FullPage {
		out, err = page.Build(out, page.Options{
			Title:     cfg.Title,
			Streaming: flags.streaming,
		})
		if err != nil {
			return fmt.Errorf("assemble page: %w", err)
		}
	}

	outputName, err := writeOutput(ctx, cmd, flags.output, out)
	if err != nil {
		return err
	}

	colorMode := cfg.Color
	if cmd.Flags().Changed("color") {
		colorMode, _ = cmd.Flags().GetString("color")
	}
	errOut := cmd.ErrOrStderr()
	styles := pretty.NewStyles(pretty.ColorEnabled(colorMode, errOut))
	pretty.WriteSummary(errOut, styles, pretty.Summary{
		Input:    inputName,
		Output:   outputName,
		BytesIn:  len(input),
		BytesOut: len(out),
		FullPage: cfg.FullPage,
		Duration: time.Since(start),
	})

	return nil
}

// loadConfig resolves config from the persistent --config flag, the
// working directory, and the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return config.Config{}, errors.Join(ErrIO, fmt.Errorf("get working directory: %w", err))
	}

	loaded, err := configloader.Load(configloader.Options{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return config.Config{}, errors.Join(ErrConfig, err)
	}
	if loaded.LoadedFrom != "" {
		logging.Default().Debug("configuration loaded", "file", loaded.LoadedFrom)
	}
	return loaded.Config, nil
}

// readInput reads the named file, or stdin when no argument was given.
func readInput(cmd *cobra.Command, args []string) (name string, data []byte, err error) {
	if len(args) == 0 {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, errors.Join(ErrIO, fmt.Errorf("read stdin: %w", err))
		}
		return "stdin", data, nil
	}

	data, err = os.ReadFile(args[0])
	if err != nil {
		return "", nil, errors.Join(ErrIO, fmt.Errorf("read input: %w", err))
	}
	return args[0], data, nil
}

// writeOutput writes to the --output path atomically, or to stdout.
func writeOutput(ctx context.Context, cmd *cobra.Command, path, content string) (string, error) {
	if path == "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), content); err != nil {
			return "", errors.Join(ErrIO, fmt.Errorf("write stdout: %w", err))
		}
		return "stdout", nil
	}
	if err := fsutil.WriteAtomic(ctx, path, []byte(content), 0); err != nil {
		return "", errors.Join(ErrIO, fmt.Errorf("write output: %w", err))
	}
	return path, nil
}
