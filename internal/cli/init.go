package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/configloader"
	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/fsutil"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a commented ` + configloader.FileName + ` with default settings to the
current directory. Refuses to overwrite an existing file unless --force
is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	workDir, err := os.Getwd()
	if err != nil {
		return errors.Join(ErrIO, fmt.Errorf("get working directory: %w", err))
	}
	path := filepath.Join(workDir, configloader.FileName)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Join(ErrConfig,
				fmt.Errorf("%s already exists (use --force to overwrite)", configloader.FileName))
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := fsutil.WriteAtomic(ctx, path, []byte(config.Template), 0); err != nil {
		return errors.Join(ErrIO, fmt.Errorf("write config: %w", err))
	}

	logging.Default().Info("wrote config", logging.FieldOutput, path)
	return nil
}
