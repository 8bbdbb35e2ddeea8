package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"aesthetic-filters/internal/app"
	"aesthetic-filters/internal/config"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:           AppName + " <image_path> [output_folder]",
		Short:         "Create 10 aesthetic filter variations from one image",
		Version:       AppVersion,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, cfg, args, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", app.ErrUsage, err)
	})

	flags := cmd.Flags()
	flags.IntVarP(&cfg.Quality, "quality", "q", cfg.Quality, "JPEG quality (1-100)")
	flags.BoolVar(&cfg.Optimize, "optimize", cfg.Optimize, "Optimise JPEG Huffman tables when the codec supports it")
	flags.StringVar(&cfg.Codec, "codec", cfg.Codec, "Image codec: opencv or native")
	flags.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Filters to run concurrently (0 = one per CPU)")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug mode with verbose logging")

	return cmd
}

func runRoot(cmd *cobra.Command, cfg config.Config, args []string, stdout, stderr io.Writer) error {
	logger := initLogger(cfg.Debug, stderr)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": cfg.Debug,
		"args":       args,
	}).Debug("Starting aesthetic filter generator")

	console := app.NewConsole(stdout)
	console.Banner()

	if len(args) == 0 {
		console.Usage(AppName)
		return nil
	}
	if len(args) > 2 {
		return fmt.Errorf("%w: expected at most 2 arguments, got %d", app.ErrUsage, len(args))
	}

	cfg.InputPath = args[0]
	if len(args) == 2 {
		cfg.OutputDir = args[1]
	}

	_, err := app.Run(cmd.Context(), cfg, stdout, logger)
	if err != nil {
		logger.WithError(err).Debug("Run failed")
	}
	return err
}
