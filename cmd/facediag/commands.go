package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"facediag/internal/app"
	"facediag/internal/config"
	"facediag/internal/model"
)

// rootCommand runs the diagnostic when invoked without a sub-command.
func rootCommand(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "facediag",
		Short:         "Inspect raw SSD face detector output for a single image",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.NewApp(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Run()
		},
	}

	setupFlags(rootCmd, cfg)
	rootCmd.AddCommand(historyCommand(cfg))

	return rootCmd
}

func setupFlags(rootCmd *cobra.Command, cfg *config.Config) {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ImagePath, "image", cfg.ImagePath, "Test image to analyze")
	flags.StringVar(&cfg.ModelPath, "model", cfg.ModelPath, "Detector weights (.pb)")
	flags.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Detector graph description (.pbtxt)")
	flags.StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "Where to write the annotated image")
	flags.StringSliceVar(&cfg.CascadePaths, "cascade", cfg.CascadePaths, "Haar cascade candidate paths, tried in order")
	flags.IntVar(&cfg.DrawLimit, "limit", cfg.DrawLimit, "Number of top detections to draw and list")
	flags.StringVar(&cfg.LogDirectory, "log-dir", cfg.LogDirectory, "Directory for log files")
	flags.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "Run history database")
	flags.BoolVar(&cfg.HistoryEnabled, "history", cfg.HistoryEnabled, "Record this run in the history database")
}

func historyCommand(cfg *config.Config) *cobra.Command {
	filter := &model.RunFilter{}
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if since > 0 {
				filter.Since = time.Now().Add(-since).UTC()
			}

			a, err := app.NewApp(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			return a.History(filter)
		},
	}

	cmd.Flags().StringVar(&filter.ImagePath, "for-image", "", "Only runs of this image")
	cmd.Flags().IntVar(&filter.Limit, "last", 10, "Number of runs to show (0 for all)")
	cmd.Flags().DurationVar(&since, "since", 0, "Only runs newer than this (e.g. 24h)")

	cmd.AddCommand(historyShowCommand(cfg))
	cmd.AddCommand(historyClearCommand(cfg))

	return cmd
}

func historyShowCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded run with its detections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRunID(args[0])
			if err != nil {
				return err
			}

			a, err := app.NewApp(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			return a.ShowRun(id)
		},
	}
}

func historyClearCommand(cfg *config.Config) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id < 0 {
				return fmt.Errorf("invalid run ID %d", id)
			}

			a, err := app.NewApp(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			return a.ClearHistory(id)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Delete only this run (default: all runs)")

	return cmd
}

func parseRunID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid run ID %q", arg)
	}
	return id, nil
}
