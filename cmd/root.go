// Package cmd wires the command line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kavan-vyas/epe-video-editor/config"
	"github.com/kavan-vyas/epe-video-editor/logging"
)

var Version = "0.1.0"

var (
	cfg config.Config
	log *slog.Logger

	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "epe",
	Short: "Assemble esports recordings into publishable videos",
	Long: `epe cuts a section out of a gameplay recording and joins it with an
optional intro and outro into a single output video.

Two strategies are available:
  - reencode: frame accurate, decodes and re-encodes everything
  - streamcopy: lossless and fast, cut points snap to keyframes`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		level := cfg.Logging.Level
		if flagLogLevel != "" {
			level = flagLogLevel
		}
		format := cfg.Logging.Format
		if flagLogFormat != "" {
			format = flagLogFormat
		}
		log, err = logging.New(logging.Options{Level: level, Format: format})
		if err != nil {
			return err
		}
		slog.SetDefault(log)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("epe version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format (console, json)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
