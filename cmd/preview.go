package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kavan-vyas/epe-video-editor/db"
	"github.com/kavan-vyas/epe-video-editor/player"
)

var previewCmd = &cobra.Command{
	Use:   "preview [video-file]",
	Short: "Open a video in mpv",
	Long: `Open a video file in mpv. Without an argument the most recently
assembled output is opened.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var videoPath string
		if len(args) == 1 {
			videoPath = args[0]
		} else {
			var err error
			videoPath, err = latestOutput()
			if err != nil {
				return err
			}
		}

		absPath, err := filepath.Abs(videoPath)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		info, err := os.Stat(absPath)
		if os.IsNotExist(err) {
			return fmt.Errorf("video file not found: %s", absPath)
		}
		if err != nil {
			return fmt.Errorf("failed to access video file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("path is a directory, not a video file: %s", absPath)
		}

		fmt.Printf("Opening video: %s\n", filepath.Base(absPath))
		process, err := player.Open(cfg.Tools.Mpv, absPath)
		if err != nil {
			return err
		}
		return process.Wait()
	},
}

// latestOutput returns the output path of the most recent successful run.
func latestOutput() (string, error) {
	database, err := db.Open()
	if err != nil {
		return "", fmt.Errorf("open history: %w", err)
	}
	defer database.Close()

	runs, err := db.ListRuns(database, 50)
	if err != nil {
		return "", fmt.Errorf("list runs: %w", err)
	}
	for _, run := range runs {
		if run.Status == db.StatusSuccess {
			return run.OutputPath, nil
		}
	}
	return "", fmt.Errorf("no successful runs recorded; pass a video file")
}
