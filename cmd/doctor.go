package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kavan-vyas/epe-video-editor/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the external tools (ffmpeg, ffprobe, mpv) are installed and available.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true

		// Check ffmpeg
		if err := deps.CheckFfmpeg(cfg.Tools.FFmpeg); err != nil {
			fmt.Println("✗ ffmpeg: NOT FOUND")
			fmt.Printf("  Install from: %s\n", deps.FfmpegInstallURL)
			allGood = false
		} else {
			fmt.Println("✓ ffmpeg: OK")
		}

		// Check ffprobe
		if err := deps.CheckFfprobe(cfg.Tools.FFprobe); err != nil {
			fmt.Println("✗ ffprobe: NOT FOUND")
			fmt.Printf("  Install from: %s\n", deps.FfmpegInstallURL)
			allGood = false
		} else {
			fmt.Println("✓ ffprobe: OK")
		}

		// Check mpv (only needed for --play)
		if err := deps.CheckMpv(cfg.Tools.Mpv); err != nil {
			fmt.Println("✗ mpv: NOT FOUND (preview playback disabled)")
			fmt.Printf("  Install from: %s\n", deps.MpvInstallURL)
		} else {
			fmt.Println("✓ mpv: OK")
		}

		fmt.Println()
		if allGood {
			fmt.Println("All required dependencies are installed!")
		} else {
			fmt.Println("Some dependencies are missing. Please install them to use all features.")
			os.Exit(1)
		}
	},
}
