// Package player launches mpv to preview an assembled video.
package player

import (
	"os/exec"

	"github.com/kavan-vyas/epe-video-editor/deps"
)

// Open starts mpv on the given video file and returns without waiting.
// It checks that mpv is installed first and returns an error with install
// link if not. Returns the *exec.Cmd for the running process.
func Open(binary, videoPath string) (*exec.Cmd, error) {
	if binary == "" {
		binary = "mpv"
	}
	if err := deps.CheckMpv(binary); err != nil {
		return nil, err
	}

	cmd := exec.Command(binary, videoPath)

	// Start the process (non-blocking)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
