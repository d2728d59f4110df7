// Package deps checks for the external tools the editor shells out to.
package deps

import (
	"fmt"
	"os/exec"
)

const (
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
	MpvInstallURL    = "https://mpv.io/installation/"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// CheckFfmpeg checks if ffmpeg is installed and available in PATH.
// An explicit binary path from config takes precedence over PATH lookup.
func CheckFfmpeg(binary string) error {
	if binary == "" {
		binary = "ffmpeg"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return &DependencyError{Name: binary, InstallURL: FfmpegInstallURL}
	}
	return nil
}

// CheckFfprobe checks if ffprobe is installed and available in PATH.
func CheckFfprobe(binary string) error {
	if binary == "" {
		binary = "ffprobe"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return &DependencyError{Name: binary, InstallURL: FfmpegInstallURL}
	}
	return nil
}

// CheckMpv checks if mpv is installed. mpv is only needed for preview playback.
func CheckMpv(binary string) error {
	if binary == "" {
		binary = "mpv"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return &DependencyError{Name: binary, InstallURL: MpvInstallURL}
	}
	return nil
}
