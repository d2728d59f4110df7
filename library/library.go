// Package library scans the media directories for recordings, intros and
// outros, and normalizes output file names.
package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultOutroName is the outro file picked up automatically when present.
const DefaultOutroName = "mainoutro.mp4"

var videoExtensions = map[string]bool{
	".mp4": true,
	".mkv": true,
	".mov": true,
}

// ListRecordings returns the video files in dir, sorted by name.
func ListRecordings(dir string) ([]string, error) {
	return listVideos(dir, func(string) bool { return true })
}

// ListIntros returns the video files in dir whose name contains "intro",
// sorted by name. The default outro is excluded even though its name
// matches.
func ListIntros(dir string) ([]string, error) {
	return listVideos(dir, func(name string) bool {
		lower := strings.ToLower(name)
		return strings.Contains(lower, "intro") && lower != DefaultOutroName
	})
}

// DefaultOutro returns the path to the default outro in dir, or "" if the
// file does not exist.
func DefaultOutro(dir string) string {
	path := filepath.Join(dir, DefaultOutroName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}

func listVideos(dir string, keep func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !videoExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		if !keep(name) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// SanitizeOutputName reduces name to a bare file name ending in .mp4.
// Directory components are stripped and an empty name becomes "final.mp4".
func SanitizeOutputName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		name = ""
	}
	if name == "" {
		return "final.mp4"
	}
	if strings.ToLower(filepath.Ext(name)) != ".mp4" {
		name += ".mp4"
	}
	return name
}
