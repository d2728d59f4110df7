package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/kavan-vyas/epe-video-editor/pkg/timeutil"
)

// The stream-copy strategy never decodes. The main segment is cut by input
// seeking: -ss before -i repositions the demuxer to the nearest keyframe at
// or before the requested start, and -t reads a duration relative to that
// seek point (duration-relative model, not an absolute end timestamp). The
// actual cut therefore starts up to one keyframe interval early; the engine
// measures the intermediate file and reports the snapped interval to the
// caller instead of pretending the request was honored exactly. Segments are
// then joined with the concat demuxer, which requires identical stream
// parameters across inputs.

// buildCopyCutArgs constructs the ffmpeg argument list that cuts the main
// segment losslessly into tmpCut.
func buildCopyCutArgs(mainPath string, trim Interval, tmpCut string) []string {
	return []string{
		"-ss", timeutil.Seconds(trim.Start),
		"-i", mainPath,
		"-t", timeutil.Seconds(trim.Duration()),
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		"-y", tmpCut,
	}
}

// buildConcatArgs constructs the concat-demuxer argument list joining the
// files named in listPath into tmpOut without re-encoding.
func buildConcatArgs(listPath, tmpOut string) []string {
	return []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-movflags", "+faststart",
		"-y", tmpOut,
	}
}

// writeConcatList writes a concat-demuxer manifest listing the ordered
// segment files. Single quotes in paths are escaped per the demuxer's
// quoting rules.
func writeConcatList(listPath string, files []string) error {
	var b strings.Builder
	for _, file := range files {
		fmt.Fprintf(&b, "file '%s'\n", escapeConcatPath(file))
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

func escapeConcatPath(path string) string {
	// Inside single quotes the demuxer understands '\'' as a literal quote.
	return strings.ReplaceAll(path, "'", `'\''`)
}
