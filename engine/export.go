package engine

import (
	"bufio"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ffmpeg is always invoked with machine-readable progress on stdout and
// quiet diagnostics on stderr. The stderr tail is kept for the verbatim
// detail in EncodeFailureError.
var ffmpegBaseArgs = []string{"-hide_banner", "-nostats", "-loglevel", "error", "-progress", "pipe:1"}

// runFFmpeg executes one ffmpeg invocation, streaming completion fractions
// derived from the expected output duration to onProgress. A context
// cancellation kills the child process and surfaces CancelledError.
func (e *Engine) runFFmpeg(ctx context.Context, stage Stage, args []string, expected time.Duration, onProgress func(float64)) error {
	full := append(append([]string{}, ffmpegBaseArgs...), args...)
	cmd := e.execCommand(ctx, e.ffmpeg, full...)

	stderr := &tailBuffer{limit: 4096}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &EncodeFailureError{Stage: stage, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return &EncodeFailureError{Stage: stage, Err: err}
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if fraction, ok := parseProgressLine(scanner.Text(), expected); ok && onProgress != nil {
			onProgress(fraction)
		}
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return &CancelledError{Stage: stage}
		}
		return &EncodeFailureError{Stage: stage, Err: err, Detail: stderr.String()}
	}
	if onProgress != nil {
		onProgress(1.0)
	}
	return nil
}

// parseProgressLine interprets one key=value line of ffmpeg's -progress
// output. out_time_us carries the current output timestamp in microseconds
// (out_time_ms is the same unit, a long-standing ffmpeg quirk); progress=end
// marks completion.
func parseProgressLine(line string, expected time.Duration) (float64, bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found {
		return 0, false
	}
	switch key {
	case "out_time_us", "out_time_ms":
		us, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || us < 0 || expected <= 0 {
			return 0, false
		}
		fraction := float64(us) / float64(expected.Microseconds())
		if fraction > 1 {
			fraction = 1
		}
		return fraction, true
	case "progress":
		if strings.TrimSpace(value) == "end" {
			return 1, true
		}
	}
	return 0, false
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	limit int
	data  []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	if len(b.data) > b.limit {
		b.data = b.data[len(b.data)-b.limit:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	return strings.TrimSpace(string(b.data))
}

// partPath returns the hidden in-progress path an export writes to before
// being renamed over the destination. The original extension is preserved so
// ffmpeg can infer the container muxer.
func partPath(dest string) string {
	dir := filepath.Dir(dest)
	base := filepath.Base(dest)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, "."+name+".part"+ext)
}

// monotonicProgress wraps a caller callback so reported fractions only ever
// increase and stay within [0, 1].
func monotonicProgress(fn ProgressFunc) func(Stage, float64) {
	var highWater float64
	return func(stage Stage, fraction float64) {
		if fn == nil {
			return
		}
		if fraction < 0 {
			fraction = 0
		}
		if fraction > 1 {
			fraction = 1
		}
		if fraction <= highWater {
			return
		}
		highWater = fraction
		fn(stage, fraction)
	}
}

// scaleProgress maps a sub-task's 0..1 range onto [lo, hi] of the run total.
func scaleProgress(report func(Stage, float64), stage Stage, lo, hi float64) func(float64) {
	return func(fraction float64) {
		report(stage, lo+fraction*(hi-lo))
	}
}
