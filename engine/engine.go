package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/kavan-vyas/epe-video-editor/ffprobe"
)

// OutputSpec is the export configuration. A pre-existing file at Path is
// overwritten on success. Higher Threads parallelizes encoding work; lower
// Bitrate trades quality for speed and size. Codec and preset settings only
// apply to the re-encode strategy; stream copy repackages compressed data
// unchanged.
type OutputSpec struct {
	Path       string
	VideoCodec string
	AudioCodec string
	Preset     string
	Bitrate    string
	Threads    int
}

func (s OutputSpec) withDefaults() OutputSpec {
	if s.VideoCodec == "" {
		s.VideoCodec = "libx264"
	}
	if s.AudioCodec == "" {
		s.AudioCodec = "aac"
	}
	if s.Preset == "" {
		s.Preset = "faster"
	}
	if s.Threads <= 0 {
		s.Threads = runtime.NumCPU()
	}
	return s
}

// ProgressFunc receives advisory completion fractions (0.0-1.0, monotonic,
// best-effort) over the life of a run.
type ProgressFunc func(stage Stage, fraction float64)

// Request configures one assembly run.
type Request struct {
	RecordingPath string
	Interval      Interval
	IntroPath     string
	OutroPath     string
	Strategy      Strategy
	Output        OutputSpec
	Progress      ProgressFunc
}

func (r Request) validate() error {
	if r.RecordingPath == "" {
		return errors.New("assembly: recording path is required")
	}
	if r.Output.Path == "" {
		return errors.New("assembly: output path is required")
	}
	if r.Strategy != StrategyReEncode && r.Strategy != StrategyStreamCopy {
		return fmt.Errorf("assembly: unknown strategy %q", r.Strategy)
	}
	// Structural interval validation happens before any I/O.
	return r.Interval.validate()
}

// segments expands the request into descriptors. Only the main recording
// carries a trim; intro and outro are used whole.
func (r Request) segments() []Segment {
	segments := make([]Segment, 0, 3)
	if r.IntroPath != "" {
		segments = append(segments, Segment{Path: r.IntroPath, Role: RoleIntro})
	}
	trim := r.Interval
	segments = append(segments, Segment{Path: r.RecordingPath, Trim: &trim, Role: RoleMain})
	if r.OutroPath != "" {
		segments = append(segments, Segment{Path: r.OutroPath, Role: RoleOutro})
	}
	return segments
}

// Result reports a successful assembly. MainInterval is the interval that
// actually made it into the output: for stream copy it is the
// keyframe-snapped range, and Snapped is set when it differs from the
// request.
type Result struct {
	OutputPath   string
	Elapsed      time.Duration
	MainInterval Interval
	Snapped      bool
}

type execCommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Options configures engine construction.
type Options struct {
	FFmpeg  string
	FFprobe string
	Logger  *slog.Logger
}

// Engine executes assembly runs. It is stateless between runs and safe for
// sequential reuse.
type Engine struct {
	ffmpeg      string
	log         *slog.Logger
	probe       probeFunc
	execCommand execCommandFunc
}

// New constructs an Engine. Zero-value options fall back to PATH lookups and
// the default logger.
func New(opts Options) *Engine {
	ffmpegBin := opts.FFmpeg
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	ffprobeBin := opts.FFprobe
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		ffmpeg: ffmpegBin,
		log:    log,
		probe: func(ctx context.Context, path string) (ffprobe.Result, error) {
			return ffprobe.Inspect(ctx, ffprobeBin, path)
		},
		execCommand: exec.CommandContext,
	}
}

// streamCopyCutShare is the share of total progress attributed to the
// intermediate cut; the remainder covers the concat.
const streamCopyCutShare = 0.45

// Assemble runs one assembly to completion: concurrent segment loading, the
// strategy's trim and concatenation, and the final export. It is synchronous;
// cancellation of ctx stops the underlying work, temp files are released on
// every exit path, and no partial file is left at the destination.
func (e *Engine) Assemble(ctx context.Context, req Request) (Result, error) {
	started := time.Now()
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	spec := req.Output.withDefaults()
	report := monotonicProgress(req.Progress)

	clean := newCleaner(e.log)
	defer clean.release()

	segments := req.segments()
	e.log.Info("assembly started",
		"strategy", req.Strategy,
		"recording", req.RecordingPath,
		"interval", req.Interval.String(),
		"segments", len(segments),
		"output", spec.Path,
	)

	handles, err := e.loadSegments(ctx, segments)
	if err != nil {
		return Result{}, err
	}
	if err := cancelled(ctx, StageLoad); err != nil {
		return Result{}, err
	}

	main := handles[RoleMain]
	if err := req.Interval.validateWithin(main.Duration, main.Segment.Path); err != nil {
		return Result{}, err
	}

	plan, err := buildPlan(req.Strategy, handles)
	if err != nil {
		return Result{}, err
	}

	if dir := filepath.Dir(spec.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, &EncodeFailureError{Stage: StageExport, Err: fmt.Errorf("create output directory: %w", err)}
		}
	}
	tmpOut := partPath(spec.Path)
	clean.track(tmpOut)

	mainInterval := req.Interval
	snapped := false

	switch plan.Strategy {
	case StrategyReEncode:
		expected := assembledDuration(plan, req.Interval.Duration())
		args := buildReEncodeArgs(plan, req.Interval, spec, tmpOut)
		if err := e.runFFmpeg(ctx, StageExport, args, expected, scaleProgress(report, StageExport, 0, 1)); err != nil {
			return Result{}, err
		}

	case StrategyStreamCopy:
		mainInterval, snapped, err = e.streamCopyAssemble(ctx, plan, req.Interval, tmpOut, clean, report)
		if err != nil {
			return Result{}, err
		}
	}

	if err := cancelled(ctx, StageExport); err != nil {
		return Result{}, err
	}
	if err := os.Rename(tmpOut, spec.Path); err != nil {
		return Result{}, &EncodeFailureError{Stage: StageExport, Err: fmt.Errorf("finalize output: %w", err)}
	}
	report(StageExport, 1)

	result := Result{
		OutputPath:   spec.Path,
		Elapsed:      time.Since(started),
		MainInterval: mainInterval,
		Snapped:      snapped,
	}
	e.log.Info("assembly complete",
		"output", result.OutputPath,
		"elapsed", result.Elapsed,
		"main_interval", result.MainInterval.String(),
		"snapped", result.Snapped,
	)
	return result, nil
}

// streamCopyAssemble cuts the main segment losslessly, measures the
// keyframe-snapped result, and joins the segments with the concat demuxer.
func (e *Engine) streamCopyAssemble(ctx context.Context, plan *Plan, trim Interval, tmpOut string, clean *cleaner, report func(Stage, float64)) (Interval, bool, error) {
	tempDir, err := os.MkdirTemp("", "epe-assembly-*")
	if err != nil {
		return Interval{}, false, &EncodeFailureError{Stage: StageTrim, Err: fmt.Errorf("create temp directory: %w", err)}
	}
	clean.trackDir(tempDir)

	main := plan.Main()
	tmpCut := filepath.Join(tempDir, "main-cut"+filepath.Ext(main.Segment.Path))
	cutArgs := buildCopyCutArgs(main.Segment.Path, trim, tmpCut)
	if err := e.runFFmpeg(ctx, StageTrim, cutArgs, trim.Duration(), scaleProgress(report, StageTrim, 0, streamCopyCutShare)); err != nil {
		return Interval{}, false, err
	}

	// Measure what the keyframe snap actually produced. The cut starts at
	// the nearest keyframe at or before the requested start, so the real
	// interval may begin up to one keyframe interval early.
	probed, err := e.probe(ctx, tmpCut)
	if err != nil {
		return Interval{}, false, &EncodeFailureError{Stage: StageTrim, Err: fmt.Errorf("probe trimmed segment: %w", err)}
	}
	actual := time.Duration(probed.DurationSeconds() * float64(time.Second))
	snappedInterval, snapped := snapInterval(trim, actual)
	if snapped {
		e.log.Info("stream copy cut snapped to keyframe",
			"requested", trim.String(),
			"actual", snappedInterval.String(),
		)
	}

	files := make([]string, 0, len(plan.Segments))
	for _, h := range plan.Segments {
		if h.Segment.Role == RoleMain {
			files = append(files, tmpCut)
			continue
		}
		abs, err := filepath.Abs(h.Segment.Path)
		if err != nil {
			abs = h.Segment.Path
		}
		files = append(files, abs)
	}
	listPath := filepath.Join(tempDir, "concat.txt")
	if err := writeConcatList(listPath, files); err != nil {
		return Interval{}, false, &EncodeFailureError{Stage: StageAssemble, Err: err}
	}

	expected := assembledDuration(plan, actual)
	concatArgs := buildConcatArgs(listPath, tmpOut)
	if err := e.runFFmpeg(ctx, StageAssemble, concatArgs, expected, scaleProgress(report, StageAssemble, streamCopyCutShare, 1)); err != nil {
		return Interval{}, false, err
	}
	return snappedInterval, snapped, nil
}

// snapInterval derives the keyframe-snapped interval from the measured cut
// duration. The cut reads a fixed duration from the seek point, so the
// snapped range is anchored at the requested start moved back by the excess.
func snapInterval(requested Interval, actual time.Duration) (Interval, bool) {
	if actual <= 0 {
		return requested, false
	}
	const tolerance = 250 * time.Millisecond
	excess := actual - requested.Duration()
	if time.Duration(math.Abs(float64(excess))) <= tolerance {
		return requested, false
	}
	start := requested.Start - excess
	if start < 0 {
		start = 0
	}
	return Interval{Start: start, End: start + actual}, true
}

// assembledDuration is the expected output duration: intro + main + outro.
func assembledDuration(plan *Plan, mainDuration time.Duration) time.Duration {
	total := mainDuration
	for _, h := range plan.Segments {
		if h.Segment.Role != RoleMain {
			total += h.Duration
		}
	}
	return total
}

func cancelled(ctx context.Context, stage Stage) error {
	if ctx.Err() != nil {
		return &CancelledError{Stage: stage}
	}
	return nil
}
