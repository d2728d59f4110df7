package engine

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kavan-vyas/epe-video-editor/ffprobe"
)

// maxConcurrentLoads bounds the segment load fan-out. Loads are
// demuxer/IO-bound and independent, so each of the at-most-three segments
// gets its own worker.
const maxConcurrentLoads = 3

// probeFunc inspects a media file. Swapped for a fake in tests.
type probeFunc func(ctx context.Context, path string) (ffprobe.Result, error)

type loadResult struct {
	role   Role
	handle *Handle
	err    error
}

// loadSegments opens and probes every segment concurrently and blocks until
// all loads finish. Results are keyed by role, so the canonical
// Intro -> Main -> Outro order is reconstructed by the caller regardless of
// completion order. If any load fails the whole operation fails, reporting
// the offending segment; sibling results are discarded (handles hold no OS
// resources, so there is nothing further to release).
func (e *Engine) loadSegments(ctx context.Context, segments []Segment) (map[Role]*Handle, error) {
	results := make(chan loadResult, len(segments))
	sem := make(chan struct{}, maxConcurrentLoads)

	var wg sync.WaitGroup
	for _, seg := range segments {
		wg.Add(1)
		go func(seg Segment) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			handle, err := e.loadSegment(ctx, seg)
			results <- loadResult{role: seg.Role, handle: handle, err: err}
		}(seg)
	}
	wg.Wait()
	close(results)

	byRole := make(map[Role]*Handle, len(segments))
	errs := make(map[Role]error)
	for res := range results {
		if res.err != nil {
			errs[res.role] = res.err
			continue
		}
		byRole[res.role] = res.handle
	}

	// Report failures in canonical order so the surfaced error is
	// deterministic regardless of which load finished first.
	for _, role := range roleOrder {
		if err, ok := errs[role]; ok {
			return nil, err
		}
	}
	return byRole, nil
}

// loadSegment probes a single input and validates its basic metadata.
func (e *Engine) loadSegment(ctx context.Context, seg Segment) (*Handle, error) {
	info, err := os.Stat(seg.Path)
	if err != nil {
		return nil, &SegmentUnavailableError{Path: seg.Path, Role: seg.Role, Reason: "file not found or unreadable", Err: err}
	}
	if info.IsDir() {
		return nil, &SegmentUnavailableError{Path: seg.Path, Role: seg.Role, Reason: "path is a directory"}
	}

	probed, err := e.probe(ctx, seg.Path)
	if err != nil {
		return nil, &SegmentUnavailableError{Path: seg.Path, Role: seg.Role, Reason: "container not readable", Err: err}
	}

	video := probed.VideoStream()
	if video == nil {
		return nil, &SegmentUnavailableError{Path: seg.Path, Role: seg.Role, Reason: "no video stream"}
	}
	audio := probed.AudioStream()
	if audio == nil {
		return nil, &SegmentUnavailableError{Path: seg.Path, Role: seg.Role, Reason: "no audio stream"}
	}
	durationSecs := probed.DurationSeconds()
	if durationSecs <= 0 {
		return nil, &SegmentUnavailableError{Path: seg.Path, Role: seg.Role, Reason: "container reports no duration"}
	}
	frameRate := probed.FrameRate()
	if frameRate <= 0 {
		return nil, &SegmentUnavailableError{Path: seg.Path, Role: seg.Role, Reason: "container reports no frame rate"}
	}

	handle := &Handle{
		Segment:    seg,
		Duration:   time.Duration(durationSecs * float64(time.Second)),
		FrameRate:  frameRate,
		Width:      video.Width,
		Height:     video.Height,
		VideoCodec: video.CodecName,
		AudioCodec: audio.CodecName,
	}
	e.log.Debug("segment loaded",
		"role", seg.Role,
		"path", seg.Path,
		"duration", handle.Duration,
		"resolution", fmt.Sprintf("%dx%d", handle.Width, handle.Height),
		"video_codec", handle.VideoCodec,
	)
	return handle, nil
}
