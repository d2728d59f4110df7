package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kavan-vyas/epe-video-editor/ffprobe"
)

// fakeProbe returns probe results keyed by path basename. Paths whose base
// name starts with "main-cut" report the given cut duration, matching the
// intermediate file a stream-copy run produces.
func fakeProbe(durations map[string]float64, cutDuration float64) probeFunc {
	return func(ctx context.Context, path string) (ffprobe.Result, error) {
		base := filepath.Base(path)
		seconds, ok := durations[base]
		if !ok {
			if strings.HasPrefix(base, "main-cut") {
				seconds = cutDuration
			} else {
				return ffprobe.Result{}, fmt.Errorf("unexpected probe of %s", path)
			}
		}
		return ffprobe.Result{
			Streams: []ffprobe.Stream{
				{CodecType: "video", CodecName: "h264", Width: 1920, Height: 1080, RFrameRate: "25/1"},
				{CodecType: "audio", CodecName: "aac"},
			},
			Format: ffprobe.Format{Duration: fmt.Sprintf("%.3f", seconds)},
		}, nil
	}
}

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

func testEngine(probe probeFunc) *Engine {
	return &Engine{
		ffmpeg:      "ffmpeg",
		log:         discardLogger(),
		probe:       probe,
		execCommand: nil, // loads never exec
	}
}

func TestLoadSegmentsKeysResultsByRole(t *testing.T) {
	dir := t.TempDir()
	clip := writeStub(t, dir, "clip.mp4")
	intro := writeStub(t, dir, "intro.mp4")
	outro := writeStub(t, dir, "outro.mp4")

	e := testEngine(fakeProbe(map[string]float64{"clip.mp4": 120, "intro.mp4": 5, "outro.mp4": 3}, 0))
	handles, err := e.loadSegments(context.Background(), []Segment{
		{Path: outro, Role: RoleOutro},
		{Path: clip, Role: RoleMain},
		{Path: intro, Role: RoleIntro},
	})
	if err != nil {
		t.Fatalf("loadSegments returned error: %v", err)
	}
	if len(handles) != 3 {
		t.Fatalf("expected 3 handles, got %d", len(handles))
	}
	if handles[RoleMain].Duration != 120*time.Second {
		t.Fatalf("main duration = %v", handles[RoleMain].Duration)
	}
	if handles[RoleIntro].Duration != 5*time.Second {
		t.Fatalf("intro duration = %v", handles[RoleIntro].Duration)
	}
	if handles[RoleMain].VideoCodec != "h264" || handles[RoleMain].Width != 1920 {
		t.Fatalf("unexpected main metadata: %+v", handles[RoleMain])
	}
}

func TestLoadSegmentsReportsMissingFile(t *testing.T) {
	dir := t.TempDir()
	clip := writeStub(t, dir, "clip.mp4")
	missing := filepath.Join(dir, "intro.mp4")

	e := testEngine(fakeProbe(map[string]float64{"clip.mp4": 120}, 0))
	_, err := e.loadSegments(context.Background(), []Segment{
		{Path: clip, Role: RoleMain},
		{Path: missing, Role: RoleIntro},
	})
	var unavailable *SegmentUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SegmentUnavailableError, got %v", err)
	}
	if unavailable.Path != missing || unavailable.Role != RoleIntro {
		t.Fatalf("error does not identify the offending segment: %+v", unavailable)
	}
}

func TestLoadSegmentsRejectsStreamlessContainer(t *testing.T) {
	dir := t.TempDir()
	clip := writeStub(t, dir, "clip.mp4")

	probe := func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Result{Format: ffprobe.Format{Duration: "120"}}, nil
	}
	e := testEngine(probe)
	_, err := e.loadSegments(context.Background(), []Segment{{Path: clip, Role: RoleMain}})
	var unavailable *SegmentUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SegmentUnavailableError, got %v", err)
	}
	if !strings.Contains(unavailable.Reason, "video stream") {
		t.Fatalf("unexpected reason: %q", unavailable.Reason)
	}
}

func TestLoadSegmentsRejectsUnreadableContainer(t *testing.T) {
	dir := t.TempDir()
	clip := writeStub(t, dir, "clip.mp4")

	probe := func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Result{}, errors.New("moov atom not found")
	}
	e := testEngine(probe)
	_, err := e.loadSegments(context.Background(), []Segment{{Path: clip, Role: RoleMain}})
	var unavailable *SegmentUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SegmentUnavailableError, got %v", err)
	}
	if !errors.Is(err, unavailable.Err) || unavailable.Err == nil {
		t.Fatalf("underlying probe error not preserved: %+v", unavailable)
	}
}

func TestLoadSegmentsSurfacesErrorsInCanonicalOrder(t *testing.T) {
	dir := t.TempDir()
	// Both intro and outro are missing; the surfaced error must be the
	// intro deterministically, regardless of load completion order.
	clip := writeStub(t, dir, "clip.mp4")

	e := testEngine(fakeProbe(map[string]float64{"clip.mp4": 120}, 0))
	for i := 0; i < 10; i++ {
		_, err := e.loadSegments(context.Background(), []Segment{
			{Path: filepath.Join(dir, "outro.mp4"), Role: RoleOutro},
			{Path: clip, Role: RoleMain},
			{Path: filepath.Join(dir, "intro.mp4"), Role: RoleIntro},
		})
		var unavailable *SegmentUnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("expected SegmentUnavailableError, got %v", err)
		}
		if unavailable.Role != RoleIntro {
			t.Fatalf("expected intro error surfaced first, got %s", unavailable.Role)
		}
	}
}
