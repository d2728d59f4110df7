package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBuildCopyCutArgs(t *testing.T) {
	trim := Interval{10 * time.Second, 40 * time.Second}
	args := buildCopyCutArgs("clip.mp4", trim, "/tmp/main-cut.mp4")
	joined := strings.Join(args, " ")

	// Input seeking: -ss must come before -i so the demuxer snaps to the
	// keyframe at or before the start, and -t is duration-relative.
	ssIdx := strings.Index(joined, "-ss 10.000")
	inIdx := strings.Index(joined, "-i clip.mp4")
	if ssIdx == -1 || inIdx == -1 || ssIdx > inIdx {
		t.Fatalf("expected -ss before -i: %s", joined)
	}
	if !strings.Contains(joined, "-t 30.000") {
		t.Fatalf("expected duration-relative -t 30.000: %s", joined)
	}
	if !strings.Contains(joined, "-c copy") {
		t.Fatalf("expected stream copy: %s", joined)
	}
}

func TestBuildConcatArgs(t *testing.T) {
	args := buildConcatArgs("/tmp/concat.txt", "/out/.final.part.mp4")
	joined := strings.Join(args, " ")
	for _, want := range []string{"-f concat", "-safe 0", "-i /tmp/concat.txt", "-c copy", "-y /out/.final.part.mp4"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("concat args missing %q: %s", want, joined)
		}
	}
}

func TestWriteConcatList(t *testing.T) {
	listPath := filepath.Join(t.TempDir(), "concat.txt")
	files := []string{"/videos/intro.mp4", "/videos/main-cut.mp4", "/videos/outro.mp4"}
	if err := writeConcatList(listPath, files); err != nil {
		t.Fatalf("writeConcatList returned error: %v", err)
	}
	data, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatalf("read concat list: %v", err)
	}
	want := "file '/videos/intro.mp4'\nfile '/videos/main-cut.mp4'\nfile '/videos/outro.mp4'\n"
	if string(data) != want {
		t.Fatalf("concat list = %q, want %q", data, want)
	}
}

func TestWriteConcatListEscapesQuotes(t *testing.T) {
	listPath := filepath.Join(t.TempDir(), "concat.txt")
	if err := writeConcatList(listPath, []string{"/videos/it's a clip.mp4"}); err != nil {
		t.Fatalf("writeConcatList returned error: %v", err)
	}
	data, _ := os.ReadFile(listPath)
	if !strings.Contains(string(data), `it'\''s a clip.mp4`) {
		t.Fatalf("single quote not escaped: %q", data)
	}
}

func TestSnapInterval(t *testing.T) {
	requested := Interval{10 * time.Second, 40 * time.Second}

	// Cut came back longer than requested: start snapped to an earlier
	// keyframe.
	snappedIv, snapped := snapInterval(requested, 33*time.Second)
	if !snapped {
		t.Fatalf("expected snap to be reported")
	}
	if snappedIv.Start != 7*time.Second || snappedIv.End != 40*time.Second {
		t.Fatalf("unexpected snapped interval: %v", snappedIv)
	}

	// Within tolerance: requested interval stands.
	same, snapped := snapInterval(requested, 30*time.Second+100*time.Millisecond)
	if snapped || same != requested {
		t.Fatalf("expected requested interval within tolerance, got %v snapped=%v", same, snapped)
	}

	// Unmeasurable cut: fall back to the request.
	fallback, snapped := snapInterval(requested, 0)
	if snapped || fallback != requested {
		t.Fatalf("expected fallback to requested interval, got %v snapped=%v", fallback, snapped)
	}
}
