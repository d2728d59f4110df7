package ffprobe

import "testing"

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", CodecName: "h264", Width: 1920, Height: 1080, RFrameRate: "30000/1001"},
			{CodecType: "audio", CodecName: "aac"},
		},
		Format: Format{Duration: "123.45"},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	video := result.VideoStream()
	if video == nil || video.CodecName != "h264" {
		t.Fatalf("unexpected video stream: %+v", video)
	}
	audio := result.AudioStream()
	if audio == nil || audio.CodecName != "aac" {
		t.Fatalf("unexpected audio stream: %+v", audio)
	}
	fps := result.FrameRate()
	if fps < 29.96 || fps > 29.98 {
		t.Fatalf("unexpected frame rate: %v", fps)
	}
}

func TestResultHelpersHandleMissingData(t *testing.T) {
	result := Result{Format: Format{Duration: "bad"}}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.VideoStream() != nil {
		t.Fatalf("expected no video stream")
	}
	if result.FrameRate() != 0 {
		t.Fatalf("expected frame rate 0, got %v", result.FrameRate())
	}
}

func TestParseRational(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"25/1", 25},
		{"30", 30},
		{"", 0},
		{"30/0", 0},
		{"x/1", 0},
	}
	for _, tc := range cases {
		if got := parseRational(tc.input); got != tc.want {
			t.Fatalf("parseRational(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
