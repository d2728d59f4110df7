package library

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func names(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func TestListRecordings(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "match2.mp4")
	touch(t, dir, "match1.mkv")
	touch(t, dir, "notes.txt")
	touch(t, dir, ".hidden.mp4")
	if err := os.Mkdir(filepath.Join(dir, "nested.mp4"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := ListRecordings(dir)
	if err != nil {
		t.Fatalf("ListRecordings returned error: %v", err)
	}
	want := []string{"match1.mkv", "match2.mp4"}
	gotNames := names(got)
	if len(gotNames) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotNames)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotNames)
		}
	}
}

func TestListIntrosMatchesByName(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "club-intro.mp4")
	touch(t, dir, "Intro2024.mov")
	touch(t, dir, "mainoutro.mp4")
	touch(t, dir, "highlight.mp4")

	got, err := ListIntros(dir)
	if err != nil {
		t.Fatalf("ListIntros returned error: %v", err)
	}
	gotNames := names(got)
	if len(gotNames) != 2 {
		t.Fatalf("expected 2 intros, got %v", gotNames)
	}
	if gotNames[0] != "Intro2024.mov" || gotNames[1] != "club-intro.mp4" {
		t.Fatalf("unexpected intros: %v", gotNames)
	}
}

func TestDefaultOutro(t *testing.T) {
	dir := t.TempDir()
	if got := DefaultOutro(dir); got != "" {
		t.Fatalf("expected no outro, got %q", got)
	}
	touch(t, dir, "mainoutro.mp4")
	want := filepath.Join(dir, "mainoutro.mp4")
	if got := DefaultOutro(dir); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSanitizeOutputName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"final", "final.mp4"},
		{"final.mp4", "final.mp4"},
		{"  final  ", "final.mp4"},
		{"", "final.mp4"},
		{"../escape", "escape.mp4"},
		{"/tmp/abs.mp4", "abs.mp4"},
		{"match.mkv", "match.mkv.mp4"},
	}
	for _, tc := range cases {
		if got := SanitizeOutputName(tc.input); got != tc.want {
			t.Fatalf("SanitizeOutputName(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
