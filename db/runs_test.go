package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenAt returned error: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestInsertAndListRuns(t *testing.T) {
	database := openTestDB(t)

	first := Run{
		Recording:    "recordings/clip.mp4",
		StartSeconds: 10,
		EndSeconds:   40,
		Intro:        "introandoutro/intro.mp4",
		Outro:        "introandoutro/mainoutro.mp4",
		Strategy:     "reencode",
		OutputPath:   "output/final.mp4",
		ElapsedMS:    9500,
		Status:       StatusSuccess,
	}
	if _, err := InsertRun(database, first); err != nil {
		t.Fatalf("InsertRun returned error: %v", err)
	}

	second := Run{
		Recording:    "recordings/clip.mp4",
		StartSeconds: 50,
		EndSeconds:   40,
		Strategy:     "streamcopy",
		OutputPath:   "output/broken.mp4",
		Status:       StatusFailed,
		Error:        "invalid interval",
	}
	if _, err := InsertRun(database, second); err != nil {
		t.Fatalf("InsertRun returned error: %v", err)
	}

	runs, err := ListRuns(database, 10)
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].Status != StatusFailed || runs[0].Error != "invalid interval" {
		t.Fatalf("unexpected newest run: %+v", runs[0])
	}
	if runs[1].Recording != "recordings/clip.mp4" || runs[1].ElapsedMS != 9500 {
		t.Fatalf("unexpected oldest run: %+v", runs[1])
	}
	if runs[1].Intro != "introandoutro/intro.mp4" {
		t.Fatalf("intro not round-tripped: %+v", runs[1])
	}
}

func TestListRunsHonorsLimit(t *testing.T) {
	database := openTestDB(t)
	for i := 0; i < 5; i++ {
		run := Run{Recording: "r.mp4", StartSeconds: 0, EndSeconds: 1, Strategy: "reencode", OutputPath: "o.mp4", Status: StatusSuccess}
		if _, err := InsertRun(database, run); err != nil {
			t.Fatalf("InsertRun returned error: %v", err)
		}
	}
	runs, err := ListRuns(database, 3)
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	database := openTestDB(t)
	if err := migrate(database); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}
