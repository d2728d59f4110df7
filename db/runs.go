package db

import "database/sql"

// InsertRun records one assembly run and returns its row ID.
func InsertRun(database *sql.DB, run Run) (int64, error) {
	result, err := database.Exec(`
		INSERT INTO runs (recording, start_seconds, end_seconds, intro, outro, strategy, output_path, elapsed_ms, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Recording, run.StartSeconds, run.EndSeconds, run.Intro, run.Outro,
		run.Strategy, run.OutputPath, run.ElapsedMS, run.Status, run.Error,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListRuns returns the most recent runs, newest first.
func ListRuns(database *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := database.Query(`
		SELECT id, created_at, recording, start_seconds, end_seconds,
		       COALESCE(intro, ''), COALESCE(outro, ''), strategy, output_path,
		       COALESCE(elapsed_ms, 0), status, COALESCE(error, '')
		FROM runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.CreatedAt, &run.Recording, &run.StartSeconds, &run.EndSeconds,
			&run.Intro, &run.Outro, &run.Strategy, &run.OutputPath,
			&run.ElapsedMS, &run.Status, &run.Error,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
