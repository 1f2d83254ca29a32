package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// RunRecord summarizes one finished run.
type RunRecord struct {
	ID           int64
	GameID       string
	Stage        int // 1-based stage reached
	StageName    string
	Score        int
	Shots        int
	Popped       int
	Won          bool
	Difficulty   string
	DurationSecs int
	CreatedAt    time.Time
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	won := 0
	if r.Won {
		won = 1
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (game_id, stage, stage_name, score, shots, popped, won, difficulty, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Stage, r.StageName, r.Score, r.Shots, r.Popped, won, r.Difficulty, r.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest runs for a game, newest first.
// An empty gameID returns runs of every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, stage, stage_name, score, shots, popped, won, difficulty, duration_secs, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var won int
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.GameID, &r.Stage, &r.StageName, &r.Score, &r.Shots,
			&r.Popped, &won, &r.Difficulty, &r.DurationSecs, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Won = won != 0
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestStage returns the furthest stage any run of the game reached, or 0.
func (s *Store) BestStage(gameID string) (int, error) {
	var stage sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(stage) FROM runs WHERE game_id = ?", gameID).Scan(&stage)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best stage: %w", err)
	}
	if !stage.Valid {
		return 0, nil
	}
	return int(stage.Int64), nil
}
