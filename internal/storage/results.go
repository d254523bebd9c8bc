package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LevelResult is one cleared level.
type LevelResult struct {
	ID        string // UUID assigned on save
	GameID    string
	LevelID   string
	Player    string // SSH user, empty for local play
	Moves     int
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveLevelResult records a cleared level and returns its generated ID.
func (s *Store) SaveLevelResult(r LevelResult) (string, error) {
	if r.GameID == "" || r.LevelID == "" {
		return "", fmt.Errorf("storage: level result needs game and level IDs")
	}

	id := uuid.NewString()
	created := r.CreatedAt
	if created.IsZero() {
		created = s.now()
	}

	_, err := s.db.Exec(
		`INSERT INTO level_results (id, game_id, level_id, player, moves, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, r.GameID, r.LevelID, r.Player, r.Moves, r.Duration.Milliseconds(), created.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save level result: %w", err)
	}
	return id, nil
}

// BestLevelResult returns the result with the fewest moves (then shortest
// duration) for a level, or nil if the level was never cleared.
func (s *Store) BestLevelResult(gameID, levelID string) (*LevelResult, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, level_id, player, moves, duration_ms, created_at
		 FROM level_results
		 WHERE game_id = ? AND level_id = ?
		 ORDER BY moves ASC, duration_ms ASC
		 LIMIT 1`,
		gameID, levelID,
	)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best result: %w", err)
	}
	return &r, nil
}

// LevelResults lists results for a level, best first.
func (s *Store) LevelResults(gameID, levelID string, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level_id, player, moves, duration_ms, created_at
		 FROM level_results
		 WHERE game_id = ? AND level_id = ?
		 ORDER BY moves ASC, duration_ms ASC
		 LIMIT ?`,
		gameID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// BestMoves maps each cleared level of a game to its fewest moves.
func (s *Store) BestMoves(gameID string) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MIN(moves) FROM level_results WHERE game_id = ? GROUP BY level_id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best moves: %w", err)
	}
	defer rows.Close()

	best := make(map[string]int)
	for rows.Next() {
		var level string
		var moves int
		if err := rows.Scan(&level, &moves); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best[level] = moves
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (LevelResult, error) {
	var r LevelResult
	var durationMS int64
	var createdAt any
	if err := row.Scan(&r.ID, &r.GameID, &r.LevelID, &r.Player, &r.Moves, &durationMS, &createdAt); err != nil {
		return LevelResult{}, err
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}
