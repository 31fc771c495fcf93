// Package archive records finished games in SQL. Results are write-once
// history; nothing stored here is ever loaded back into a live session.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultListLimit = 20
	MaxListLimit     = 100
)

// PoolOptions tunes the connection pool. Zero values keep database/sql defaults.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the archive database, pings it and applies pending
// migrations.
func Open(ctx context.Context, driver, dsn string, pool PoolOptions) (*Store, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("archive: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// A single connection keeps in-memory databases shared and avoids
		// SQLITE_BUSY between writers.
		db.SetMaxOpenConns(1)
	} else {
		if pool.MaxOpenConns > 0 {
			db.SetMaxOpenConns(pool.MaxOpenConns)
		}
		if pool.MaxIdleConns > 0 {
			db.SetMaxIdleConns(pool.MaxIdleConns)
		}
		if pool.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(pool.ConnMaxLifetime)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: unable to connect to database: %w", err)
	}

	if err := applyMigrations(ctx, db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: migrate: %w", err)
	}

	log.Printf("[ARCHIVE] Connected to %s archive", driver)
	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveResult inserts a finished game, replacing any earlier record with the
// same game ID.
func (s *Store) SaveResult(ctx context.Context, result domain.GameResult) error {
	boardJSON, err := json.Marshal(result.Board)
	if err != nil {
		return fmt.Errorf("archive: marshal board state: %w", err)
	}

	query := s.rebind(`
	INSERT INTO game_results (game_id, player1_color, player2_color, board_height, board_width, winner_color, status, total_moves, duration_seconds, created_at, finished_at, board_state)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (game_id) DO UPDATE SET
		winner_color = excluded.winner_color,
		status = excluded.status,
		total_moves = excluded.total_moves,
		duration_seconds = excluded.duration_seconds,
		finished_at = excluded.finished_at,
		board_state = excluded.board_state`)

	_, err = s.db.ExecContext(ctx, query,
		result.GameID,
		result.Player1Color,
		result.Player2Color,
		result.Height,
		result.Width,
		result.WinnerColor,
		string(result.Status),
		result.TotalMoves,
		result.DurationSeconds(),
		result.CreatedAt.UTC(),
		result.FinishedAt.UTC(),
		string(boardJSON),
	)
	if err != nil {
		return fmt.Errorf("archive: save result: %w", err)
	}
	return nil
}

// GetResult returns the archived result for gameID or domain.ErrGameNotFound.
func (s *Store) GetResult(ctx context.Context, gameID string) (*domain.GameResult, error) {
	query := s.rebind(`
	SELECT game_id, player1_color, player2_color, board_height, board_width, winner_color, status, total_moves, created_at, finished_at, board_state
	FROM game_results
	WHERE game_id = ?`)

	result, err := scanResult(s.db.QueryRowContext(ctx, query, gameID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("archive: get result: %w", err)
	}
	return result, nil
}

// ListRecent returns the most recently finished games, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]domain.GameResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := s.rebind(`
	SELECT game_id, player1_color, player2_color, board_height, board_width, winner_color, status, total_moves, created_at, finished_at, board_state
	FROM game_results
	ORDER BY finished_at DESC
	LIMIT ?`)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("archive: list results: %w", err)
	}
	defer rows.Close()

	results := make([]domain.GameResult, 0, limit)
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("archive: scan result: %w", err)
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive: list results: %w", err)
	}

	return results, nil
}

// DeleteOlderThan removes results that finished more than age ago and
// returns how many rows were deleted.
func (s *Store) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age)

	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM game_results WHERE finished_at < ?"), cutoff)
	if err != nil {
		return 0, fmt.Errorf("archive: delete old results: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("archive: delete old results: %w", err)
	}
	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*domain.GameResult, error) {
	var (
		result    domain.GameResult
		status    string
		boardJSON string
	)

	err := row.Scan(
		&result.GameID,
		&result.Player1Color,
		&result.Player2Color,
		&result.Height,
		&result.Width,
		&result.WinnerColor,
		&status,
		&result.TotalMoves,
		&result.CreatedAt,
		&result.FinishedAt,
		&boardJSON,
	)
	if err != nil {
		return nil, err
	}

	result.Status = domain.GameStatus(status)
	if err := json.Unmarshal([]byte(boardJSON), &result.Board); err != nil {
		return nil, fmt.Errorf("unmarshal board state: %w", err)
	}

	return &result, nil
}

func (s *Store) rebind(query string) string {
	return rebind(s.driver, query)
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
