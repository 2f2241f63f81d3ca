package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"everywhere/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Schema creates the spaces table. Category scores are float8 so they reach
// the ranking model exactly as stored.
const Schema = `
CREATE TABLE IF NOT EXISTS spaces (
	id          BIGINT PRIMARY KEY,
	name        TEXT NOT NULL,
	latitude    DOUBLE PRECISION NOT NULL,
	longitude   DOUBLE PRECISION NOT NULL,
	capacity    INTEGER NOT NULL DEFAULT 0 CHECK (capacity >= 0),
	quiet_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	talk_score  DOUBLE PRECISION NOT NULL DEFAULT 0,
	study_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	rest_score  DOUBLE PRECISION NOT NULL DEFAULT 0,
	sort_order  INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// PostgresRepository reads candidate spaces from PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// spaceRow mirrors one row of the spaces table
type spaceRow struct {
	ID         int64   `db:"id"`
	Name       string  `db:"name"`
	Latitude   float64 `db:"latitude"`
	Longitude  float64 `db:"longitude"`
	Capacity   int     `db:"capacity"`
	QuietScore float64 `db:"quiet_score"`
	TalkScore  float64 `db:"talk_score"`
	StudyScore float64 `db:"study_score"`
	RestScore  float64 `db:"rest_score"`
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Migrate applies Schema
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ListCandidates returns all spaces ordered by sort_order then id.
// That order is what ties in the final ranking fall back to.
func (r *PostgresRepository) ListCandidates(ctx context.Context) ([]model.Space, error) {
	query := `
		SELECT id, name, latitude, longitude, capacity,
			quiet_score, talk_score, study_score, rest_score
		FROM spaces
		ORDER BY sort_order, id
	`
	var rows []spaceRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}

	spaces := make([]model.Space, 0, len(rows))
	for _, row := range rows {
		spaces = append(spaces, row.toSpace())
	}
	return spaces, nil
}

// UpsertSpaces inserts or updates spaces, keeping their slice position as sort order
func (r *PostgresRepository) UpsertSpaces(ctx context.Context, spaces []model.Space) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, strings.TrimSpace(`
		INSERT INTO spaces (id, name, latitude, longitude, capacity,
			quiet_score, talk_score, study_score, rest_score, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			capacity = EXCLUDED.capacity,
			quiet_score = EXCLUDED.quiet_score,
			talk_score = EXCLUDED.talk_score,
			study_score = EXCLUDED.study_score,
			rest_score = EXCLUDED.rest_score,
			sort_order = EXCLUDED.sort_order,
			updated_at = NOW()
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, s := range spaces {
		if _, err := stmt.ExecContext(ctx, s.ID, s.Name, s.Latitude, s.Longitude, s.Capacity,
			s.QuietScore, s.TalkScore, s.StudyScore, s.RestScore, i); err != nil {
			return fmt.Errorf("space %d: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (row spaceRow) toSpace() model.Space {
	return model.Space{
		ID:         row.ID,
		Name:       row.Name,
		Latitude:   row.Latitude,
		Longitude:  row.Longitude,
		Capacity:   row.Capacity,
		QuietScore: row.QuietScore,
		TalkScore:  row.TalkScore,
		StudyScore: row.StudyScore,
		RestScore:  row.RestScore,
	}
}
