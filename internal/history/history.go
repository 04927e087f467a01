// Package history persists one record per completed analysis and serves the
// history and stats queries.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/jonesrussell/credibility/internal/domain"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum connection lifetime
	DefaultConnMaxLifetime = 5 * time.Minute

	defaultListLimit = 50
	maxListLimit     = 500
)

// Record is one persisted analysis.
type Record struct {
	ID               int64     `db:"id"                 json:"id"`
	Input            string    `db:"input"              json:"input"` // "text" or "url"
	Source           string    `db:"source"             json:"source,omitempty"`
	Label            string    `db:"label"              json:"label"`
	Confidence       float64   `db:"confidence"         json:"confidence"`
	CredibilityScore float64   `db:"credibility_score"  json:"credibility_score"`
	ModelScore       float64   `db:"model_score"        json:"model_score"`
	FactCheckScore   float64   `db:"factcheck_score"    json:"factcheck_score"`
	SourceScore      float64   `db:"source_score"       json:"source_score"`
	Sentences        int       `db:"sentences"          json:"sentences"`
	ProcessingTimeMs int64     `db:"processing_time_ms" json:"processing_time_ms"`
	AnalyzedAt       time.Time `db:"analyzed_at"        json:"analyzed_at"`
}

// Stats summarizes the stored analyses.
type Stats struct {
	TotalAnalyses       int            `json:"total_analyses"`
	AvgCredibilityScore float64        `json:"avg_credibility_score"`
	AvgProcessingTimeMs float64        `json:"avg_processing_time_ms"`
	Labels              map[string]int `json:"labels"`
}

// Repository stores analysis records. It works against sqlite3 or postgres;
// queries are written with ? placeholders and rebound per driver.
type Repository struct {
	db *sqlx.DB
}

// Open connects to the history database and ensures the schema exists.
// driver is "sqlite3" or "postgres".
func Open(driver, dsn string) (*Repository, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	r := &Repository{db: db}
	if err := r.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// NewRepository wraps an existing connection. The schema must already exist.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ensureSchema() error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if r.db.DriverName() == "postgres" {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}

	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS analyses (
			%s,
			input TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			label TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			credibility_score DOUBLE PRECISION NOT NULL,
			model_score DOUBLE PRECISION NOT NULL,
			factcheck_score DOUBLE PRECISION NOT NULL,
			source_score DOUBLE PRECISION NOT NULL,
			sentences INTEGER NOT NULL,
			processing_time_ms BIGINT NOT NULL,
			analyzed_at TIMESTAMP NOT NULL
		)`, idColumn)

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Insert stores an analysis record.
func (r *Repository) Insert(ctx context.Context, a *domain.Analysis, input string) error {
	query := r.db.Rebind(`
		INSERT INTO analyses (
			input, source, label, confidence, credibility_score,
			model_score, factcheck_score, source_score,
			sentences, processing_time_ms, analyzed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		input,
		a.Source,
		string(a.Label),
		a.ModelConfidence,
		a.CredibilityScore,
		a.Breakdown.ModelScore,
		a.Breakdown.FactCheckScore,
		a.Breakdown.SourceScore,
		a.SentencesAnalyzed,
		a.ProcessingTimeMs,
		a.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first. limit <= 0 uses the
// default; limits above the cap are clamped.
func (r *Repository) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := r.db.Rebind(`
		SELECT id, input, source, label, confidence, credibility_score,
		       model_score, factcheck_score, source_score,
		       sentences, processing_time_ms, analyzed_at
		FROM analyses
		ORDER BY analyzed_at DESC, id DESC
		LIMIT ?`)

	records := []Record{}
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return records, nil
}

// Stats aggregates the stored analyses.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Labels: map[string]int{}}

	summary := struct {
		Total   int     `db:"total"`
		AvgCred float64 `db:"avg_cred"`
		AvgTime float64 `db:"avg_time"`
	}{}
	err := r.db.GetContext(ctx, &summary, `
		SELECT COUNT(*) AS total,
		       COALESCE(AVG(credibility_score), 0) AS avg_cred,
		       COALESCE(AVG(processing_time_ms), 0) AS avg_time
		FROM analyses`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate analyses: %w", err)
	}
	stats.TotalAnalyses = summary.Total
	stats.AvgCredibilityScore = summary.AvgCred
	stats.AvgProcessingTimeMs = summary.AvgTime

	rows, err := r.db.QueryxContext(ctx, `
		SELECT label, COUNT(*) AS count
		FROM analyses
		GROUP BY label`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		var count int
		if scanErr := rows.Scan(&label, &count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan label count: %w", scanErr)
		}
		stats.Labels[label] = count
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to read label counts: %w", rowsErr)
	}

	return stats, nil
}

// Ping verifies the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the underlying connection.
func (r *Repository) Close() error {
	return r.db.Close()
}
