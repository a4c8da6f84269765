package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/DucHai972/Questionnaire/internal/bench"
	"github.com/DucHai972/Questionnaire/internal/encoding"
	"github.com/DucHai972/Questionnaire/internal/task"
)

const defaultListLimit = 50

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	insertRunStmt    *sql.Stmt
	insertResultStmt *sql.Stmt
	getRunStmt       *sql.Stmt
	resultsByRunStmt *sql.Stmt
}

// NewSQLiteStore opens or creates a SQLite store at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: empty sqlite path")
	}
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("store: create sqlite dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise see its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}

	if err := initSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	st := &SQLiteStore{db: db}
	if err := st.prepareStatements(); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func initSQLiteSchema(db *sql.DB) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			dataset TEXT NOT NULL,
			provider TEXT NOT NULL,
			iterations INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL,
			task TEXT NOT NULL,
			encoding TEXT NOT NULL,
			iteration INTEGER NOT NULL,
			score REAL NOT NULL,
			expected TEXT NOT NULL,
			actual TEXT NOT NULL,
			prompt_excerpt TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			sentinel INTEGER NOT NULL,
			error TEXT NOT NULL,
			PRIMARY KEY (run_id, task, encoding, iteration),
			FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) prepareStatements() error {
	if s == nil || s.db == nil {
		return errors.New("store: nil sqlite store")
	}

	ctx := context.Background()
	type stmtSpec struct {
		dst    **sql.Stmt
		query  string
		errFmt string
	}

	specs := []stmtSpec{
		{
			dst: &s.insertRunStmt,
			query: `
				INSERT INTO runs (
					id, dataset, provider, iterations, started_at, finished_at
				) VALUES (?, ?, ?, ?, ?, ?)
			`,
			errFmt: "store: prepare insert run: %w",
		},
		{
			dst: &s.insertResultStmt,
			query: `
				INSERT INTO results (
					run_id, task, encoding, iteration, score, expected, actual,
					prompt_excerpt, duration_ms, sentinel, error
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
			errFmt: "store: prepare insert result: %w",
		},
		{
			dst: &s.getRunStmt,
			query: `
				SELECT id, dataset, provider, iterations, started_at, finished_at
				FROM runs WHERE id = ?
			`,
			errFmt: "store: prepare get run: %w",
		},
		{
			dst: &s.resultsByRunStmt,
			query: `
				SELECT task, encoding, iteration, score, expected, actual,
					prompt_excerpt, duration_ms, sentinel, error
				FROM results
				WHERE run_id = ?
				ORDER BY task ASC, encoding ASC, iteration ASC
			`,
			errFmt: "store: prepare get results: %w",
		},
	}

	for _, spec := range specs {
		stmt, err := s.db.PrepareContext(ctx, spec.query)
		if err != nil {
			return fmt.Errorf(spec.errFmt, err)
		}
		*spec.dst = stmt
	}

	return nil
}

// Close releases database resources.
func (s *SQLiteStore) Close() error {
	if s == nil {
		return nil
	}
	stmts := []*sql.Stmt{
		s.insertRunStmt,
		s.insertResultStmt,
		s.getRunStmt,
		s.resultsByRunStmt,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun persists a run summary and all of its scored cells in one
// transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *bench.RunSummary) error {
	if s == nil {
		return errors.New("store: nil sqlite store")
	}
	if ctx == nil {
		return errors.New("store: nil context")
	}
	if run == nil {
		return errors.New("store: nil run")
	}

	id := strings.TrimSpace(run.ID)
	if id == "" {
		return errors.New("store: empty run id")
	}
	if run.StartedAt.IsZero() || run.FinishedAt.IsZero() {
		return errors.New("store: missing run timestamps")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin run tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	runStmt := tx.StmtContext(ctx, s.insertRunStmt)
	defer runStmt.Close()

	_, err = runStmt.ExecContext(
		ctx,
		id,
		run.Dataset,
		run.Provider,
		run.Iterations,
		run.StartedAt.UTC().UnixMilli(),
		run.FinishedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("store: insert run: %w", err)
	}

	resultStmt := tx.StmtContext(ctx, s.insertResultStmt)
	defer resultStmt.Close()

	for _, r := range run.Results {
		_, err = resultStmt.ExecContext(
			ctx,
			id,
			string(r.Task),
			string(r.Encoding),
			r.Iteration,
			r.Score,
			r.Expected,
			r.Actual,
			r.PromptExcerpt,
			r.Duration.Milliseconds(),
			boolToInt(r.Sentinel),
			r.Err,
		)
		if err != nil {
			return fmt.Errorf("store: insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit run: %w", err)
	}
	return nil
}

// GetRun loads a run by id. The per-task and per-encoding summaries are
// recomputed from the stored cells rather than persisted.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*bench.RunSummary, error) {
	if s == nil {
		return nil, errors.New("store: nil sqlite store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("store: empty run id")
	}

	row := s.getRunStmt.QueryRowContext(ctx, id)
	var (
		runID        string
		dataset      string
		provider     string
		iterations   int
		startedAtMS  int64
		finishedAtMS int64
	)
	if err := row.Scan(&runID, &dataset, &provider, &iterations, &startedAtMS, &finishedAtMS); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("store: get run: %w", err)
	}

	results, err := s.resultsForRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	run := &bench.RunSummary{
		ID:         runID,
		Dataset:    dataset,
		Provider:   provider,
		Iterations: iterations,
		StartedAt:  time.UnixMilli(startedAtMS).UTC(),
		FinishedAt: time.UnixMilli(finishedAtMS).UTC(),
		Results:    results,
	}
	run.Tasks, run.EncodingAverages, run.Ranking = bench.Summarize(results)
	return run, nil
}

func (s *SQLiteStore) resultsForRun(ctx context.Context, runID string) ([]bench.ScoredResult, error) {
	rows, err := s.resultsByRunStmt.QueryContext(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("store: get results: %w", err)
	}
	defer rows.Close()

	var out []bench.ScoredResult
	for rows.Next() {
		var (
			taskName   string
			encName    string
			iteration  int
			score      float64
			expected   string
			actual     string
			excerpt    string
			durationMS int64
			sentinel   int
			errText    string
		)
		if err := rows.Scan(&taskName, &encName, &iteration, &score, &expected, &actual, &excerpt, &durationMS, &sentinel, &errText); err != nil {
			return nil, fmt.Errorf("store: scan result: %w", err)
		}
		out = append(out, bench.ScoredResult{
			Task:          task.Kind(taskName),
			Encoding:      encoding.Encoding(encName),
			Iteration:     iteration,
			Score:         score,
			Expected:      expected,
			Actual:        actual,
			PromptExcerpt: excerpt,
			Duration:      time.Duration(durationMS) * time.Millisecond,
			Sentinel:      sentinel != 0,
			Err:           errText,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: get results: %w", err)
	}
	return out, nil
}

// ListRuns returns run metadata matching the filter, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]*RunMeta, error) {
	if s == nil {
		return nil, errors.New("store: nil sqlite store")
	}
	if ctx == nil {
		return nil, errors.New("store: nil context")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var sb strings.Builder
	sb.WriteString(`SELECT r.id, r.dataset, r.provider, r.iterations, r.started_at, r.finished_at,
		COUNT(res.run_id), COALESCE(AVG(res.score), 0)
		FROM runs r LEFT JOIN results res ON res.run_id = r.id
		WHERE 1=1`)

	var args []any
	if d := strings.TrimSpace(filter.Dataset); d != "" {
		sb.WriteString(` AND r.dataset = ?`)
		args = append(args, d)
	}
	if p := strings.TrimSpace(filter.Provider); p != "" {
		sb.WriteString(` AND r.provider = ?`)
		args = append(args, p)
	}
	if !filter.Since.IsZero() {
		sb.WriteString(` AND r.started_at >= ?`)
		args = append(args, filter.Since.UTC().UnixMilli())
	}
	if !filter.Until.IsZero() {
		sb.WriteString(` AND r.started_at <= ?`)
		args = append(args, filter.Until.UTC().UnixMilli())
	}
	sb.WriteString(` GROUP BY r.id ORDER BY r.started_at DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var out []*RunMeta
	for rows.Next() {
		var (
			meta         RunMeta
			startedAtMS  int64
			finishedAtMS int64
		)
		if err := rows.Scan(&meta.ID, &meta.Dataset, &meta.Provider, &meta.Iterations, &startedAtMS, &finishedAtMS, &meta.Cells, &meta.AvgScore); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		meta.StartedAt = time.UnixMilli(startedAtMS).UTC()
		meta.FinishedAt = time.UnixMilli(finishedAtMS).UTC()
		out = append(out, &meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
