package store

import (
	"context"
	"time"

	"github.com/DucHai972/Questionnaire/internal/bench"
)

// RunWriter defines persistence for benchmark run summaries.
type RunWriter interface {
	SaveRun(ctx context.Context, run *bench.RunSummary) error
}

// RunReader defines read access to stored runs.
type RunReader interface {
	GetRun(ctx context.Context, id string) (*bench.RunSummary, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*RunMeta, error)
}

// Store defines persistence for benchmark runs.
type Store interface {
	RunWriter
	RunReader
	Close() error
}

// RunMeta is the listing view of a stored run: identity and headline
// numbers without the per-cell results.
type RunMeta struct {
	ID         string
	Dataset    string
	Provider   string
	Iterations int
	StartedAt  time.Time
	FinishedAt time.Time
	Cells      int
	AvgScore   float64
}

// RunFilter filters run listings.
type RunFilter struct {
	Dataset  string
	Provider string
	Since    time.Time
	Until    time.Time
	Limit    int
}
