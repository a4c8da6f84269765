package bench

import (
	"time"

	"github.com/DucHai972/Questionnaire/internal/encoding"
	"github.com/DucHai972/Questionnaire/internal/task"
)

// ScoredResult is the outcome of one (task, encoding, iteration) cell.
// Results are append-only for the lifetime of a run and never mutated.
type ScoredResult struct {
	Task          task.Kind
	Encoding      encoding.Encoding
	Iteration     int
	Score         float64
	Expected      string
	Actual        string
	PromptExcerpt string
	Duration      time.Duration
	Sentinel      bool
	Err           string
}

// TaskSummary aggregates one task kind across all encodings.
type TaskSummary struct {
	Task           task.Kind
	EncodingScores map[encoding.Encoding]float64
	Average        float64
	Best           encoding.Encoding
	Worst          encoding.Encoding
}

// RunSummary is the full outcome of a benchmark run: every scored cell
// plus the derived per-task and per-encoding statistics.
type RunSummary struct {
	ID         string
	Dataset    string
	Provider   string
	Iterations int
	StartedAt  time.Time
	FinishedAt time.Time

	Results []ScoredResult

	Tasks            []TaskSummary
	EncodingAverages map[encoding.Encoding]float64
	// Ranking orders encodings by descending average score; ties keep
	// the canonical encoding order.
	Ranking []encoding.Encoding
}
