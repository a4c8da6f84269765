package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/DucHai972/Questionnaire/internal/dataset"
	"github.com/DucHai972/Questionnaire/internal/encoding"
	"github.com/DucHai972/Questionnaire/internal/llm"
	"github.com/DucHai972/Questionnaire/internal/scoring"
	"github.com/DucHai972/Questionnaire/internal/task"
)

const promptExcerptLimit = 300

// Runner drives the full task x encoding x iteration matrix for one
// dataset. It owns the only mutable state of a run: the append-only result
// list and the running statistics derived from it.
type Runner struct {
	Registry   *dataset.Registry
	Encoded    *encoding.Accessor
	Provider   llm.Provider
	Iterations int
	Seed       int64

	// OnResult, when set, observes each scored cell as it completes.
	OnResult func(ScoredResult)
}

// Run executes the benchmark for one dataset and returns the full summary.
// Only a dataset that cannot be loaded at all is fatal; every other
// failure is confined to its own cell as a zero-scored result.
func (r *Runner) Run(ctx context.Context, datasetName string, iterations int) (*RunSummary, error) {
	if r == nil {
		return nil, errors.New("bench: nil runner")
	}
	if ctx == nil {
		return nil, errors.New("bench: nil context")
	}
	if r.Registry == nil {
		return nil, errors.New("bench: nil dataset registry")
	}
	if r.Provider == nil {
		return nil, errors.New("bench: nil provider")
	}

	if iterations <= 0 {
		iterations = r.Iterations
	}
	if iterations <= 0 {
		iterations = 2
	}

	ds, err := r.Registry.Load(datasetName)
	if err != nil {
		return nil, err
	}

	rendered := func(enc encoding.Encoding) (string, bool) {
		if r.Encoded == nil {
			return "", false
		}
		return r.Encoded.Rendered(ds.Dir, ds.Base, enc)
	}

	out := &RunSummary{
		ID:         uuid.NewString(),
		Dataset:    ds.Name,
		Provider:   r.Provider.Name(),
		Iterations: iterations,
		StartedAt:  time.Now().UTC(),
	}

	generators := task.Generators()
	encodings := encoding.Canonical()

	for ti, gen := range generators {
		for ei, enc := range encodings {
			for iter := 0; iter < iterations; iter++ {
				if err := ctx.Err(); err != nil {
					out.FinishedAt = time.Now().UTC()
					out.Tasks, out.EncodingAverages, out.Ranking = Summarize(out.Results)
					return out, err
				}

				res := r.runCell(ctx, ds, gen, enc, iter, cellSeed(r.Seed, ti, ei, iter), rendered)
				out.Results = append(out.Results, res)
				if r.OnResult != nil {
					r.OnResult(res)
				}
			}
		}
	}

	out.FinishedAt = time.Now().UTC()
	out.Tasks, out.EncodingAverages, out.Ranking = Summarize(out.Results)
	return out, nil
}

// cellSeed derives an independent seed per matrix cell so cells stay
// reproducible regardless of evaluation order.
func cellSeed(base int64, taskIdx, encIdx, iter int) int64 {
	return base + int64(taskIdx)*1_000_003 + int64(encIdx)*10_007 + int64(iter)*101
}

func (r *Runner) runCell(
	ctx context.Context,
	ds *dataset.Dataset,
	gen task.Generator,
	enc encoding.Encoding,
	iter int,
	seed int64,
	rendered func(encoding.Encoding) (string, bool),
) ScoredResult {
	start := time.Now()
	res := ScoredResult{
		Task:      gen.Kind,
		Encoding:  enc,
		Iteration: iter,
	}

	t, err := generate(gen, task.Inputs{
		Dataset:  ds,
		Encoding: enc,
		Rendered: rendered,
		Rand:     rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		res.Err = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	res.Expected = t.Expected
	res.Sentinel = t.Sentinel
	res.PromptExcerpt = excerpt(t.Prompt)

	actual, err := answer(ctx, r.Provider, t)
	if err != nil {
		res.Err = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	res.Actual = actual
	res.Score = scoring.Score(t.Kind, t.Expected, actual)
	res.Duration = time.Since(start)
	return res
}

// generate shields the run from a misbehaving generator: a panic in one
// cell becomes that cell's error instead of aborting the matrix.
func generate(gen task.Generator, in task.Inputs) (t *task.Task, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			t = nil
			err = fmt.Errorf("bench: generator %s panicked: %v", gen.Kind, rec)
		}
	}()

	t, err = gen.Generate(in)
	if err == nil && t == nil {
		err = fmt.Errorf("bench: generator %s returned no task", gen.Kind)
	}
	return t, err
}

func answer(ctx context.Context, provider llm.Provider, t *task.Task) (string, error) {
	if ta, ok := provider.(llm.TaskAnswerer); ok {
		return ta.AnswerTask(ctx, string(t.Kind), string(t.Encoding), t.Expected, t.Prompt)
	}
	return provider.Answer(ctx, t.Prompt)
}

func excerpt(prompt string) string {
	if len(prompt) <= promptExcerptLimit {
		return prompt
	}
	return prompt[:promptExcerptLimit] + "..."
}
