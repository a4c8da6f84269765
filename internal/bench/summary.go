package bench

import (
	"sort"

	"github.com/DucHai972/Questionnaire/internal/encoding"
	"github.com/DucHai972/Questionnaire/internal/task"
)

// Summarize derives per-task and per-encoding statistics from a result
// list. It is a pure recomputation: the same results always yield the same
// summaries, and nothing is cached between calls.
func Summarize(results []ScoredResult) ([]TaskSummary, map[encoding.Encoding]float64, []encoding.Encoding) {
	type cell struct {
		sum float64
		n   int
	}

	byTaskEnc := make(map[task.Kind]map[encoding.Encoding]*cell)
	byEnc := make(map[encoding.Encoding]*cell)
	for _, r := range results {
		te := byTaskEnc[r.Task]
		if te == nil {
			te = make(map[encoding.Encoding]*cell)
			byTaskEnc[r.Task] = te
		}
		c := te[r.Encoding]
		if c == nil {
			c = &cell{}
			te[r.Encoding] = c
		}
		c.sum += r.Score
		c.n++

		e := byEnc[r.Encoding]
		if e == nil {
			e = &cell{}
			byEnc[r.Encoding] = e
		}
		e.sum += r.Score
		e.n++
	}

	var summaries []TaskSummary
	for _, kind := range task.Kinds() {
		te := byTaskEnc[kind]
		if te == nil {
			continue
		}

		ts := TaskSummary{
			Task:           kind,
			EncodingScores: make(map[encoding.Encoding]float64, len(te)),
		}
		sum := 0.0
		n := 0
		first := true
		for _, enc := range encoding.Canonical() {
			c := te[enc]
			if c == nil || c.n == 0 {
				continue
			}
			avg := c.sum / float64(c.n)
			ts.EncodingScores[enc] = avg
			sum += avg
			n++

			// Ties keep the first encoding in canonical order.
			if first {
				ts.Best, ts.Worst = enc, enc
				first = false
				continue
			}
			if avg > ts.EncodingScores[ts.Best] {
				ts.Best = enc
			}
			if avg < ts.EncodingScores[ts.Worst] {
				ts.Worst = enc
			}
		}
		if n > 0 {
			ts.Average = sum / float64(n)
		}
		summaries = append(summaries, ts)
	}

	averages := make(map[encoding.Encoding]float64, len(byEnc))
	var ranking []encoding.Encoding
	for _, enc := range encoding.Canonical() {
		c := byEnc[enc]
		if c == nil || c.n == 0 {
			continue
		}
		averages[enc] = c.sum / float64(c.n)
		ranking = append(ranking, enc)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return averages[ranking[i]] > averages[ranking[j]]
	})

	return summaries, averages, ranking
}
