package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DucHai972/Questionnaire/internal/bench"
	"github.com/DucHai972/Questionnaire/internal/encoding"
)

// RenderMarkdown builds the human-readable benchmark report for a run.
func RenderMarkdown(run *bench.RunSummary) (string, error) {
	if run == nil {
		return "", errors.New("report: nil run")
	}

	var sb strings.Builder
	sb.WriteString("# LLM Format Comprehension Benchmark Report\n\n")

	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString("This benchmark evaluates how effectively a language model comprehends and processes different data representation formats across six cognitive reasoning tasks.\n\n")
	fmt.Fprintf(&sb, "**Dataset**: %s  \n", strings.ToUpper(run.Dataset))
	fmt.Fprintf(&sb, "**Provider**: %s  \n", run.Provider)
	fmt.Fprintf(&sb, "**Total Tests**: %d  \n", len(run.Results))
	fmt.Fprintf(&sb, "**Tasks**: %d benchmark tasks  \n", len(run.Tasks))
	fmt.Fprintf(&sb, "**Formats**: %s  \n\n", formatList(run))

	sb.WriteString("## Overall Format Rankings\n\n")
	for i, enc := range run.Ranking {
		fmt.Fprintf(&sb, "%d. **%s**: %.3f\n", i+1, strings.ToUpper(string(enc)), run.EncodingAverages[enc])
	}
	sb.WriteString("\n")

	if len(run.Ranking) > 1 {
		best := run.Ranking[0]
		worst := run.Ranking[len(run.Ranking)-1]
		sb.WriteString("### Key Performance Insights\n\n")
		fmt.Fprintf(&sb, "- **Best Format**: %s achieved %.1f%% average accuracy\n",
			strings.ToUpper(string(best)), run.EncodingAverages[best]*100)
		fmt.Fprintf(&sb, "- **Worst Format**: %s achieved %.1f%% average accuracy\n",
			strings.ToUpper(string(worst)), run.EncodingAverages[worst]*100)
		fmt.Fprintf(&sb, "- **Performance Gap**: %.1f%% difference between best and worst\n\n",
			(run.EncodingAverages[best]-run.EncodingAverages[worst])*100)
	}

	sorted := sortedTasks(run.Tasks)

	sb.WriteString("## Task-by-Task Analysis\n\n")
	for _, ts := range sorted {
		fmt.Fprintf(&sb, "### %s - Average: %.3f\n\n", ts.Task.Title(), ts.Average)
		sb.WriteString("| Rank | Format | Score | Performance |\n")
		sb.WriteString("|------|--------|-------|-------------|\n")
		for i, enc := range rankEncodings(ts) {
			score := ts.EncodingScores[enc]
			fmt.Fprintf(&sb, "| %d | %s | %.3f | %s |\n", i+1, strings.ToUpper(string(enc)), score, performanceLabel(score))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Task Difficulty Ranking\n\n")
	for i, ts := range sorted {
		fmt.Fprintf(&sb, "%d. **%s**: %.3f (%s)\n", i+1, ts.Task.Title(), ts.Average, difficultyLabel(ts.Average))
	}
	sb.WriteString("\n")

	sb.WriteString("## Raw Data Summary\n\n")
	fmt.Fprintf(&sb, "- **Total Benchmark Tests**: %d\n", len(run.Results))
	fmt.Fprintf(&sb, "- **Successful Completions**: %d\n", countScored(run.Results))
	if len(run.Results) > 0 {
		hi, lo := scoreExtremes(run.Results)
		fmt.Fprintf(&sb, "- **Average Execution Time**: %.3fs per test\n", avgDuration(run.Results))
		fmt.Fprintf(&sb, "- **Highest Individual Score**: %.3f\n", hi)
		fmt.Fprintf(&sb, "- **Lowest Individual Score**: %.3f\n", lo)
	}
	sb.WriteString("\n---\n*Report generated by the format comprehension benchmark*\n")

	return sb.String(), nil
}

// WriteFiles saves the markdown report and the detailed JSON results next
// to each other. It returns the two paths written.
func WriteFiles(run *bench.RunSummary, dir, base string) (string, string, error) {
	if run == nil {
		return "", "", errors.New("report: nil run")
	}
	if strings.TrimSpace(base) == "" {
		base = fmt.Sprintf("llm_benchmark_%s", run.Dataset)
	}
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", "", fmt.Errorf("report: create dir: %w", err)
		}
	}

	md, err := RenderMarkdown(run)
	if err != nil {
		return "", "", err
	}
	mdPath := filepath.Join(dir, base+"_report.md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", "", fmt.Errorf("report: write markdown: %w", err)
	}

	detail, err := json.MarshalIndent(detailedResults(run), "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("report: marshal detailed results: %w", err)
	}
	jsonPath := filepath.Join(dir, base+"_detailed.json")
	if err := os.WriteFile(jsonPath, detail, 0o644); err != nil {
		return "", "", fmt.Errorf("report: write detailed results: %w", err)
	}

	return mdPath, jsonPath, nil
}

type detailedReport struct {
	Metadata        reportMetadata   `json:"metadata"`
	TaskSummaries   []taskSummaryRow `json:"task_summaries"`
	DetailedResults []resultRow      `json:"detailed_results"`
}

type reportMetadata struct {
	RunID      string `json:"run_id"`
	Dataset    string `json:"dataset"`
	Provider   string `json:"provider"`
	Iterations int    `json:"iterations"`
	TotalTests int    `json:"total_tests"`
	Timestamp  string `json:"timestamp"`
}

type taskSummaryRow struct {
	TaskName     string             `json:"task_name"`
	AverageScore float64            `json:"average_score"`
	FormatScores map[string]float64 `json:"format_scores"`
	BestFormat   string             `json:"best_format"`
	WorstFormat  string             `json:"worst_format"`
}

type resultRow struct {
	Task          string  `json:"task"`
	Format        string  `json:"format"`
	Iteration     int     `json:"iteration"`
	Score         float64 `json:"score"`
	Expected      string  `json:"expected_answer"`
	Response      string  `json:"llm_response"`
	PromptPreview string  `json:"prompt_preview"`
	ExecutionSecs float64 `json:"execution_time"`
	Error         string  `json:"error,omitempty"`
}

func detailedResults(run *bench.RunSummary) detailedReport {
	out := detailedReport{
		Metadata: reportMetadata{
			RunID:      run.ID,
			Dataset:    run.Dataset,
			Provider:   run.Provider,
			Iterations: run.Iterations,
			TotalTests: len(run.Results),
			Timestamp:  run.FinishedAt.UTC().Format("2006-01-02 15:04:05"),
		},
	}
	for _, ts := range run.Tasks {
		row := taskSummaryRow{
			TaskName:     ts.Task.Title(),
			AverageScore: ts.Average,
			FormatScores: make(map[string]float64, len(ts.EncodingScores)),
			BestFormat:   string(ts.Best),
			WorstFormat:  string(ts.Worst),
		}
		for enc, score := range ts.EncodingScores {
			row.FormatScores[string(enc)] = score
		}
		out.TaskSummaries = append(out.TaskSummaries, row)
	}
	for _, r := range run.Results {
		out.DetailedResults = append(out.DetailedResults, resultRow{
			Task:          string(r.Task),
			Format:        string(r.Encoding),
			Iteration:     r.Iteration,
			Score:         r.Score,
			Expected:      r.Expected,
			Response:      r.Actual,
			PromptPreview: r.PromptExcerpt,
			ExecutionSecs: r.Duration.Seconds(),
			Error:         r.Err,
		})
	}
	return out
}

func sortedTasks(tasks []bench.TaskSummary) []bench.TaskSummary {
	out := make([]bench.TaskSummary, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Average > out[j].Average
	})
	return out
}

func rankEncodings(ts bench.TaskSummary) []encoding.Encoding {
	var out []encoding.Encoding
	for enc := range ts.EncodingScores {
		out = append(out, enc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ts.EncodingScores[out[i]] != ts.EncodingScores[out[j]] {
			return ts.EncodingScores[out[i]] > ts.EncodingScores[out[j]]
		}
		return string(out[i]) < string(out[j])
	})
	return out
}

func formatList(run *bench.RunSummary) string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range run.Results {
		name := strings.ToUpper(string(r.Encoding))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func performanceLabel(score float64) string {
	switch {
	case score > 0.8:
		return "Excellent"
	case score > 0.6:
		return "Good"
	case score > 0.4:
		return "Fair"
	default:
		return "Poor"
	}
}

func difficultyLabel(avg float64) string {
	switch {
	case avg > 0.8:
		return "Easy"
	case avg > 0.6:
		return "Medium"
	case avg > 0.4:
		return "Hard"
	default:
		return "Very Hard"
	}
}

func countScored(results []bench.ScoredResult) int {
	n := 0
	for _, r := range results {
		if r.Score > 0 {
			n++
		}
	}
	return n
}

func avgDuration(results []bench.ScoredResult) float64 {
	total := 0.0
	for _, r := range results {
		total += r.Duration.Seconds()
	}
	return total / float64(len(results))
}

func scoreExtremes(results []bench.ScoredResult) (hi, lo float64) {
	hi, lo = results[0].Score, results[0].Score
	for _, r := range results[1:] {
		if r.Score > hi {
			hi = r.Score
		}
		if r.Score < lo {
			lo = r.Score
		}
	}
	return hi, lo
}
