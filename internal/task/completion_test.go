package task

import (
	"strings"
	"testing"

	"github.com/DucHai972/Questionnaire/internal/encoding"
)

func TestAnswerCompletion(t *testing.T) {
	ds := singleRecordDataset(
		[]string{"Employment", "EdLevel", "YearsCode"},
		map[string]any{
			"Employment": "Employed, full-time",
			"EdLevel":    "Bachelor's degree",
			"YearsCode":  "8",
		},
	)

	got, err := GenerateAnswerCompletion(testInputs(ds, encoding.JSON, 17))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Sentinel {
		t.Fatalf("unexpected sentinel task")
	}
	if !strings.Contains(got.Prompt, "ANSWER COMPLETION TASK") {
		t.Fatalf("prompt missing header: %q", got.Prompt)
	}

	// Recover the held-out field from the prompt and check that its value
	// is the ground truth while the field itself is absent from the shown
	// answers.
	start := strings.Index(got.Prompt, "Predict the answer to '")
	if start < 0 {
		t.Fatalf("prompt missing prediction line: %q", got.Prompt)
	}
	rest := got.Prompt[start+len("Predict the answer to '"):]
	target := rest[:strings.Index(rest, "'")]

	rec := ds.Records[0]
	if got.Expected != "Predicted answer: "+rec.AnswerString(target) {
		t.Fatalf("expected answer: %q for target %q", got.Expected, target)
	}

	shown := got.Prompt[:start]
	if strings.Contains(shown, `"`+target+`"`) {
		t.Fatalf("held-out field %q leaked into shown answers", target)
	}
}

func TestAnswerCompletionTooFewFields(t *testing.T) {
	ds := singleRecordDataset([]string{"only"}, map[string]any{"only": "x"})

	got, err := GenerateAnswerCompletion(testInputs(ds, encoding.JSON, 17))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !got.Sentinel || got.Expected != completionSentinel {
		t.Fatalf("want sentinel %q, got %+v", completionSentinel, got)
	}
}

func TestAnswerCompletionNonTabular(t *testing.T) {
	got, err := GenerateAnswerCompletion(testInputs(soDataset(t), encoding.Markdown, 5))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !got.Sentinel || got.Expected != "Answer completion not fully implemented for markdown" {
		t.Fatalf("got %+v", got)
	}
}
