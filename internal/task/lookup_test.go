package task

import (
	"strings"
	"testing"

	"github.com/DucHai972/Questionnaire/internal/dataset"
	"github.com/DucHai972/Questionnaire/internal/encoding"
)

func TestReverseLookupTabular(t *testing.T) {
	ds := &dataset.Dataset{
		Name: "single",
		Catalog: dataset.NewCatalog([]dataset.Question{
			{ID: "Employment", Description: "Current employment status"},
		}),
		Records: []dataset.Record{
			dataset.NewRecord("", []string{"Employment"}, map[string]any{"Employment": "Remote"}),
		},
	}

	got, err := GenerateReverseLookup(testInputs(ds, encoding.JSON, 5))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Sentinel {
		t.Fatalf("unexpected sentinel task")
	}
	if got.Expected != "Question: Current employment status" {
		t.Fatalf("expected answer: %q", got.Expected)
	}
	if !strings.Contains(got.Prompt, "ANSWER REVERSE LOOKUP TASK") {
		t.Fatalf("prompt missing header: %q", got.Prompt)
	}
	if !strings.Contains(got.Prompt, "'Remote'") {
		t.Fatalf("prompt missing probed value: %q", got.Prompt)
	}
}

func TestReverseLookupFallsBackToFieldID(t *testing.T) {
	// A field absent from the catalog is asked about by its identifier.
	ds := singleRecordDataset([]string{"Q99"}, map[string]any{"Q99": "yes"})

	got, err := GenerateReverseLookup(testInputs(ds, encoding.JSON, 5))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Expected != "Question: Q99" {
		t.Fatalf("expected answer: %q", got.Expected)
	}
}

func TestReverseLookupNonTabular(t *testing.T) {
	got, err := GenerateReverseLookup(testInputs(soDataset(t), encoding.XML, 5))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !got.Sentinel {
		t.Fatalf("non-tabular should be a sentinel task")
	}
	if got.Expected != "Reverse lookup not fully implemented for xml" {
		t.Fatalf("expected answer: %q", got.Expected)
	}
}

func TestAnswerLookupTabular(t *testing.T) {
	ds := &dataset.Dataset{
		Name:    "single",
		Catalog: dataset.NewCatalog(nil),
		IDField: "ResponseId",
		Records: []dataset.Record{
			dataset.NewRecord("42", []string{"ResponseId", "Employment"}, map[string]any{
				"ResponseId": "42",
				"Employment": "Remote",
			}),
		},
	}

	got, err := GenerateAnswerLookup(testInputs(ds, encoding.JSON, 11))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Sentinel {
		t.Fatalf("unexpected sentinel task")
	}
	if !strings.Contains(got.Prompt, "For respondent 42") {
		t.Fatalf("prompt missing respondent id: %q", got.Prompt)
	}
	switch got.Expected {
	case "Answer: 42", "Answer: Remote":
	default:
		t.Fatalf("expected answer: %q", got.Expected)
	}
}

func TestAnswerLookupNonTabular(t *testing.T) {
	got, err := GenerateAnswerLookup(testInputs(soDataset(t), encoding.Text, 5))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !got.Sentinel || got.Expected != "Answer lookup not fully implemented for txt" {
		t.Fatalf("got %+v", got)
	}
}
