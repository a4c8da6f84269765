package task

import (
	"strings"
	"testing"

	"github.com/DucHai972/Questionnaire/internal/dataset"
	"github.com/DucHai972/Questionnaire/internal/encoding"
)

func chainDataset(match func(dataset.Record) bool, records ...dataset.Record) *dataset.Dataset {
	return &dataset.Dataset{
		Name:    "chain",
		Catalog: dataset.NewCatalog(nil),
		IDField: "id",
		Records: records,
		Chain: dataset.ChainSpec{
			Headline: "Find all respondents matching both criteria",
			Match:    match,
		},
	}
}

func chainRecord(id, status string) dataset.Record {
	return dataset.NewRecord(id, []string{"id", "status"}, map[string]any{
		"id":     id,
		"status": status,
	})
}

func TestKnowledgeChainMatching(t *testing.T) {
	ds := chainDataset(
		func(rec dataset.Record) bool { return rec.AnswerString("status") == "yes" },
		chainRecord("R1", "yes"),
		chainRecord("R2", "no"),
		chainRecord("R3", "yes"),
		chainRecord("R4", "no"),
	)

	got, err := GenerateKnowledgeChain(testInputs(ds, encoding.JSON, 13))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Sentinel {
		t.Fatalf("unexpected sentinel task")
	}
	if !strings.HasPrefix(got.Expected, "Matching respondents: ") {
		t.Fatalf("expected answer: %q", got.Expected)
	}
	for _, id := range []string{"R1", "R3"} {
		if !strings.Contains(got.Expected, id) {
			t.Fatalf("expected answer missing %s: %q", id, got.Expected)
		}
	}
	for _, id := range []string{"R2", "R4"} {
		if strings.Contains(got.Expected, id) {
			t.Fatalf("non-matching %s listed: %q", id, got.Expected)
		}
	}
	if !strings.Contains(got.Prompt, "MULTI-HOP REASONING TASK") {
		t.Fatalf("prompt missing header: %q", got.Prompt)
	}
	if !strings.Contains(got.Prompt, ds.Chain.Headline) {
		t.Fatalf("prompt missing headline: %q", got.Prompt)
	}
}

func TestKnowledgeChainNoneMatched(t *testing.T) {
	ds := chainDataset(
		func(dataset.Record) bool { return false },
		chainRecord("R1", "no"),
		chainRecord("R2", "no"),
	)

	got, err := GenerateKnowledgeChain(testInputs(ds, encoding.JSON, 13))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Expected != chainNoneMatched {
		t.Fatalf("expected answer: %q want %q", got.Expected, chainNoneMatched)
	}
}

func TestKnowledgeChainNonTabular(t *testing.T) {
	got, err := GenerateKnowledgeChain(testInputs(soDataset(t), encoding.HTML, 5))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !got.Sentinel || got.Expected != "Knowledge chain reasoning not fully implemented for html" {
		t.Fatalf("got %+v", got)
	}
}
