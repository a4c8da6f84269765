package task

import (
	"math/rand"
	"testing"

	"github.com/DucHai972/Questionnaire/internal/dataset"
	"github.com/DucHai972/Questionnaire/internal/encoding"
)

func testInputs(ds *dataset.Dataset, enc encoding.Encoding, seed int64) Inputs {
	return Inputs{
		Dataset:  ds,
		Encoding: enc,
		Rand:     rand.New(rand.NewSource(seed)),
	}
}

func soDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.NewRegistry(t.TempDir()).Load("stack_overflow")
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	return ds
}

func singleRecordDataset(fields []string, answers map[string]any) *dataset.Dataset {
	return &dataset.Dataset{
		Name:    "single",
		Catalog: dataset.NewCatalog(nil),
		Records: []dataset.Record{dataset.NewRecord("", fields, answers)},
	}
}

func TestKindsOrder(t *testing.T) {
	want := []Kind{
		KindBoundaryDetection,
		KindReverseLookup,
		KindAnswerLookup,
		KindKnowledgeChain,
		KindAnswerCompletion,
		KindSemanticRetrieval,
	}
	got := Kinds()
	if len(got) != len(want) {
		t.Fatalf("Kinds: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Kinds[%d]: got %s want %s", i, got[i], want[i])
		}
	}

	gens := Generators()
	if len(gens) != len(want) {
		t.Fatalf("Generators: got %d want %d", len(gens), len(want))
	}
	for i, g := range gens {
		if g.Kind != want[i] {
			t.Fatalf("Generators[%d]: got %s want %s", i, g.Kind, want[i])
		}
		if g.Generate == nil {
			t.Fatalf("Generators[%d]: nil generate func", i)
		}
	}
}

func TestInputsValidation(t *testing.T) {
	ds := soDataset(t)

	in := Inputs{Dataset: ds, Encoding: encoding.JSON}
	if _, err := GenerateAnswerLookup(in); err == nil {
		t.Fatalf("nil rand should be rejected")
	}

	in = testInputs(ds, encoding.Encoding("csv"), 1)
	if _, err := GenerateAnswerLookup(in); err == nil {
		t.Fatalf("unknown encoding should be rejected")
	}

	in = testInputs(nil, encoding.JSON, 1)
	if _, err := GenerateAnswerLookup(in); err == nil {
		t.Fatalf("nil dataset should be rejected")
	}
}

func TestGeneratorsDeterministic(t *testing.T) {
	ds := soDataset(t)
	for _, g := range Generators() {
		a, err := g.Generate(testInputs(ds, encoding.JSON, 99))
		if err != nil {
			t.Fatalf("%s: %v", g.Kind, err)
		}
		b, err := g.Generate(testInputs(ds, encoding.JSON, 99))
		if err != nil {
			t.Fatalf("%s: %v", g.Kind, err)
		}
		if a.Prompt != b.Prompt || a.Expected != b.Expected {
			t.Fatalf("%s: same seed produced different tasks", g.Kind)
		}
	}
}
