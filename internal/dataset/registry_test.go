package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryNames(t *testing.T) {
	names := NewRegistry("").Names()
	want := []string{"stack_overflow", "sus_uta7", "mental_health"}
	if len(names) != len(want) {
		t.Fatalf("Names: got %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names[%d]: got %q want %q", i, names[i], want[i])
		}
	}
}

func TestRegistryUnknownName(t *testing.T) {
	_, err := NewRegistry(t.TempDir()).Load("census_2020")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown dataset: got %v want ErrNotFound", err)
	}
}

func TestRegistryEmbeddedFallback(t *testing.T) {
	// No backing files on disk: every known dataset still loads from its
	// embedded sample.
	reg := NewRegistry(t.TempDir())
	for _, name := range reg.Names() {
		ds, err := reg.Load(name)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if len(ds.Records) == 0 {
			t.Fatalf("Load(%s): no records", name)
		}
		if ds.Catalog.Len() == 0 {
			t.Fatalf("Load(%s): empty catalog", name)
		}
		if ds.Chain.Match == nil || ds.Chain.Headline == "" {
			t.Fatalf("Load(%s): missing chain spec", name)
		}
	}
}

func TestRegistryLoadsBackingFile(t *testing.T) {
	dir := t.TempDir()
	dsDir := filepath.Join(dir, "stack-overflow-2022-developer-survey")
	if err := os.MkdirAll(dsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := `{
		"questions": ["ResponseId: ID", "Employment: Employment status"],
		"responses": [
			{"answers": {"ResponseId": "1", "Employment": "Employed, full-time"}},
			{"answers": {"ResponseId": "2", "Employment": "Retired"}}
		]
	}`
	if err := os.WriteFile(filepath.Join(dsDir, "survey_results_sample.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ds, err := NewRegistry(dir).Load("stack_overflow")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("records: got %d want 2", len(ds.Records))
	}
	if ds.Records[0].ID() != "1" {
		t.Fatalf("record id: got %q", ds.Records[0].ID())
	}
	if desc, _ := ds.Catalog.Description("Employment"); desc != "Employment status" {
		t.Fatalf("catalog description: got %q", desc)
	}
	if ds.IDField != "ResponseId" {
		t.Fatalf("IDField: got %q", ds.IDField)
	}
}

func TestRegistryCorruptFile(t *testing.T) {
	dir := t.TempDir()
	dsDir := filepath.Join(dir, "sus-uta7")
	if err := os.MkdirAll(dsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dsDir, "sus_uta7_questionnaire.json"), []byte("{oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewRegistry(dir).Load("sus_uta7"); err == nil {
		t.Fatalf("corrupt backing file should be fatal")
	}
}
