package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// shape describes how a dataset's backing JSON lays out its catalog and
// records. The record files were produced by a one-time ETL step and vary
// per source survey.
type shape int

const (
	// shapeQuestionList: {"questions": ["ID: description", ...],
	// "responses": [{"answers": {...}}, ...]}
	shapeQuestionList shape = iota
	// shapeQuestionMap: {"questions": {"ID": "description", ...},
	// "responses": [...]}
	shapeQuestionMap
	// shapeNested: shapeQuestionMap wrapped in a "datasets" envelope.
	shapeNested
)

type spec struct {
	name    string
	dir     string
	base    string
	file    string
	shape   shape
	idField string
	chain   func() ChainSpec
}

var specs = []spec{
	{
		name:    "stack_overflow",
		dir:     "stack-overflow-2022-developer-survey",
		base:    "survey_results_sample",
		file:    "survey_results_sample.json",
		shape:   shapeQuestionList,
		idField: "ResponseId",
		chain:   chainStackOverflow,
	},
	{
		name:  "sus_uta7",
		dir:   "sus-uta7",
		base:  "sus_uta7_questionnaire",
		file:  "sus_uta7_questionnaire.json",
		shape: shapeNested,
		chain: chainSusUTA7,
	},
	{
		name:  "mental_health",
		dir:   "self-repoted-mental-health-college-students-2022",
		base:  "mental_health_questionnaire",
		file:  "mental_health_questionnaire.json",
		shape: shapeQuestionMap,
		chain: chainMentalHealth,
	},
}

// Registry loads named datasets from a data directory, falling back to a
// small embedded sample when the backing file is absent so the engine stays
// runnable without the full corpora on disk.
type Registry struct {
	dataDir string
}

// NewRegistry creates a registry rooted at dataDir.
func NewRegistry(dataDir string) *Registry {
	return &Registry{dataDir: strings.TrimSpace(dataDir)}
}

// Names lists the known dataset names in registration order.
func (g *Registry) Names() []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.name)
	}
	return out
}

// Load reads a dataset fresh from its backing file. Unknown names report
// ErrNotFound; a corrupt backing file is fatal rather than silently partial.
func (g *Registry) Load(name string) (*Dataset, error) {
	if g == nil {
		return nil, fmt.Errorf("dataset: nil registry")
	}

	name = strings.ToLower(strings.TrimSpace(name))
	var sp *spec
	for i := range specs {
		if specs[i].name == name {
			sp = &specs[i]
			break
		}
	}
	if sp == nil {
		return nil, fmt.Errorf("dataset: %q: %w", name, ErrNotFound)
	}

	path := filepath.Join(g.dataDir, sp.dir, sp.file)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if sample, ok := embeddedSamples[sp.name]; ok {
				raw = []byte(sample)
			} else {
				return nil, fmt.Errorf("dataset: %q: backing file %s: %w", name, path, ErrNotFound)
			}
		} else {
			return nil, fmt.Errorf("dataset: read %q: %w", path, err)
		}
	}

	catalog, records, err := parse(raw, sp)
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %q: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset: %q has no respondent records", name)
	}

	return &Dataset{
		Name:    sp.name,
		Dir:     sp.dir,
		Base:    sp.base,
		Catalog: catalog,
		Records: records,
		IDField: sp.idField,
		Chain:   sp.chain(),
	}, nil
}

func parse(raw []byte, sp *spec) (*Catalog, []Record, error) {
	body := raw
	if sp.shape == shapeNested {
		var envelope struct {
			Datasets json.RawMessage `json:"datasets"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, nil, err
		}
		if len(envelope.Datasets) == 0 {
			return nil, nil, fmt.Errorf("missing datasets envelope")
		}
		body = envelope.Datasets
	}

	_, top, err := orderedRaw(body)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := parseCatalog(top["questions"], sp.shape)
	if err != nil {
		return nil, nil, err
	}

	var responseRows []json.RawMessage
	if rows, ok := top["responses"]; ok {
		if err := json.Unmarshal(rows, &responseRows); err != nil {
			return nil, nil, fmt.Errorf("decode responses: %w", err)
		}
	}

	records := make([]Record, 0, len(responseRows))
	for i, row := range responseRows {
		rec, err := orderedRecord(row, sp.idField)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", i, err)
		}
		if rec.Len() == 0 {
			continue
		}
		records = append(records, rec)
	}
	return catalog, records, nil
}

func parseCatalog(raw json.RawMessage, sh shape) (*Catalog, error) {
	if len(raw) == 0 {
		return NewCatalog(nil), nil
	}

	if sh == shapeQuestionList {
		var entries []string
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		questions := make([]Question, 0, len(entries))
		for _, e := range entries {
			id, desc, ok := strings.Cut(e, ":")
			if !ok {
				continue
			}
			questions = append(questions, Question{
				ID:          strings.TrimSpace(id),
				Description: strings.TrimSpace(desc),
			})
		}
		return NewCatalog(questions), nil
	}

	keys, values, err := orderedObject(raw)
	if err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	questions := make([]Question, 0, len(keys))
	for _, k := range keys {
		questions = append(questions, Question{ID: k, Description: ValueString(values[k])})
	}
	return NewCatalog(questions), nil
}
