package task

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/DucHai972/Questionnaire/internal/dataset"
	"github.com/DucHai972/Questionnaire/internal/encoding"
)

// respondentBlock is the serialized form respondent records take inside
// prompts for the tabular encoding.
type respondentBlock struct {
	Respondent string         `json:"respondent"`
	Answers    dataset.Record `json:"answers"`
}

func compactRecord(id string, rec dataset.Record) string {
	b, err := json.Marshal(respondentBlock{Respondent: id, Answers: rec})
	if err != nil {
		return ""
	}
	return string(b)
}

func indentRecord(id string, rec dataset.Record) string {
	b, err := json.MarshalIndent(respondentBlock{Respondent: id, Answers: rec}, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func indentFields(rec dataset.Record, skip string) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	first := true
	for _, f := range rec.Fields() {
		if f == skip {
			continue
		}
		v, _ := rec.Answer(f)
		kb, _ := json.Marshal(f)
		vb, _ := json.Marshal(v)
		if !first {
			sb.WriteString(",\n")
		}
		first = false
		sb.WriteString("  ")
		sb.Write(kb)
		sb.WriteString(": ")
		sb.Write(vb)
	}
	sb.WriteString("\n}")
	return sb.String()
}

func indentCatalog(questions []dataset.Question) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, q := range questions {
		kb, _ := json.Marshal(q.ID)
		vb, _ := json.Marshal(q.Description)
		if i > 0 {
			sb.WriteString(",\n")
		}
		sb.WriteString("  ")
		sb.Write(kb)
		sb.WriteString(": ")
		sb.Write(vb)
	}
	sb.WriteString("\n}")
	return sb.String()
}

// lookupID is the respondent identifier used by single-respondent prompts:
// the embedded identifier when the dataset carries one, else a fixed
// placeholder.
func lookupID(ds *dataset.Dataset, rec dataset.Record) string {
	if ds.IDField != "" {
		if id := strings.TrimSpace(rec.AnswerString(ds.IDField)); id != "" {
			return id
		}
	}
	return "R123"
}

func notImplemented(kind Kind, enc encoding.Encoding, what, why string) *Task {
	return &Task{
		Kind:     kind,
		Encoding: enc,
		Prompt:   fmt.Sprintf(why, enc),
		Expected: fmt.Sprintf("%s not fully implemented for %s", what, enc),
		Sentinel: true,
	}
}

// pickField chooses one answered field uniformly at random, in record order.
func pickField(rec dataset.Record, rng *rand.Rand) (string, any, bool) {
	fields := rec.Fields()
	if len(fields) == 0 {
		return "", nil, false
	}
	f := fields[rng.Intn(len(fields))]
	v, _ := rec.Answer(f)
	return f, v, true
}
