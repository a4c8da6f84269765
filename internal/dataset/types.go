package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports an unknown dataset name or missing backing data where
// the caller asked for a specific dataset.
var ErrNotFound = errors.New("dataset: not found")

// Question is one catalog entry: a question identifier and its
// human-readable description.
type Question struct {
	ID          string
	Description string
}

// Catalog maps question identifiers to descriptions, preserving
// dataset-authoring order.
type Catalog struct {
	ids  []string
	desc map[string]string
}

// NewCatalog builds a catalog from questions in authoring order. Duplicate
// identifiers keep the first description.
func NewCatalog(questions []Question) *Catalog {
	c := &Catalog{desc: make(map[string]string, len(questions))}
	for _, q := range questions {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			continue
		}
		if _, ok := c.desc[id]; ok {
			continue
		}
		c.ids = append(c.ids, id)
		c.desc[id] = q.Description
	}
	return c
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// Description returns the description for a question identifier.
func (c *Catalog) Description(id string) (string, bool) {
	if c == nil || c.desc == nil {
		return "", false
	}
	d, ok := c.desc[id]
	return d, ok
}

// First returns the first n catalog entries in authoring order.
func (c *Catalog) First(n int) []Question {
	if c == nil || n <= 0 {
		return nil
	}
	if n > len(c.ids) {
		n = len(c.ids)
	}
	out := make([]Question, 0, n)
	for _, id := range c.ids[:n] {
		out = append(out, Question{ID: id, Description: c.desc[id]})
	}
	return out
}

// Record is one respondent's answers. Field order is the order the answers
// appeared in the backing data; omitted questions are simply absent.
type Record struct {
	id      string
	fields  []string
	answers map[string]any
}

// NewRecord builds a record from ordered fields. Values for duplicate keys
// keep the first occurrence.
func NewRecord(id string, fields []string, answers map[string]any) Record {
	r := Record{id: strings.TrimSpace(id), answers: make(map[string]any, len(fields))}
	for _, f := range fields {
		if _, ok := r.answers[f]; ok {
			continue
		}
		v, ok := answers[f]
		if !ok {
			continue
		}
		r.fields = append(r.fields, f)
		r.answers[f] = v
	}
	return r
}

// ID returns the respondent identifier ("" when the dataset has none and an
// identifier must be synthesized by the caller).
func (r *Record) ID() string { return r.id }

// Fields returns the answered question identifiers in record order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of answered fields.
func (r *Record) Len() int { return len(r.fields) }

// Answer returns the value for a question identifier.
func (r *Record) Answer(id string) (any, bool) {
	v, ok := r.answers[id]
	return v, ok
}

// AnswerString returns the value for a question identifier rendered as a
// string ("" when absent).
func (r *Record) AnswerString(id string) string {
	v, ok := r.answers[id]
	if !ok {
		return ""
	}
	return ValueString(v)
}

// MarshalJSON encodes the answers as a JSON object preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.answers[f])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValueString renders an answer value the way it reads in prompts and
// expected answers: strings as-is, whole numbers without a decimal point.
func ValueString(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%g", n)
	case bool:
		if n {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", n)
	}
}
