package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// orderedRaw decodes a JSON object keeping its keys in document order, with
// values left as raw JSON. Standard map decoding loses key order, which the
// engine needs: "first field" and "first N questions" are defined by
// authoring order.
func orderedRaw(raw []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: decode object: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, errors.New("dataset: decode object: not a JSON object")
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("dataset: decode object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("dataset: decode object key: unexpected token %v", keyTok)
		}

		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("dataset: decode object value for %q: %w", key, err)
		}
		if _, dup := values[key]; dup {
			continue
		}
		keys = append(keys, key)
		values[key] = v
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("dataset: decode object close: %w", err)
	}
	return keys, values, nil
}

// orderedObject is orderedRaw with values decoded to plain Go values.
func orderedObject(raw []byte) ([]string, map[string]any, error) {
	keys, rawValues, err := orderedRaw(raw)
	if err != nil {
		return nil, nil, err
	}

	values := make(map[string]any, len(rawValues))
	for key, rv := range rawValues {
		var v any
		if err := json.Unmarshal(rv, &v); err != nil {
			return nil, nil, fmt.Errorf("dataset: decode value for %q: %w", key, err)
		}
		values[key] = v
	}
	return keys, values, nil
}

// orderedRecord decodes one respondent object into a Record, unwrapping an
// "answers" envelope when present. Not every dataset wraps its answers, so
// the raw object itself is the answer mapping when the envelope is absent.
func orderedRecord(raw []byte, idField string) (Record, error) {
	_, rawValues, err := orderedRaw(raw)
	if err != nil {
		return Record{}, err
	}
	if inner, ok := rawValues["answers"]; ok && len(inner) > 0 && inner[0] == '{' {
		raw = inner
	}

	keys, values, err := orderedObject(raw)
	if err != nil {
		return Record{}, err
	}

	id := ""
	if idField != "" {
		if v, ok := values[idField]; ok {
			id = ValueString(v)
		}
	}
	return NewRecord(id, keys, values), nil
}
