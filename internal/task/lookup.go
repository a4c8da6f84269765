package task

import (
	"fmt"

	"github.com/DucHai972/Questionnaire/internal/dataset"
)

const catalogPreviewSize = 10

// GenerateReverseLookup builds a task that presents one answer value and
// asks which question it belongs to. Only the tabular encoding is
// supported; other encodings yield a fixed sentinel pair.
func GenerateReverseLookup(in Inputs) (*Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !in.Encoding.Tabular() {
		return notImplemented(KindReverseLookup, in.Encoding,
			"Reverse lookup", "Non-tabular reverse lookup requires parsing %s structure"), nil
	}

	recs := dataset.SampleRand(in.Dataset.Records, 1, in.Rand)
	if len(recs) == 0 {
		return notImplemented(KindReverseLookup, in.Encoding,
			"Reverse lookup", "No respondent records available in %s data"), nil
	}
	rec := recs[0]

	field, value, ok := pickField(rec, in.Rand)
	if !ok {
		return notImplemented(KindReverseLookup, in.Encoding,
			"Reverse lookup", "Respondent has no answers in %s data"), nil
	}

	desc, ok := in.Dataset.Catalog.Description(field)
	if !ok || desc == "" {
		desc = field
	}

	prompt := fmt.Sprintf(`ANSWER REVERSE LOOKUP TASK:

Given this respondent's complete data:
%s

Question metadata available:
%s

Which question does the answer '%s' belong to for this respondent?`,
		indentRecord(lookupID(in.Dataset, rec), rec),
		indentCatalog(in.Dataset.Catalog.First(catalogPreviewSize)),
		dataset.ValueString(value))

	return &Task{
		Kind:     KindReverseLookup,
		Encoding: in.Encoding,
		Prompt:   prompt,
		Expected: "Question: " + desc,
	}, nil
}

// GenerateAnswerLookup builds the inverse task: given a question
// identifier, retrieve the respondent's answer value. Tabular only.
func GenerateAnswerLookup(in Inputs) (*Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !in.Encoding.Tabular() {
		return notImplemented(KindAnswerLookup, in.Encoding,
			"Answer lookup", "Non-tabular answer lookup requires parsing %s structure"), nil
	}

	recs := dataset.SampleRand(in.Dataset.Records, 1, in.Rand)
	if len(recs) == 0 {
		return notImplemented(KindAnswerLookup, in.Encoding,
			"Answer lookup", "No respondent records available in %s data"), nil
	}
	rec := recs[0]

	field, value, ok := pickField(rec, in.Rand)
	if !ok {
		return notImplemented(KindAnswerLookup, in.Encoding,
			"Answer lookup", "Respondent has no answers in %s data"), nil
	}

	id := lookupID(in.Dataset, rec)
	prompt := fmt.Sprintf(`ANSWER LOOKUP TASK:

For respondent %s, what is the answer to: '%s'?

Respondent data:
%s`, id, field, indentRecord(id, rec))

	return &Task{
		Kind:     KindAnswerLookup,
		Encoding: in.Encoding,
		Prompt:   prompt,
		Expected: "Answer: " + dataset.ValueString(value),
	}, nil
}
