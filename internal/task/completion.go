package task

import (
	"fmt"

	"github.com/DucHai972/Questionnaire/internal/dataset"
)

const completionSentinel = "Insufficient data for completion task"

// GenerateAnswerCompletion builds a prediction task: hold out one answered
// field and ask for its value given every other answer. Tabular only.
func GenerateAnswerCompletion(in Inputs) (*Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !in.Encoding.Tabular() {
		return notImplemented(KindAnswerCompletion, in.Encoding,
			"Answer completion", "Completion task requires structured data analysis for %s"), nil
	}

	recs := dataset.SampleRand(in.Dataset.Records, 1, in.Rand)
	if len(recs) == 0 {
		return notImplemented(KindAnswerCompletion, in.Encoding,
			"Answer completion", "No respondent records available in %s data"), nil
	}
	rec := recs[0]

	if rec.Len() < 2 {
		return &Task{
			Kind:     KindAnswerCompletion,
			Encoding: in.Encoding,
			Prompt:   "Not enough fields to create completion task",
			Expected: completionSentinel,
			Sentinel: true,
		}, nil
	}

	target, value, _ := pickField(rec, in.Rand)

	prompt := fmt.Sprintf(`ANSWER COMPLETION TASK:

Given respondent %s's other answers:
%s

Predict the answer to '%s'

Provide your prediction with reasoning:`,
		lookupID(in.Dataset, rec), indentFields(rec, target), target)

	return &Task{
		Kind:     KindAnswerCompletion,
		Encoding: in.Encoding,
		Prompt:   prompt,
		Expected: "Predicted answer: " + dataset.ValueString(value),
	}, nil
}
