package task

import (
	"fmt"
	"strings"

	"github.com/DucHai972/Questionnaire/internal/dataset"
)

const (
	boundarySentinel = "No response boundaries detected"
	blockLimit       = 200
)

// GenerateBoundaryDetection builds a task that concatenates three
// respondents' serialized blocks with no separator and asks for the three
// identifiers, forcing inference from structural cues alone.
func GenerateBoundaryDetection(in Inputs) (*Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	if in.Encoding.Tabular() {
		return boundaryTabular(in), nil
	}
	return boundaryMarkup(in), nil
}

func boundaryTabular(in Inputs) *Task {
	recs := dataset.SampleRand(in.Dataset.Records, 3, in.Rand)
	if len(recs) < 3 {
		return &Task{
			Kind:     KindBoundaryDetection,
			Encoding: in.Encoding,
			Prompt:   fmt.Sprintf("Could not sample 3 respondents from dataset %s", in.Dataset.Name),
			Expected: boundarySentinel,
			Sentinel: true,
		}
	}

	var concatenated strings.Builder
	ids := make([]string, 0, len(recs))
	for i, rec := range recs {
		id := in.Dataset.RespondentID(rec, i)
		ids = append(ids, id)
		concatenated.WriteString(compactRecord(id, rec))
	}

	prompt := fmt.Sprintf(`BOUNDARY DETECTION TASK:

The following data contains responses from exactly 3 different respondents concatenated together. Identify the respondent IDs in order.

Data:
%s

Please list the 3 respondent IDs you found:`, concatenated.String())

	return &Task{
		Kind:     KindBoundaryDetection,
		Encoding: in.Encoding,
		Prompt:   prompt,
		Expected: "Respondents: " + strings.Join(ids, ", "),
	}
}

func boundaryMarkup(in Inputs) *Task {
	degraded := &Task{
		Kind:     KindBoundaryDetection,
		Encoding: in.Encoding,
		Prompt:   fmt.Sprintf("Could not find response patterns in %s format", in.Encoding),
		Expected: boundarySentinel,
		Sentinel: true,
	}

	if in.Rendered == nil {
		return degraded
	}
	text, ok := in.Rendered(in.Encoding)
	if !ok {
		return degraded
	}

	pattern := in.Encoding.BoundaryPattern()
	if pattern == nil {
		return degraded
	}
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) < 3 {
		return degraded
	}

	ids := make([]string, 0, 3)
	labels := make([]string, 0, 3)
	for _, m := range matches[:3] {
		ids = append(ids, m[1])
		labels = append(labels, "Response "+m[1])
	}

	var concatenated strings.Builder
	for _, id := range ids {
		block := in.Encoding.BlockPattern(id).FindString(text)
		if block == "" {
			continue
		}
		if len(block) > blockLimit {
			block = block[:blockLimit]
		}
		concatenated.WriteString(block)
	}

	prompt := fmt.Sprintf(`BOUNDARY DETECTION TASK:

The following data contains responses from exactly 3 different respondents concatenated together. Identify the response numbers in order.

Data:
%s

Please list the 3 response identifiers you found:`, concatenated.String())

	return &Task{
		Kind:     KindBoundaryDetection,
		Encoding: in.Encoding,
		Prompt:   prompt,
		Expected: "Responses: " + strings.Join(labels, ", "),
	}
}
