package task

import (
	"strings"

	"github.com/DucHai972/Questionnaire/internal/dataset"
)

const (
	chainSampleSize  = 10
	chainNoneMatched = "No matching respondents found"
)

// GenerateKnowledgeChain builds a multi-hop task: among up to 10 sampled
// respondents, identify every one satisfying both of the dataset's
// criteria. Tabular only.
func GenerateKnowledgeChain(in Inputs) (*Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !in.Encoding.Tabular() {
		return notImplemented(KindKnowledgeChain, in.Encoding,
			"Knowledge chain reasoning", "Multi-hop reasoning requires structured data parsing for %s"), nil
	}

	recs := dataset.SampleRand(in.Dataset.Records, chainSampleSize, in.Rand)
	if len(recs) == 0 {
		return notImplemented(KindKnowledgeChain, in.Encoding,
			"Knowledge chain reasoning", "No respondent records available in %s data"), nil
	}

	var sb strings.Builder
	sb.WriteString("MULTI-HOP REASONING TASK:\n\n")
	sb.WriteString(in.Dataset.Chain.Headline)
	sb.WriteString("\n\nSurvey Data:\n")

	var matching []string
	for i, rec := range recs {
		id := in.Dataset.RespondentID(rec, i)
		if in.Dataset.Chain.Match != nil && in.Dataset.Chain.Match(rec) {
			matching = append(matching, id)
		}
		sb.WriteString(compactRecord(id, rec))
		sb.WriteByte('\n')
	}
	sb.WriteString("\nPlease identify all respondent IDs that match BOTH criteria:")

	expected := chainNoneMatched
	if len(matching) > 0 {
		expected = "Matching respondents: " + strings.Join(matching, ", ")
	}

	return &Task{
		Kind:     KindKnowledgeChain,
		Encoding: in.Encoding,
		Prompt:   sb.String(),
		Expected: expected,
	}, nil
}
