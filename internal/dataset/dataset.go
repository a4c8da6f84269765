package dataset

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ChainSpec defines the two-criteria predicate used by multi-hop reasoning
// over a dataset. The headline names both criteria in prose for prompts;
// Match computes the ground truth for one record.
type ChainSpec struct {
	Headline string
	Match    func(Record) bool
}

// Dataset is a named, immutable corpus: a question catalog plus respondent
// records, with the dataset-specific knobs the task generators need.
type Dataset struct {
	Name    string
	Dir     string // directory under the data dir holding rendered text
	Base    string // rendered-text base filename
	Catalog *Catalog
	Records []Record

	// IDField names the answer field carrying the respondent identifier.
	// Empty means records have no embedded identifier and callers
	// synthesize sample-relative ones.
	IDField string

	Chain ChainSpec
}

// RespondentID returns the identifier for a sampled record: the embedded
// one when the dataset has an identifier field, else a synthesized
// sample-relative "R" id.
func (d *Dataset) RespondentID(rec Record, sampleIndex int) string {
	if d != nil && d.IDField != "" {
		if id := strings.TrimSpace(rec.AnswerString(d.IDField)); id != "" {
			return id
		}
	}
	return synthID(sampleIndex)
}

func synthID(i int) string {
	return "R" + strconv.Itoa(1000+i)
}

func containsAnswer(rec Record, field, substr string) bool {
	return strings.Contains(rec.AnswerString(field), substr)
}

func chainStackOverflow() ChainSpec {
	return ChainSpec{
		Headline: "Find all respondents who are both 'Employed, full-time' AND identify as 'I am a developer by profession'",
		Match: func(rec Record) bool {
			return containsAnswer(rec, "Employment", "Employed, full-time") &&
				containsAnswer(rec, "MainBranch", "I am a developer by profession")
		},
	}
}

func chainSusUTA7() ChainSpec {
	return ChainSpec{
		Headline: "Find all senior group respondents who rated 'Ease of use' as 5",
		Match: func(rec Record) bool {
			if rec.AnswerString("group") != "senior" {
				return false
			}
			return rec.AnswerString("Ease of use") == "5"
		},
	}
}

func chainMentalHealth() ChainSpec {
	return ChainSpec{
		Headline: "Find all respondents with comprehensive response data",
		Match: func(rec Record) bool {
			b, err := json.Marshal(rec)
			if err != nil {
				return false
			}
			return len(b) > 100
		},
	}
}
