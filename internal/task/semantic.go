package task

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/DucHai972/Questionnaire/internal/dataset"
)

// semanticCategory maps one natural-language attribute to the answer-field
// keywords that can satisfy it. Order is load-bearing: categories are
// scanned in declaration order and the first category with any matching
// field wins, then the first matching field in record order.
type semanticCategory struct {
	name     string
	keywords []string
}

var semanticCategories = []semanticCategory{
	{"gender identity", []string{"gender", "sex", "Gender"}},
	{"employment status", []string{"employment", "job", "Employment", "MainBranch"}},
	{"education level", []string{"education", "degree", "EdLevel"}},
	{"experience level", []string{"years", "experience", "YearsCode", "group"}},
	{"department", []string{"department", "team", "DevType"}},
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// GenerateSemanticRetrieval recasts one respondent's answers as
// subject-predicate-object triples and asks for the value behind a
// natural-language attribute query. Tabular only.
func GenerateSemanticRetrieval(in Inputs) (*Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !in.Encoding.Tabular() {
		return notImplemented(KindSemanticRetrieval, in.Encoding,
			"Semantic retrieval", "Semantic queries require RDF-like structure parsing for %s"), nil
	}

	recs := dataset.SampleRand(in.Dataset.Records, 1, in.Rand)
	if len(recs) == 0 {
		return notImplemented(KindSemanticRetrieval, in.Encoding,
			"Semantic retrieval", "No respondent records available in %s data"), nil
	}
	rec := recs[0]

	fields := rec.Fields()
	if len(fields) == 0 {
		return notImplemented(KindSemanticRetrieval, in.Encoding,
			"Semantic retrieval", "Respondent has no answers in %s data"), nil
	}

	query, value := resolveSemanticQuery(rec)

	subject := fmt.Sprintf("emp:R%d", 1000+in.Rand.Intn(9000))
	triples := make([]string, 0, len(fields))
	for _, f := range fields {
		predicate := "pred:has" + nonAlnum.ReplaceAllString(f, "")
		triples = append(triples, fmt.Sprintf("%s %s %q .", subject, predicate, rec.AnswerString(f)))
	}

	prompt := fmt.Sprintf(`SEMANTIC ATTRIBUTE RETRIEVAL TASK:

Given these triples for %s:
%s

Extract the semantic attribute '%s' for %s`,
		subject, strings.Join(triples, "\n"), query, subject)

	return &Task{
		Kind:     KindSemanticRetrieval,
		Encoding: in.Encoding,
		Prompt:   prompt,
		Expected: "Value: " + dataset.ValueString(value),
	}, nil
}

// resolveSemanticQuery picks the attribute to ask about: the first category
// whose keywords match any field identifier, else the first field itself as
// an ad hoc query.
func resolveSemanticQuery(rec dataset.Record) (string, any) {
	fields := rec.Fields()
	for _, cat := range semanticCategories {
		for _, f := range fields {
			if keywordMatch(f, cat.keywords) {
				v, _ := rec.Answer(f)
				return cat.name, v
			}
		}
	}

	first := fields[0]
	v, _ := rec.Answer(first)
	return fmt.Sprintf("attribute '%s'", first), v
}

func keywordMatch(field string, keywords []string) bool {
	lower := strings.ToLower(field)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
