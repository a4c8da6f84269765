package encoding

import "regexp"

// Encoding identifies one of the textual representations a dataset can be
// serialized into.
type Encoding string

const (
	JSON     Encoding = "json"
	HTML     Encoding = "html"
	XML      Encoding = "xml"
	Markdown Encoding = "markdown"
	Text     Encoding = "txt"
)

// canonical is the fixed evaluation order: the machine-tabular encoding
// first, then the markup/prose encodings. Ranking ties break on this order.
var canonical = []Encoding{JSON, HTML, XML, Markdown, Text}

// Canonical returns the encodings in their fixed evaluation order.
func Canonical() []Encoding {
	out := make([]Encoding, len(canonical))
	copy(out, canonical)
	return out
}

// Valid reports whether e is a known encoding.
func Valid(e Encoding) bool {
	for _, c := range canonical {
		if c == e {
			return true
		}
	}
	return false
}

// Tabular reports whether e is the machine-tabular encoding.
func (e Encoding) Tabular() bool {
	return e == JSON
}

// Extension returns the file extension used for rendered text in e.
func (e Encoding) Extension() string {
	switch e {
	case JSON:
		return ".json"
	case HTML:
		return ".html"
	case XML:
		return ".xml"
	case Markdown:
		return ".md"
	case Text:
		return ".txt"
	default:
		return ""
	}
}

var boundaryPatterns = map[Encoding]*regexp.Regexp{
	HTML:     regexp.MustCompile(`<h3>Response (\d+)</h3>`),
	XML:      regexp.MustCompile(`<response id=['"](\d+)['"]>`),
	Markdown: regexp.MustCompile(`### Response (\d+)`),
	Text:     regexp.MustCompile(`Response (\d+)`),
}

// BoundaryPattern returns the lexical pattern that marks the start of one
// respondent's block in rendered text, or nil when the encoding has no
// boundary marker (the tabular encoding delimits records structurally).
func (e Encoding) BoundaryPattern() *regexp.Regexp {
	return boundaryPatterns[e]
}

// BlockPattern returns a pattern matching the full rendered block for a
// single response identifier, from its boundary marker up to the next
// marker or end of document.
func (e Encoding) BlockPattern(id string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(id)
	switch e {
	case HTML:
		return regexp.MustCompile(`(?s)<h3>Response ` + quoted + `</h3>.*?(?:<h3>Response |\z)`)
	case XML:
		return regexp.MustCompile(`(?s)<response id=['"]` + quoted + `['"]>.*?(?:</response>|\z)`)
	case Markdown:
		return regexp.MustCompile(`(?s)### Response ` + quoted + `.*?(?:### Response |\z)`)
	case Text:
		return regexp.MustCompile(`(?s)Response ` + quoted + `.*?(?:Response \d|\z)`)
	default:
		return nil
	}
}
