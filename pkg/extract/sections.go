package extract

import (
	"regexp"
	"strings"
)

// Sections holds the structural parts recognised in a cleaned bill text.
type Sections struct {
	// Title is the leading all-caps bill or act title, when present.
	Title string `json:"title"`

	// Preamble is the text between the title and the first numbered section.
	Preamble string `json:"preamble"`

	// Provisions are the numbered SECTION blocks in document order.
	Provisions []string `json:"provisions"`

	// Definitions is the definitions block, when present.
	Definitions string `json:"definitions"`
}

var (
	// Titles are all-caps in practice; matching case-sensitively keeps the
	// greedy match from swallowing lowercase prose like "A bill to ...".
	titleRe = regexp.MustCompile(`^([A-Z][A-Z\s,]*(?:BILL|ACT))`)
	// The bare "1. " alternative is unanchored: bills numbered without the
	// word SECTION start their first provision anywhere in the cleaned text.
	firstSection  = regexp.MustCompile(`(?i)SECTION\s+\d+|1\.\s`)
	sectionStart  = regexp.MustCompile(`(?i)SECTION\s+\d+`)
	definitionsRe = regexp.MustCompile(`(?i)DEFINITIONS?`)
)

// ExtractSections recognises the title, preamble, numbered provisions and
// definitions block in cleaned bill text. Recognition is heuristic: absent
// parts are left empty rather than reported as errors.
func ExtractSections(text string) Sections {
	var s Sections

	if m := titleRe.FindStringSubmatch(text); m != nil {
		s.Title = strings.TrimSpace(m[1])
	}

	if loc := firstSection.FindStringIndex(text); loc != nil {
		preamble := text[:loc[0]]
		if s.Title != "" && strings.HasPrefix(preamble, s.Title) {
			preamble = preamble[len(s.Title):]
		}
		s.Preamble = strings.TrimSpace(preamble)
	}

	// Provisions run from each SECTION heading to the next. Go's regexp has
	// no lookahead, so blocks are sliced between consecutive match starts.
	starts := sectionStart.FindAllStringIndex(text, -1)
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		if provision := strings.TrimSpace(text[loc[0]:end]); provision != "" {
			s.Provisions = append(s.Provisions, provision)
		}
	}

	if loc := definitionsRe.FindStringIndex(text); loc != nil {
		end := len(text)
		if next := sectionStart.FindStringIndex(text[loc[1]:]); next != nil {
			end = loc[1] + next[0]
		}
		s.Definitions = strings.TrimSpace(text[loc[0]:end])
	}

	return s
}
