package analysis

// Analysis is the structured record derived from document text by the
// completion service. Every field has a usable default; a reply missing a
// field degrades to that default rather than erroring.
type Analysis struct {
	Summary           string   `json:"summary"`
	KeyTopics         []string `json:"key_topics"`
	ImportantFindings []string `json:"important_findings"`
	Recommendations   []string `json:"recommendations"`
}

const (
	// SummaryPending is the placeholder before any analysis has run.
	SummaryPending = "Analysis pending..."
	// SummaryNoText is used when no text could be extracted from a document.
	SummaryNoText = "Could not extract text from this document. It might be an image-based PDF or empty."
	// SummaryFailed is used when the completion service errored or replied unusably.
	SummaryFailed = "AI analysis failed/incomplete."
)

// Default returns a well-formed, content-empty Analysis.
func Default() Analysis {
	return Analysis{
		Summary:           SummaryPending,
		KeyTopics:         []string{},
		ImportantFindings: []string{},
		Recommendations:   []string{},
	}
}

// normalize replaces nil list fields so they serialize as empty arrays.
func (a *Analysis) normalize() {
	if a.KeyTopics == nil {
		a.KeyTopics = []string{}
	}
	if a.ImportantFindings == nil {
		a.ImportantFindings = []string{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
}
