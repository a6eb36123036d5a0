// Package feedback defines the resume critique document, the prompt
// that asks the model for it, and the structural guard that decides
// whether a model reply is usable.
package feedback

// Tip is a single piece of advice within a category. Type is "good" or
// "improve". Explanation is empty for ATS tips.
type Tip struct {
	Type        string `json:"type"`
	Tip         string `json:"tip"`
	Explanation string `json:"explanation,omitempty"`
}

// Category groups tips under a 0-100 score.
type Category struct {
	Score float64 `json:"score"`
	Tips  []Tip   `json:"tips"`
}

// LineImprovement is one concrete rewrite suggestion for a specific
// line of the resume.
type LineImprovement struct {
	Section      string `json:"section"`
	SectionTitle string `json:"sectionTitle"`
	Original     string `json:"original"`
	Suggested    string `json:"suggested"`
	Reason       string `json:"reason"`
	Priority     string `json:"priority"`
	Category     string `json:"category"`
}

// Feedback is the full critique document persisted per resume.
type Feedback struct {
	OverallScore        float64           `json:"overallScore"`
	ATS                 Category          `json:"ATS"`
	ToneAndStyle        Category          `json:"toneAndStyle"`
	Content             Category          `json:"content"`
	Structure           Category          `json:"structure"`
	Skills              Category          `json:"skills"`
	LineImprovements    []LineImprovement `json:"lineImprovements,omitempty"`
	ColdOutreachMessage string            `json:"coldOutreachMessage,omitempty"`
}
