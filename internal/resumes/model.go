// Package resumes owns the resume record, its KV persistence and the
// analysis pipeline that turns an uploaded PDF into stored feedback.
package resumes

import (
	"encoding/json"
	"time"
)

// PendingFeedback marks a record whose analysis has not completed.
// It is the JSON string "" so older readers that expect either a
// feedback object or an empty string keep working.
var PendingFeedback = json.RawMessage(`""`)

// Record is the per-resume document stored in the KV store under
// resume:<id>.
type Record struct {
	ID             string          `json:"id"`
	ResumePath     string          `json:"resumePath"`
	ImagePath      string          `json:"imagePath"`
	CompanyName    string          `json:"companyName"`
	JobTitle       string          `json:"jobTitle"`
	JobDescription string          `json:"jobDescription"`
	Feedback       json.RawMessage `json:"feedback"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// HasFeedback reports whether analysis completed for this record.
func (r Record) HasFeedback() bool {
	return len(r.Feedback) > 0 && string(r.Feedback) != `""`
}
