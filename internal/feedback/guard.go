package feedback

import "strings"

// Valid reports whether a decoded model reply is a usable critique
// document. It is a pure predicate over the generic JSON form and never
// panics on malformed input. Acceptance is all-or-nothing: any missing
// or mistyped piece rejects the whole candidate.
//
// ATS tips do not require an explanation; the four detail categories
// do. lineImprovements may be absent, but a present value must be an
// array whose entries carry all seven fields.
func Valid(candidate any) bool {
	doc, ok := candidate.(map[string]any)
	if !ok {
		return false
	}

	if !isNumber(doc["overallScore"]) {
		return false
	}

	if !validCategory(doc["ATS"], false) {
		return false
	}
	for _, key := range []string{"toneAndStyle", "content", "structure", "skills"} {
		if !validCategory(doc[key], true) {
			return false
		}
	}

	if raw, present := doc["lineImprovements"]; present {
		items, ok := raw.([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if !validLineImprovement(item) {
				return false
			}
		}
	}

	return true
}

func validCategory(raw any, needExplanation bool) bool {
	cat, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	if !isNumber(cat["score"]) {
		return false
	}
	tips, ok := cat["tips"].([]any)
	if !ok {
		return false
	}
	for _, rawTip := range tips {
		tip, ok := rawTip.(map[string]any)
		if !ok {
			return false
		}
		if !validTipType(tip["type"]) || !nonEmptyString(tip["tip"]) {
			return false
		}
		if needExplanation && !nonEmptyString(tip["explanation"]) {
			return false
		}
	}
	return true
}

func validLineImprovement(raw any) bool {
	item, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	for _, key := range []string{"section", "sectionTitle", "original", "suggested", "reason", "priority", "category"} {
		if !nonEmptyString(item[key]) {
			return false
		}
	}
	return true
}

// validTipType admits exactly the two tip kinds.
func validTipType(v any) bool {
	s, ok := v.(string)
	return ok && (s == "good" || s == "improve")
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, int, int64:
		return true
	}
	return false
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}
