package feedback

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

const validDoc = `{
	"overallScore": 72,
	"ATS": {"score": 65, "tips": [
		{"type": "good", "tip": "Clean section headers"},
		{"type": "improve", "tip": "Add more keywords"}
	]},
	"toneAndStyle": {"score": 70, "tips": [
		{"type": "improve", "tip": "Passive voice", "explanation": "Several bullets use passive constructions."}
	]},
	"content": {"score": 75, "tips": [
		{"type": "good", "tip": "Strong metrics", "explanation": "Quantified impact in most roles."}
	]},
	"structure": {"score": 80, "tips": [
		{"type": "good", "tip": "Logical ordering", "explanation": "Experience first works for this profile."}
	]},
	"skills": {"score": 68, "tips": [
		{"type": "improve", "tip": "Group by domain", "explanation": "A flat list is harder to scan."}
	]}
}`

func TestValidAcceptsCompleteDocument(t *testing.T) {
	if !Valid(decode(t, validDoc)) {
		t.Fatal("expected complete document to be accepted")
	}
}

func TestValidATSNeedsNoExplanation(t *testing.T) {
	doc := decode(t, validDoc).(map[string]any)
	ats := doc["ATS"].(map[string]any)
	for _, rawTip := range ats["tips"].([]any) {
		if _, has := rawTip.(map[string]any)["explanation"]; has {
			t.Fatal("fixture should not carry ATS explanations")
		}
	}
	if !Valid(doc) {
		t.Fatal("ATS tips without explanation must be accepted")
	}
}

func TestValidRejectsMissingExplanation(t *testing.T) {
	doc := decode(t, validDoc).(map[string]any)
	content := doc["content"].(map[string]any)
	tip := content["tips"].([]any)[0].(map[string]any)
	tip["explanation"] = "   "
	if Valid(doc) {
		t.Fatal("blank explanation in a detail category must be rejected")
	}
}

func TestValidRejectsUnknownTipType(t *testing.T) {
	for _, badType := range []any{"excellent", "Good", "", 1, nil} {
		doc := decode(t, validDoc).(map[string]any)
		ats := doc["ATS"].(map[string]any)
		ats["tips"].([]any)[0].(map[string]any)["type"] = badType
		if Valid(doc) {
			t.Fatalf("tip type %v must be rejected", badType)
		}
	}

	// Same rule in the detail categories.
	doc := decode(t, validDoc).(map[string]any)
	skills := doc["skills"].(map[string]any)
	skills["tips"].([]any)[0].(map[string]any)["type"] = "neutral"
	if Valid(doc) {
		t.Fatal("tip type outside good|improve must be rejected")
	}
}

func TestValidRejectsNonNumericScore(t *testing.T) {
	doc := decode(t, validDoc).(map[string]any)
	doc["overallScore"] = "72"
	if Valid(doc) {
		t.Fatal("string overallScore must be rejected")
	}
}

func TestValidRejectsMissingCategory(t *testing.T) {
	doc := decode(t, validDoc).(map[string]any)
	delete(doc, "skills")
	if Valid(doc) {
		t.Fatal("missing category must be rejected")
	}
}

func TestValidLineImprovements(t *testing.T) {
	doc := decode(t, validDoc).(map[string]any)
	doc["lineImprovements"] = []any{
		map[string]any{
			"section":      "experience",
			"sectionTitle": "Experience - Backend Engineer",
			"original":     "Worked on APIs",
			"suggested":    "Designed and shipped 4 public REST APIs serving 2M requests/day",
			"reason":       "Adds scope and scale the original lacks.",
			"priority":     "high",
			"category":     "quantify",
		},
	}
	if !Valid(doc) {
		t.Fatal("well-formed lineImprovements must be accepted")
	}

	doc["lineImprovements"].([]any)[0].(map[string]any)["reason"] = ""
	if Valid(doc) {
		t.Fatal("lineImprovement with empty field must be rejected")
	}

	doc["lineImprovements"] = "not a list"
	if Valid(doc) {
		t.Fatal("non-array lineImprovements must be rejected")
	}

	doc["lineImprovements"] = nil
	if Valid(doc) {
		t.Fatal("explicit null lineImprovements must be rejected")
	}

	delete(doc, "lineImprovements")
	if !Valid(doc) {
		t.Fatal("absent lineImprovements must be accepted")
	}
}

func TestValidEmptyTipsAccepted(t *testing.T) {
	doc := decode(t, validDoc).(map[string]any)
	ats := doc["ATS"].(map[string]any)
	ats["tips"] = []any{}
	if !Valid(doc) {
		t.Fatal("empty tips array must be accepted")
	}
}

func TestValidTotalOnGarbage(t *testing.T) {
	cases := []any{
		nil,
		"feedback",
		42.0,
		[]any{"a"},
		map[string]any{},
		map[string]any{"overallScore": 50, "ATS": "broken"},
	}
	for i, c := range cases {
		if Valid(c) {
			t.Fatalf("case %d: garbage input must be rejected", i)
		}
	}
}

func TestValidIdempotent(t *testing.T) {
	doc := decode(t, validDoc)
	first := Valid(doc)
	second := Valid(doc)
	if first != second {
		t.Fatal("validation must not mutate its input")
	}
}
