package ai

import "strings"

// MessageText flattens a reply's content into plain text.
//
// Providers return either a bare string, a list of content parts, or a
// single part object. Parts that are strings are taken as-is; parts that
// are objects contribute their "text" field when it is a string. Anything
// else yields "". The result is always trimmed and never nil.
func MessageText(content any) string {
	switch v := content.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		var b strings.Builder
		for _, part := range v {
			b.WriteString(partText(part))
		}
		return strings.TrimSpace(b.String())
	case map[string]any:
		return strings.TrimSpace(partText(v))
	default:
		return ""
	}
}

func partText(part any) string {
	switch p := part.(type) {
	case string:
		return p
	case map[string]any:
		if text, ok := p["text"].(string); ok {
			return text
		}
	}
	return ""
}
