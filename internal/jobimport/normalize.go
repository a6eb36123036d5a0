package jobimport

import "strings"

// NormalizeField coerces an extracted value to a trimmed string.
// Non-string values normalize to "".
func NormalizeField(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
