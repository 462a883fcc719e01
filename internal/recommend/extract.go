package recommend

import "strings"

// ExtractJSONObject recovers an embedded JSON object from an untrusted,
// possibly prose-wrapped blob. It scans for the first '{' and walks to its
// balanced closing brace, skipping braces inside string literals. The caller
// parses exactly that span; there is no offset guessing and no retry.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
