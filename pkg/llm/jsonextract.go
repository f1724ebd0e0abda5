package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject returns the first well-formed top-level JSON object
// embedded anywhere in text, including inside markdown code fences or
// surrounding prose. The second return value reports whether one was found.
//
// Brace matching is string- and escape-aware so braces inside JSON string
// values do not terminate the scan. Candidates that balance but fail to parse
// (prose like "{curly}") are skipped and the scan continues.
func ExtractJSONObject(text string) (string, bool) {
	start := 0
	for start < len(text) {
		open := strings.IndexByte(text[start:], '{')
		if open < 0 {
			return "", false
		}
		open += start

		if candidate, ok := matchBraces(text[open:]); ok && json.Valid([]byte(candidate)) {
			return candidate, true
		}

		start = open + 1
	}

	return "", false
}

func matchBraces(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}

	return "", false
}
