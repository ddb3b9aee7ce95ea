package ai

import (
	"errors"
	"strings"
)

// ErrNoJSON is returned when no brace-balanced JSON object can be found in
// a completion response.
var ErrNoJSON = errors.New("ai: no JSON object found in response")

// ExtractJSON pulls the first brace-balanced JSON object out of free-form
// model output. Models tend to wrap JSON in prose or markdown fences; this
// tolerates both but fails closed when no balanced object exists. Callers
// must treat the error as "no result", never as a reason to abort.
func ExtractJSON(s string) (string, error) {
	// Drop fence markers so a ```json block scans like plain text.
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
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
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSON
}
