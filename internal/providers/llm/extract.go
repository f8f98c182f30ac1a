package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ExtractJSON pulls the first balanced {...} block out of a model reply and
// unmarshals it into dst. Model output routinely wraps JSON in markdown code
// fences and surrounding prose; both are stripped before bracket matching.
func ExtractJSON(reply string, dst any) error {
	s := strings.TrimSpace(reply)

	// Strip ```json / ``` fences wherever they appear.
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return errors.New("no JSON object found in reply")
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
				return json.Unmarshal([]byte(s[start:i+1]), dst)
			}
		}
	}
	return errors.New("unbalanced JSON object in reply")
}
