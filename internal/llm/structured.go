package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded value; a non-nil error rejects it.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object found in model output. Code
// fences and surrounding prose are ignored, and common model mistakes
// (comments, trailing commas, ".5" numbers) are repaired before decoding.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	return extract(raw, '{', '}', "object", validator)
}

// ExtractJSONArray is ExtractJSON for a top-level array. The agent planner
// expects its intents in this form.
func ExtractJSONArray[T any](raw string, validator SchemaValidator[[]T]) ([]T, error) {
	return extract(raw, '[', ']', "array", validator)
}

func extract[T any](raw string, opener, closer byte, kind string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := extractBalanced(stripCodeFences(raw), opener, closer)
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON %s found in response", ErrInvalidOutput, kind)
	}
	block = repairJSON(block)

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

func stripCodeFences(s string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "```") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// lexState tracks whether a byte walk is inside a JSON string literal.
type lexState struct {
	inString bool
	escaped  bool
}

// step advances the state past c and reports whether c is structural,
// that is outside any string literal and not its closing quote.
func (l *lexState) step(c byte) bool {
	switch {
	case l.escaped:
		l.escaped = false
	case l.inString && c == '\\':
		l.escaped = true
	case c == '"':
		l.inString = !l.inString
	case !l.inString:
		return true
	}
	return false
}

// extractBalanced returns the first balanced opener...closer block in s.
func extractBalanced(s string, opener, closer byte) string {
	start := strings.IndexByte(s, opener)
	if start < 0 {
		return ""
	}
	var lex lexState
	depth := 0
	for i := start; i < len(s); i++ {
		if !lex.step(s[i]) {
			continue
		}
		switch s[i] {
		case opener:
			depth++
		case closer:
			if depth--; depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// repairJSON makes one pass over a JSON block, dropping // and /* */
// comments, dropping commas before a closing bracket, and writing ".5"
// as "0.5". String literals are copied untouched.
func repairJSON(s string) string {
	out := make([]byte, 0, len(s)+8)
	var lex lexState
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !lex.step(c) {
			out = append(out, c)
			continue
		}
		switch {
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				i = len(s)
			} else {
				i += end + 3
			}
			continue
		case c == '}' || c == ']':
			if j := lastSignificant(out); j >= 0 && out[j] == ',' {
				out = append(out[:j], out[j+1:]...)
			}
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]):
			j := lastSignificant(out)
			if j < 0 || strings.IndexByte(":,[{-", out[j]) >= 0 {
				out = append(out, '0')
			}
		}
		out = append(out, c)
	}
	return string(out)
}

// lastSignificant returns the index of the last non-whitespace byte in b,
// or -1.
func lastSignificant(b []byte) int {
	for i := len(b) - 1; i >= 0; i-- {
		switch b[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return i
		}
	}
	return -1
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
