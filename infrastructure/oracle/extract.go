package oracle

import "strings"

// ExtractJSON pulls the JSON object out of an oracle response that may
// wrap it in prose or markdown fences. Extraction order: a ```json
// fenced block, then any generic fenced block that starts with "{",
// then the outermost balanced braces in the raw text. Returns "" when
// no object can be found.
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)

	if idx := strings.Index(response, "```json"); idx != -1 {
		start := idx + len("```json")
		if end := strings.Index(response[start:], "```"); end != -1 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	if idx := strings.Index(response, "```"); idx != -1 {
		start := idx + len("```")
		// Skip a language identifier line if present.
		if nl := strings.Index(response[start:], "\n"); nl != -1 {
			start += nl + 1
		}
		if end := strings.Index(response[start:], "```"); end != -1 {
			candidate := strings.TrimSpace(response[start : start+end])
			if strings.HasPrefix(candidate, "{") {
				return candidate
			}
		}
	}

	return outerBraces(response)
}

// outerBraces returns the first balanced top-level JSON object in text,
// respecting string literals and escape sequences.
func outerBraces(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
