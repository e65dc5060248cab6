package service

import "strings"

// extractFirstJSONValue devuelve el primer objeto o array JSON balanceado dentro de input.
func extractFirstJSONValue(input string) string {
	start := strings.IndexAny(input, "{[")
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	var closers []byte

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			closers = append(closers, '}')
		case '[':
			closers = append(closers, ']')
		case '}', ']':
			if len(closers) == 0 || closers[len(closers)-1] != ch {
				return ""
			}
			closers = closers[:len(closers)-1]
			if len(closers) == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}
