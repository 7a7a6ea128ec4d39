package utils

import "strings"

// CleanJSON убирает markdown-ограждения и текст вокруг ответа модели и
// возвращает первый сбалансированный JSON-объект или массив. Если его нет,
// возвращает обрезанный вход без изменений.
func CleanJSON(response string) string {
	response = strings.TrimSpace(response)

	if after, ok := strings.CutPrefix(response, "```json"); ok {
		response = after
	} else if after, ok := strings.CutPrefix(response, "```"); ok {
		response = after
	}
	response = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(response), "```"))

	startIdx := strings.IndexAny(response, "{[")
	if startIdx == -1 {
		return response
	}

	open := response[startIdx]
	closing := byte('}')
	if open == '[' {
		closing = ']'
	}

	depth := 0
	inString := false
	escaped := false

	for i := startIdx; i < len(response); i++ {
		c := response[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return response[startIdx : i+1]
			}
		}
	}

	return response
}
