package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// The model gives no structural guarantee: responses arrive as prose, code
// fences, or bare JSON. Everything here degrades instead of failing.

var ErrNoJSONFound = errors.New("no JSON value found in response")

// ExtractJSONObject scans raw for the first balanced {...} span and
// unmarshals it into out. String literals and escapes are respected so
// braces inside values do not break the balance count.
func ExtractJSONObject(raw string, out interface{}) error {
	span, err := balancedSpan(stripFences(raw), '{', '}')
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(span), out)
}

// ExtractJSONArray is ExtractJSONObject for the first balanced [...] span.
func ExtractJSONArray(raw string, out interface{}) error {
	span, err := balancedSpan(stripFences(raw), '[', ']')
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(span), out)
}

// ExtractStringList parses a list-shaped completion. JSON array first; when
// no array parses, fall back to splitting the raw text on commas and
// newlines. Never returns an error: a malformed completion still yields a
// best-effort list.
func ExtractStringList(raw string) []string {
	var items []string
	if err := ExtractJSONArray(raw, &items); err == nil {
		return trimNonEmpty(items)
	}
	return SplitList(raw)
}

// SplitList is the naive comma/newline fallback for list-shaped results.
func SplitList(raw string) []string {
	raw = stripFences(raw)
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	return trimNonEmpty(parts)
}

// CleanText returns the trimmed raw text for prose-shaped results, with
// code fences removed.
func CleanText(raw string) string {
	return strings.TrimSpace(stripFences(raw))
}

func balancedSpan(raw string, open, close byte) (string, error) {
	start := strings.IndexByte(raw, open)
	if start < 0 {
		return "", ErrNoJSONFound
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]

		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSONFound
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}

func trimNonEmpty(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.Trim(strings.TrimSpace(item), `"'-* `)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
