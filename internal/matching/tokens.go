package matching

import "strings"

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// splitTokens splits a comma-separated list into normalized, non-empty tokens.
func splitTokens(list string) []string {
	parts := strings.Split(list, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := normalizeToken(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

type tokenSet map[string]struct{}

func newTokenSet(tokens []string) tokenSet {
	set := make(tokenSet, len(tokens))
	for _, token := range tokens {
		if token = normalizeToken(token); token != "" {
			set[token] = struct{}{}
		}
	}
	return set
}

func (s tokenSet) has(token string) bool {
	_, ok := s[normalizeToken(token)]
	return ok
}

// intersect returns the values (trimmed, in their original case) that the
// blocked list also contains.
func intersect(values, blocked []string) []string {
	set := newTokenSet(blocked)
	var matched []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" && set.has(value) {
			matched = append(matched, value)
		}
	}
	return matched
}
