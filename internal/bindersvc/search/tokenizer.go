package search

import (
	"strings"
)

// Facet keys recognized in a keyword string. Keys are matched
// case-insensitively; anything else stays in the fuzzy text.
const (
	keyID    = "id"
	keyPack  = "pack"
	keyColor = "color"
	keyExact = "exact"
)

// Facets holds the structured filters extracted from a keyword string.
// A zero value means the facet is absent.
type Facets struct {
	ID    string
	Pack  string
	Color string
	Exact string
}

type token struct {
	raw   string // original text, used when the token stays in the fuzzy part
	key   string // lowercased facet key, empty for plain text
	value string
}

// Parse splits a raw keyword into facet filters and the residual fuzzy
// text. Repeated facet keys overwrite earlier ones (last occurrence wins,
// scan order over the string). A facet token with an empty quoted value is
// stripped but sets nothing.
func Parse(raw string) (Facets, string) {
	var f Facets
	var rest []string

	for _, t := range tokenize(raw) {
		if t.key != "" && t.value == "" {
			// parsed as a facet but carries nothing; stripped, sets nothing
			continue
		}
		switch t.key {
		case keyID:
			f.ID = t.value
		case keyPack:
			f.Pack = t.value
		case keyColor:
			f.Color = t.value
		case keyExact:
			f.Exact = t.value
		default:
			rest = append(rest, t.raw)
		}
	}

	return f, strings.Join(rest, " ")
}

// tokenize scans the string into facet and plain-text tokens. A facet
// token is key:value or key:"quoted value" where key is one of the
// recognized facet keys. Unrecognized key:value shapes are returned as
// plain text.
func tokenize(raw string) []token {
	var tokens []token

	i := 0
	for i < len(raw) {
		if raw[i] == ' ' || raw[i] == '\t' {
			i++
			continue
		}

		start := i
		key, rest, ok := scanKey(raw[i:])
		if !ok {
			// plain word, runs to the next whitespace
			end := wordEnd(raw, i)
			tokens = append(tokens, token{raw: raw[start:end]})
			i = end
			continue
		}

		// consume "key:"
		i += len(key) + 1

		var value string
		if rest != "" && rest[0] == '"' {
			// quoted value, no escaping of inner quotes; the upstream
			// validator guarantees the closing quote exists
			closing := strings.IndexByte(raw[i+1:], '"')
			if closing < 0 {
				value = raw[i+1:]
				i = len(raw)
			} else {
				value = raw[i+1 : i+1+closing]
				i += closing + 2
			}
		} else {
			end := wordEnd(raw, i)
			value = raw[i:end]
			i = end
		}

		if value == "" && raw[start:i] == key+":" {
			// bare "color:" never matched the grammar, keep it as text
			tokens = append(tokens, token{raw: raw[start:i]})
			continue
		}
		tokens = append(tokens, token{raw: raw[start:i], key: strings.ToLower(key), value: value})
	}

	return tokens
}

// scanKey reports whether s starts with a recognized facet key followed
// by a colon. It returns the key as written and the remainder after the
// colon.
func scanKey(s string) (key, rest string, ok bool) {
	colon := -1
	for j := 0; j < len(s); j++ {
		c := s[j]
		if c == ':' {
			colon = j
			break
		}
		if c == ' ' || c == '\t' || c == '"' {
			break
		}
	}
	if colon <= 0 {
		return "", "", false
	}

	key = s[:colon]
	switch strings.ToLower(key) {
	case keyID, keyPack, keyColor, keyExact:
		return key, s[colon+1:], true
	}
	return "", "", false
}

func wordEnd(s string, i int) int {
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	return i
}
