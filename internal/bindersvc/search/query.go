package search

import (
	"errors"
	"strconv"
	"strings"
)

// Trigram similarity floor for the fuzzy predicate. A row matches when
// any of the compared fields clears it.
const SimilarityThreshold = 0.15

// MaxResults caps every compiled search.
const MaxResults = 50

// Keyword length cap enforced before the compiler runs.
const MaxKeywordLen = 500

var (
	ErrEmptyKeyword     = errors.New("keyword is empty")
	ErrKeywordTooLong   = errors.New("keyword exceeds maximum length")
	ErrUnbalancedQuotes = errors.New("keyword has an unterminated quote")
)

// ValidateKeyword rejects input the compiler is not required to recover
// from: empty or oversized keywords and unterminated facet quoting.
func ValidateKeyword(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyKeyword
	}
	if len(raw) > MaxKeywordLen {
		return ErrKeywordTooLong
	}
	if strings.Count(raw, `"`)%2 != 0 {
		return ErrUnbalancedQuotes
	}
	return nil
}

// Options carries one search invocation. UserID scopes the ownership
// aggregate; it is never optional.
type Options struct {
	UserID      int64
	Keyword     string
	OwnedOnly   bool
	ShowProxies bool
}

// Query is a compiled search: one parameterized SQL statement and its
// arguments, with UserID bound as $1.
type Query struct {
	SQL    string
	Args   []any
	Facets Facets
	Fuzzy  string
}

// Fields the fuzzy term is compared against. One similarity call per
// field, folded with GREATEST.
var fuzzyFields = []string{
	"c.id",
	"c.card_code",
	"c.name",
	"c.effect",
	"c.category",
	"c.trigger_effect",
	"array_to_string(c.attributes, ' ')",
	"array_to_string(c.types, ' ')",
}

// Compile parses the keyword and builds the full search statement:
// facet predicates ANDed with the fuzzy predicate, the caller's
// ownership aggregate left-joined, pack codes aggregated per card, and
// the tie-break ordering fixed so identical searches return identical
// row order.
func Compile(opts Options) Query {
	facets, fuzzy := Parse(opts.Keyword)

	b := NewBuilder(2) // $1 is the user id in the ownership subquery

	if fuzzy != "" {
		parts := make([]string, len(fuzzyFields))
		args := make([]any, len(fuzzyFields))
		for i, f := range fuzzyFields {
			parts[i] = "similarity(" + f + ", ?)"
			args[i] = fuzzy
		}
		threshold := strconv.FormatFloat(SimilarityThreshold, 'g', -1, 64)
		b.And("GREATEST("+strings.Join(parts, ", ")+") > "+threshold, args...)
	}
	if facets.ID != "" {
		id := escapeLike(facets.ID)
		b.And("(c.id ILIKE ? || '%' OR c.card_code ILIKE ? || '%')", id, id)
	}
	if facets.Pack != "" {
		b.And("EXISTS (SELECT 1 FROM card_packs pa WHERE pa.card_id = c.id AND pa.pack_code ILIKE ? || '%')", escapeLike(facets.Pack))
	}
	if facets.Color != "" {
		b.And("c.color ILIKE ?", escapeLike(facets.Color))
	}
	if facets.Exact != "" {
		exact := escapeLike(facets.Exact)
		b.And("(c.name ILIKE '%' || ? || '%' OR c.effect ILIKE '%' || ? || '%')", exact, exact)
	}
	if opts.OwnedOnly {
		if opts.ShowProxies {
			b.And("COALESCE(oc.owned_count, 0) + COALESCE(oc.proxy_count, 0) > 0")
		} else {
			b.And("COALESCE(oc.owned_count, 0) > 0")
		}
	}

	var order []string
	if facets.Color != "" {
		order = append(order, b.Bind("(c.color = ?) DESC", facets.Color))
	}
	if facets.ID != "" {
		id := escapeLike(facets.ID)
		order = append(order, b.Bind("(c.id LIKE ? || '%' OR c.card_code LIKE ? || '%') DESC", id, id))
	}
	if fuzzy != "" {
		order = append(order, b.Bind("GREATEST(similarity(c.name, ?), similarity(c.id, ?), similarity(c.card_code, ?)) DESC", fuzzy, fuzzy, fuzzy))
	}
	order = append(order, "c.name ASC")

	var sb strings.Builder
	sb.WriteString(selectHead)
	if where, ok := b.Where(); ok {
		sb.WriteString("WHERE ")
		sb.WriteString(where)
		sb.WriteString("\n")
	}
	sb.WriteString("GROUP BY c.id, oc.owned_count, oc.proxy_count\n")
	sb.WriteString("ORDER BY " + strings.Join(order, ", ") + "\n")
	sb.WriteString("LIMIT " + strconv.Itoa(MaxResults))

	args := append([]any{opts.UserID}, b.Args()...)

	return Query{SQL: sb.String(), Args: args, Facets: facets, Fuzzy: fuzzy}
}

// escapeLike neutralizes LIKE/ILIKE metacharacters in a facet value so
// user input matches literally. Postgres treats backslash as the
// default escape character.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

const selectHead = `SELECT c.id, c.card_code, c.name, c.rarity, c.category, c.color,
       c.cost, c.power, c.counter, c.effect, c.trigger_effect, c.img_url,
       c.attributes, c.types, c.block,
       COALESCE(oc.owned_count, 0) AS owned_count,
       COALESCE(oc.proxy_count, 0) AS proxy_count,
       COALESCE(string_agg(DISTINCT cp.pack_code, ', '), '') AS packs
FROM cards c
LEFT JOIN card_packs cp ON cp.card_id = c.id
LEFT JOIN (
    SELECT card_id,
           COUNT(*) FILTER (WHERE NOT is_proxy) AS owned_count,
           COUNT(*) FILTER (WHERE is_proxy)     AS proxy_count
    FROM owned_cards
    WHERE user_id = $1
    GROUP BY card_id
) oc ON oc.card_id = c.id
`
