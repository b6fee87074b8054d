package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKeyword(t *testing.T) {
	assert.NoError(t, ValidateKeyword("zoro"))
	assert.NoError(t, ValidateKeyword(`pack:"Romance Dawn"`))

	assert.ErrorIs(t, ValidateKeyword(""), ErrEmptyKeyword)
	assert.ErrorIs(t, ValidateKeyword("   "), ErrEmptyKeyword)
	assert.ErrorIs(t, ValidateKeyword(strings.Repeat("a", MaxKeywordLen+1)), ErrKeywordTooLong)
	assert.ErrorIs(t, ValidateKeyword(`pack:"Romance`), ErrUnbalancedQuotes)
}

func TestCompileFuzzyOnly(t *testing.T) {
	q := Compile(Options{UserID: 7, Keyword: "zoro"})

	require.Equal(t, "zoro", q.Fuzzy)
	assert.Equal(t, int64(7), q.Args[0])

	// eight similarity fields in the predicate, three in the ordering
	assert.Len(t, q.Args, 1+8+3)
	assert.Contains(t, q.SQL, "GREATEST(similarity(c.id, $2)")
	assert.Contains(t, q.SQL, "> 0.15")
	assert.Contains(t, q.SQL, "ORDER BY GREATEST(similarity(c.name, $10), similarity(c.id, $11), similarity(c.card_code, $12)) DESC, c.name ASC")
	assert.Contains(t, q.SQL, "LIMIT 50")
}

func TestCompileIDFacetOnly(t *testing.T) {
	q := Compile(Options{UserID: 1, Keyword: "id:ST01-001"})

	assert.Empty(t, q.Fuzzy)
	assert.Equal(t, "ST01-001", q.Facets.ID)

	// user id + two WHERE params + two ORDER params
	assert.Len(t, q.Args, 5)
	assert.Contains(t, q.SQL, "c.id ILIKE $2 || '%' OR c.card_code ILIKE $3 || '%'")
	// exact prefix matches rank first, then name for determinism
	assert.Contains(t, q.SQL, "ORDER BY (c.id LIKE $4 || '%' OR c.card_code LIKE $5 || '%') DESC, c.name ASC")
}

func TestCompileColorIsCaseInsensitive(t *testing.T) {
	upper := Compile(Options{UserID: 1, Keyword: "color:Red"})
	lower := Compile(Options{UserID: 1, Keyword: "color:red"})

	// identical statement, only the bound value differs in case; ILIKE
	// makes the predicate case-insensitive
	assert.Equal(t, upper.SQL, lower.SQL)
	assert.Contains(t, upper.SQL, "c.color ILIKE $2")
}

func TestCompileAllFacets(t *testing.T) {
	q := Compile(Options{UserID: 3, Keyword: "pack:OP01 color:red id:ST01-"})

	assert.Empty(t, q.Fuzzy)
	assert.Contains(t, q.SQL, "pa.pack_code ILIKE")
	assert.Contains(t, q.SQL, "c.color ILIKE")
	assert.Contains(t, q.SQL, "c.card_code ILIKE")
	// no similarity ordering without fuzzy text
	assert.NotContains(t, q.SQL, "ORDER BY GREATEST")
	// color tie-break comes before the id tie-break
	assert.Less(t,
		strings.Index(q.SQL, "(c.color = "),
		strings.Index(q.SQL, "(c.id LIKE "),
	)
	assert.True(t, strings.HasSuffix(q.SQL, "LIMIT 50"))
}

func TestCompileFuzzyPlusColor(t *testing.T) {
	q := Compile(Options{UserID: 1, Keyword: "zoro color:red"})

	assert.Equal(t, "zoro", q.Fuzzy)
	assert.Equal(t, "red", q.Facets.Color)
	assert.Contains(t, q.SQL, "GREATEST(similarity")
	assert.Contains(t, q.SQL, "c.color ILIKE")

	// verbatim color matches order ahead of the similarity score
	orderBy := q.SQL[strings.Index(q.SQL, "ORDER BY"):]
	assert.Less(t,
		strings.Index(orderBy, "(c.color = "),
		strings.Index(orderBy, "GREATEST"),
	)
}

func TestCompileOwnedOnly(t *testing.T) {
	q := Compile(Options{UserID: 1, Keyword: "zoro", OwnedOnly: true})
	assert.Contains(t, q.SQL, "COALESCE(oc.owned_count, 0) > 0")
	assert.NotContains(t, q.SQL, "proxy_count, 0) > 0")

	q = Compile(Options{UserID: 1, Keyword: "zoro", OwnedOnly: true, ShowProxies: true})
	assert.Contains(t, q.SQL, "COALESCE(oc.owned_count, 0) + COALESCE(oc.proxy_count, 0) > 0")
}

func TestCompileShowProxiesAloneIsDisplayHint(t *testing.T) {
	with := Compile(Options{UserID: 1, Keyword: "zoro", ShowProxies: true})
	without := Compile(Options{UserID: 1, Keyword: "zoro"})

	assert.Equal(t, without.SQL, with.SQL)
}

func TestCompileExactFacet(t *testing.T) {
	q := Compile(Options{UserID: 1, Keyword: `exact:"draw 2"`})

	assert.Contains(t, q.SQL, "c.name ILIKE '%' || $2 || '%' OR c.effect ILIKE '%' || $3 || '%'")
	assert.Equal(t, []any{int64(1), "draw 2", "draw 2"}, q.Args)
}

func TestCompileNoNarrowing(t *testing.T) {
	// an empty quoted facet strips to nothing: no WHERE clause at all
	q := Compile(Options{UserID: 1, Keyword: `color:""`})

	assert.NotContains(t, q.SQL, "WHERE c.")
	assert.Contains(t, q.SQL, "GROUP BY c.id, oc.owned_count, oc.proxy_count")
	assert.Contains(t, q.SQL, "ORDER BY c.name ASC")
	assert.Equal(t, []any{int64(1)}, q.Args)
}

func TestCompileEscapesLikeMetacharacters(t *testing.T) {
	// "%" and "_" in a facet value are data, not wildcards; "id:ST%"
	// must not widen the prefix match
	q := Compile(Options{UserID: 1, Keyword: `id:ST%_`})
	assert.Equal(t, "ST%_", q.Facets.ID)
	assert.Equal(t, []any{int64(1), `ST\%\_`, `ST\%\_`, `ST\%\_`, `ST\%\_`}, q.Args)

	q = Compile(Options{UserID: 1, Keyword: "pack:OP_1"})
	assert.Equal(t, `OP\_1`, q.Args[1])

	q = Compile(Options{UserID: 1, Keyword: `exact:"100%"`})
	assert.Equal(t, []any{int64(1), `100\%`, `100\%`}, q.Args)
}

func TestCompileColorOrderingBindsRawValue(t *testing.T) {
	q := Compile(Options{UserID: 1, Keyword: `color:red%`})

	// the ILIKE predicate gets the escaped value, the equality tie-break
	// compares the value as written
	assert.Equal(t, `red\%`, q.Args[1])
	assert.Equal(t, "red%", q.Args[2])
}

func TestCompileIsDeterministic(t *testing.T) {
	opts := Options{UserID: 9, Keyword: "zoro color:red id:OP01"}

	first := Compile(opts)
	second := Compile(opts)

	assert.Equal(t, first.SQL, second.SQL)
	assert.Equal(t, first.Args, second.Args)
}

func TestCompileScopesOwnershipToUser(t *testing.T) {
	a := Compile(Options{UserID: 1, Keyword: "zoro"})
	b := Compile(Options{UserID: 2, Keyword: "zoro"})

	// same statement, different user binding: rows are shared, counts are not
	assert.Equal(t, a.SQL, b.SQL)
	assert.Equal(t, int64(1), a.Args[0])
	assert.Equal(t, int64(2), b.Args[0])
	assert.Contains(t, a.SQL, "WHERE user_id = $1")
}
