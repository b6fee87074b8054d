package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlainKeyword(t *testing.T) {
	f, fuzzy := Parse("zoro")

	assert.Equal(t, Facets{}, f)
	assert.Equal(t, "zoro", fuzzy)
}

func TestParseSingleFacet(t *testing.T) {
	f, fuzzy := Parse("id:ST01-001")

	assert.Equal(t, "ST01-001", f.ID)
	assert.Empty(t, fuzzy)
}

func TestParseFacetWithFuzzyText(t *testing.T) {
	f, fuzzy := Parse("zoro color:red")

	assert.Equal(t, "red", f.Color)
	assert.Equal(t, "zoro", fuzzy)
}

func TestParseMultipleFacets(t *testing.T) {
	f, fuzzy := Parse("pack:OP01 color:red id:ST01-")

	assert.Equal(t, "OP01", f.Pack)
	assert.Equal(t, "red", f.Color)
	assert.Equal(t, "ST01-", f.ID)
	assert.Empty(t, fuzzy)
}

func TestParseLastOccurrenceWins(t *testing.T) {
	f, _ := Parse("color:red color:green")

	assert.Equal(t, "green", f.Color)
}

func TestParseQuotedValue(t *testing.T) {
	f, fuzzy := Parse(`pack:"Romance Dawn" luffy`)

	assert.Equal(t, "Romance Dawn", f.Pack)
	assert.Equal(t, "luffy", fuzzy)
}

func TestParseKeyIsCaseInsensitive(t *testing.T) {
	f, fuzzy := Parse("COLOR:Red zoro")

	assert.Equal(t, "Red", f.Color)
	assert.Equal(t, "zoro", fuzzy)
}

func TestParseUnrecognizedKeyStaysInFuzzyText(t *testing.T) {
	f, fuzzy := Parse("foo:bar zoro")

	assert.Equal(t, Facets{}, f)
	assert.Equal(t, "foo:bar zoro", fuzzy)
}

func TestParseEmptyQuotedValueIsAbsent(t *testing.T) {
	f, fuzzy := Parse(`color:"" zoro`)

	assert.Empty(t, f.Color)
	assert.Equal(t, "zoro", fuzzy)
}

func TestParseEmptyValueDoesNotClobberEarlierFacet(t *testing.T) {
	f, _ := Parse(`color:red color:""`)

	assert.Equal(t, "red", f.Color)
}

func TestParseBareKeyStaysInFuzzyText(t *testing.T) {
	f, fuzzy := Parse("color: zoro")

	assert.Empty(t, f.Color)
	assert.Equal(t, "color: zoro", fuzzy)
}

func TestParseFacetValueRemovedExactlyOnce(t *testing.T) {
	_, fuzzy := Parse("zoro id:ST01 zoro")

	assert.Equal(t, "zoro zoro", fuzzy)
}

func TestParseExactFacet(t *testing.T) {
	f, fuzzy := Parse(`exact:"draw 2" trigger`)

	assert.Equal(t, "draw 2", f.Exact)
	assert.Equal(t, "trigger", fuzzy)
}
