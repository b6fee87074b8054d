package search

import (
	"strconv"
	"strings"
)

// Builder collects WHERE predicates and their bound parameters in the
// order they are added. Fragments are written with ? placeholders and
// rewritten to $n positions here, so callers never track parameter
// indexes by hand.
type Builder struct {
	preds []string
	args  []any
	next  int
}

// NewBuilder returns a builder whose first placeholder becomes $start.
// Pass 2 when $1 is already bound by the enclosing query.
func NewBuilder(start int) *Builder {
	return &Builder{next: start}
}

// Bind rewrites the fragment's ? placeholders to positional parameters,
// records the arguments, and returns the rewritten fragment. Arguments
// are consumed left to right, one per placeholder.
func (b *Builder) Bind(frag string, args ...any) string {
	var sb strings.Builder
	for _, c := range []byte(frag) {
		if c == '?' {
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(b.next))
			b.next++
			continue
		}
		sb.WriteByte(c)
	}
	b.args = append(b.args, args...)
	return sb.String()
}

// And adds a predicate to the WHERE clause.
func (b *Builder) And(frag string, args ...any) {
	b.preds = append(b.preds, b.Bind(frag, args...))
}

// Where returns the assembled WHERE clause body. ok is false when no
// predicate was added (no narrowing).
func (b *Builder) Where() (clause string, ok bool) {
	if len(b.preds) == 0 {
		return "", false
	}
	return strings.Join(b.preds, "\n  AND "), true
}

// Args returns every bound argument in placeholder order.
func (b *Builder) Args() []any {
	return b.args
}
