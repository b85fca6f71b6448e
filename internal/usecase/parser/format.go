package parser

import (
	"sort"
	"strings"

	"travel-agent/internal/domain/entity"
)

// Format renders action in canonical form with keywords sorted, such that
// Parse(Format(a)) yields a again.
func Format(action entity.ParsedAction) string {
	keys := make([]string, 0, len(action.Arguments))
	for k := range action.Arguments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(action.Name)
	b.WriteByte('(')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(action.Arguments[k].Canonical())
	}
	b.WriteByte(')')
	return b.String()
}
