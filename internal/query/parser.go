// Package query implements the structured search language used by the
// post list views: free text mixed with field:value tokens, evaluated
// against posts and combined with category filtering and sorting.
package query

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// tokenPattern matches one structured token inside a search input:
// a field name, an optional run of operator characters, and a value
// running to the next space.
var tokenPattern = regexp.MustCompile(`(\w+):([<>=!]*)(\S+)`)

// Condition is one structured filter: field, operator, value. The ID is
// synthetic and only identifies the condition for later removal.
type Condition struct {
	ID       string `json:"id"`
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Query is the result of parsing a raw search input.
type Query struct {
	// Text is the free-text remainder after structured tokens are
	// removed, trimmed of surrounding whitespace.
	Text string
	// Structured holds the extracted conditions in input order.
	Structured []Condition
}

// Parse extracts structured tokens from a raw search input. Field names
// are lowercased; a token with no operator characters defaults to "=".
// Everything that is not a structured token stays in Text.
func Parse(input string) Query {
	var conds []Condition
	rest := tokenPattern.ReplaceAllStringFunc(input, func(token string) string {
		parts := tokenPattern.FindStringSubmatch(token)
		op := parts[2]
		if op == "" {
			op = "="
		}
		conds = append(conds, Condition{
			ID:       uuid.NewString(),
			Field:    strings.ToLower(parts[1]),
			Operator: op,
			Value:    parts[3],
		})
		return ""
	})
	return Query{Text: strings.TrimSpace(rest), Structured: conds}
}

// String rebuilds a search input from the query. Parsing the result
// yields the same text and conditions.
func (q Query) String() string {
	parts := make([]string, 0, len(q.Structured)+1)
	for _, c := range q.Structured {
		op := c.Operator
		if op == "=" {
			op = ""
		}
		parts = append(parts, c.Field+":"+op+c.Value)
	}
	if q.Text != "" {
		parts = append(parts, q.Text)
	}
	return strings.Join(parts, " ")
}

// Dedupe drops conditions whose field, operator and value all repeat an
// earlier condition. IDs are ignored.
func Dedupe(conds []Condition) []Condition {
	seen := make(map[string]bool, len(conds))
	out := conds[:0:0]
	for _, c := range conds {
		key := c.Field + "\x00" + c.Operator + "\x00" + c.Value
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
