package query

import (
	"strconv"
	"strings"
	"time"

	"moonglow/internal/models"
)

// Evaluator decides whether a post satisfies a condition. It needs the
// live category list to resolve category names to ids.
type Evaluator struct {
	categories func() []models.Category
}

// NewEvaluator creates an evaluator. categories is called on each
// category condition so renames are picked up immediately.
func NewEvaluator(categories func() []models.Category) *Evaluator {
	return &Evaluator{categories: categories}
}

// Matches reports whether the post satisfies the condition. Conditions
// on unknown fields match everything.
func (e *Evaluator) Matches(post *models.Post, cond Condition) bool {
	switch strings.ToLower(cond.Field) {
	case "date":
		return matchDate(post.Date, cond)
	case "lastupdated":
		t := post.Date
		if post.LastUpdated != nil {
			t = *post.LastUpdated
		}
		return matchDate(t, cond)
	case "category":
		return post.CategoryID == e.resolveCategory(cond.Value)
	case "tag":
		return post.HasTag(cond.Value)
	case "votes":
		return matchNumber(post.Votes, cond)
	case "views":
		return matchNumber(post.Views, cond)
	case "comments":
		return matchNumber(post.CommentCount(), cond)
	case "isfeatured":
		featured := 0
		if post.IsFeatured {
			featured = 1
		}
		return matchNumber(featured, cond)
	case "title":
		return containsFold(post.Title, cond.Value)
	case "content":
		return containsFold(post.Content, cond.Value)
	case "author":
		return containsFold(post.Author.Username, cond.Value)
	default:
		return true
	}
}

// resolveCategory maps a category name to its id, ignoring case. An
// unknown name resolves to an id no post can have, so the condition
// matches nothing.
func (e *Evaluator) resolveCategory(name string) int64 {
	for _, c := range e.categories() {
		if strings.EqualFold(c.Name, name) {
			return c.ID
		}
	}
	return -1
}

// matchDate compares a post timestamp against a date-valued condition.
// Equality operators test membership in the year/month/day range; the
// relational operators compare against the range start. A value whose
// year cannot be parsed matches under "=" and "!=" but fails the
// relational operators.
func matchDate(t time.Time, cond Condition) bool {
	r, ok := ParseDateRange(cond.Value)
	switch cond.Operator {
	case "=", "":
		return !ok || r.Contains(t)
	case "!=":
		return !ok || !r.Contains(t)
	case ">":
		return ok && t.After(r.Start)
	case ">=":
		return ok && !t.Before(r.Start)
	case "<":
		return ok && t.Before(r.Start)
	case "<=":
		return ok && !t.After(r.Start)
	default:
		return true
	}
}

// matchNumber compares a numeric post field against the condition
// value. A non-numeric value falls back to substring containment on the
// decimal form of the stored number, whatever the operator.
func matchNumber(stored int, cond Condition) bool {
	want, err := strconv.Atoi(cond.Value)
	if err != nil {
		return containsFold(strconv.Itoa(stored), cond.Value)
	}
	switch cond.Operator {
	case "=", "":
		return stored == want
	case "!=":
		return stored != want
	case ">":
		return stored > want
	case ">=":
		return stored >= want
	case "<":
		return stored < want
	case "<=":
		return stored <= want
	default:
		return true
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
