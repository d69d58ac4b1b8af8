package query

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"moonglow/internal/models"
)

// SortKey selects the post attribute list views order by.
type SortKey string

const (
	SortDate     SortKey = "date"
	SortVotes    SortKey = "votes"
	SortViews    SortKey = "views"
	SortComments SortKey = "comments"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// FilterState is the full filter configuration of a list view. A zero
// Category means all categories.
type FilterState struct {
	Category   int64
	Search     string
	Structured []Condition
	SortBy     SortKey
	Order      SortOrder
}

// RenderFunc receives the final post list plus the free-text term that
// survived parsing, for highlighting. Implementations own all
// presentation; the engine never touches rendering itself.
type RenderFunc func(posts []models.Post, searchTerm string)

// Engine combines category filtering, structured conditions, free-text
// search and sorting over a live post source, pushing each recomputed
// view through a render callback.
type Engine struct {
	source func() []models.Post
	eval   *Evaluator
	state  FilterState
	render RenderFunc
}

// NewEngine creates an engine over the given post and category sources.
func NewEngine(source func() []models.Post, categories func() []models.Category, render RenderFunc) *Engine {
	return &Engine{
		source: source,
		eval:   NewEvaluator(categories),
		state: FilterState{
			SortBy: SortDate,
			Order:  OrderDesc,
		},
		render: render,
	}
}

// State returns a copy of the current filter configuration.
func (e *Engine) State() FilterState {
	out := e.state
	out.Structured = append([]Condition(nil), e.state.Structured...)
	return out
}

// SetCategory restricts the view to one category; zero clears it.
func (e *Engine) SetCategory(id int64) {
	e.state.Category = id
}

// SetSearch replaces the raw search input.
func (e *Engine) SetSearch(input string) {
	e.state.Search = input
}

// SetSort replaces the sort key and order.
func (e *Engine) SetSort(key SortKey, order SortOrder) {
	e.state.SortBy = key
	e.state.Order = order
}

// AddFilterInput parses a raw input, merges its structured tokens into
// the pinned conditions (skipping exact duplicates) and replaces the
// free-text search with the remainder.
func (e *Engine) AddFilterInput(input string) {
	q := Parse(input)
	e.state.Structured = Dedupe(append(e.state.Structured, q.Structured...))
	e.state.Search = q.Text
}

// AddCondition pins a single condition built outside the search box,
// assigning it a fresh id. Exact duplicates are dropped.
func (e *Engine) AddCondition(field, operator, value string) {
	cond := Condition{
		ID:       uuid.NewString(),
		Field:    strings.ToLower(field),
		Operator: operator,
		Value:    value,
	}
	if cond.Operator == "" {
		cond.Operator = "="
	}
	e.state.Structured = Dedupe(append(e.state.Structured, cond))
}

// RemoveCondition unpins the condition with the given id.
func (e *Engine) RemoveCondition(id string) {
	out := e.state.Structured[:0]
	for _, c := range e.state.Structured {
		if c.ID != id {
			out = append(out, c)
		}
	}
	e.state.Structured = out
}

// UpdateView recomputes the visible post list from the current state,
// invokes the render callback, and returns the list. The source data is
// never mutated; the result is a fresh slice.
func (e *Engine) UpdateView() []models.Post {
	q := Parse(e.state.Search)
	conds := append(append([]Condition(nil), q.Structured...), e.state.Structured...)
	keywords := strings.Fields(strings.ToLower(q.Text))

	var out []models.Post
	for _, post := range e.source() {
		if e.state.Category != 0 && post.CategoryID != e.state.Category {
			continue
		}
		if !e.matchesAll(&post, conds) {
			continue
		}
		if !matchesKeywords(&post, keywords) {
			continue
		}
		out = append(out, post)
	}

	sortPosts(out, e.state.SortBy)
	if e.state.Order == OrderDesc {
		reverse(out)
	}

	if e.render != nil {
		e.render(out, q.Text)
	}
	return out
}

func (e *Engine) matchesAll(post *models.Post, conds []Condition) bool {
	for _, c := range conds {
		if !e.eval.Matches(post, c) {
			return false
		}
	}
	return true
}

// matchesKeywords requires every free-text keyword to appear in the
// post's combined title and content.
func matchesKeywords(post *models.Post, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	text := strings.ToLower(post.Title + " " + post.Content)
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// sortPosts orders ascending by the sort key. Date order is id order,
// since ids are creation timestamps; the sort is stable so ties keep
// their relative positions.
func sortPosts(posts []models.Post, key SortKey) {
	sort.SliceStable(posts, func(i, j int) bool {
		switch key {
		case SortVotes:
			return posts[i].Votes < posts[j].Votes
		case SortViews:
			return posts[i].Views < posts[j].Views
		case SortComments:
			return posts[i].CommentCount() < posts[j].CommentCount()
		default:
			return posts[i].ID < posts[j].ID
		}
	})
}

func reverse(posts []models.Post) {
	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}
}
