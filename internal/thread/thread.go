// Package thread reconstructs the nested reply structure of a post's
// flat comment records. Comments point at their parent by id; everything
// here derives from those pointers on demand and nothing is stored.
package thread

import (
	"sort"

	"moonglow/internal/models"
)

// MaxIndentLevel caps how far replies indent visually. Nesting depth
// itself is unlimited; only the indent stops growing.
const MaxIndentLevel = 5

// index groups comments by parent and remembers which ids exist.
type index struct {
	children map[int64][]models.Comment
	exists   map[int64]bool
}

func buildIndex(comments []models.Comment) index {
	idx := index{
		children: make(map[int64][]models.Comment),
		exists:   make(map[int64]bool, len(comments)),
	}
	for _, c := range comments {
		idx.exists[c.ID] = true
	}
	for _, c := range comments {
		parent := int64(0)
		if c.ParentID != nil && idx.exists[*c.ParentID] {
			parent = *c.ParentID
		}
		idx.children[parent] = append(idx.children[parent], c)
	}
	return idx
}

// Linearize flattens comments into display order: top-level comments by
// votes descending, each followed by its replies depth-first with
// siblings by date ascending. Comments whose parent id does not exist
// are treated as top-level. Every comment appears exactly once, even if
// the parent pointers form a cycle.
func Linearize(comments []models.Comment) []models.Comment {
	idx := buildIndex(comments)

	roots := append([]models.Comment(nil), idx.children[0]...)
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].Votes > roots[j].Votes
	})

	out := make([]models.Comment, 0, len(comments))
	visited := make(map[int64]bool, len(comments))
	var walk func(c models.Comment)
	walk = func(c models.Comment) {
		if visited[c.ID] {
			return
		}
		visited[c.ID] = true
		out = append(out, c)
		replies := append([]models.Comment(nil), idx.children[c.ID]...)
		sort.SliceStable(replies, func(i, j int) bool {
			return replies[i].Date.Before(replies[j].Date)
		})
		for _, r := range replies {
			walk(r)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

// Level returns the nesting depth of a comment: 0 for top-level, one
// more per ancestor. Dangling parent pointers stop the walk, as does a
// cycle.
func Level(comments []models.Comment, id int64) int {
	byID := make(map[int64]models.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	level := 0
	visited := map[int64]bool{id: true}
	cur, ok := byID[id]
	for ok && cur.ParentID != nil {
		parent, found := byID[*cur.ParentID]
		if !found || visited[parent.ID] {
			break
		}
		visited[parent.ID] = true
		level++
		cur = parent
	}
	return level
}

// Indent converts a nesting level to a display indent, capped at
// MaxIndentLevel.
func Indent(level int) int {
	if level > MaxIndentLevel {
		return MaxIndentLevel
	}
	return level
}

// SubtreeIDs returns the comment's id plus the ids of all its
// transitive replies. This is the set a cascading delete removes.
func SubtreeIDs(comments []models.Comment, id int64) []int64 {
	idx := buildIndex(comments)
	if !idx.exists[id] {
		return nil
	}
	out := []int64{}
	visited := make(map[int64]bool)
	var collect func(id int64)
	collect = func(id int64) {
		if visited[id] {
			return
		}
		visited[id] = true
		out = append(out, id)
		for _, c := range idx.children[id] {
			collect(c.ID)
		}
	}
	collect(id)
	return out
}

// ReplyIDs returns the ids of all transitive replies, excluding the
// comment itself. This is the set a collapse toggle hides.
func ReplyIDs(comments []models.Comment, id int64) []int64 {
	sub := SubtreeIDs(comments, id)
	if len(sub) == 0 {
		return nil
	}
	return sub[1:]
}

// HasReplies reports whether any comment points at id as its parent.
func HasReplies(comments []models.Comment, id int64) bool {
	for _, c := range comments {
		if c.ParentID != nil && *c.ParentID == id {
			return true
		}
	}
	return false
}
