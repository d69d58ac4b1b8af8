package service

import (
	"sort"

	"moonglow/internal/models"
)

// HighlightReason names why a post made the home highlights.
type HighlightReason string

const (
	ReasonFeatured  HighlightReason = "featured"
	ReasonTopVoted  HighlightReason = "top-voted"
	ReasonTopViewed HighlightReason = "top-viewed"
)

// Highlight is a post paired with every reason it qualified for.
type Highlight struct {
	Post    models.Post
	Reasons []HighlightReason
}

// HomeHighlights selects the posts to spotlight: everything featured,
// the top limit posts by votes (score above zero), and the top limit by
// views (at least one view). A post earning several reasons appears
// once with all of them, and posts with more reasons sort first.
func HomeHighlights(posts []models.Post, limit int) []Highlight {
	if limit <= 0 {
		limit = 2
	}
	reasons := make(map[int64][]HighlightReason, len(posts))

	for _, p := range posts {
		if p.IsFeatured {
			reasons[p.ID] = append(reasons[p.ID], ReasonFeatured)
		}
	}

	byVotes := append([]models.Post(nil), posts...)
	sort.SliceStable(byVotes, func(i, j int) bool {
		return byVotes[i].Votes > byVotes[j].Votes
	})
	for i := 0; i < len(byVotes) && i < limit; i++ {
		if byVotes[i].Votes > 0 {
			reasons[byVotes[i].ID] = append(reasons[byVotes[i].ID], ReasonTopVoted)
		}
	}

	byViews := append([]models.Post(nil), posts...)
	sort.SliceStable(byViews, func(i, j int) bool {
		return byViews[i].Views > byViews[j].Views
	})
	for i := 0; i < len(byViews) && i < limit; i++ {
		if byViews[i].Views > 0 {
			reasons[byViews[i].ID] = append(reasons[byViews[i].ID], ReasonTopViewed)
		}
	}

	var out []Highlight
	for _, p := range posts {
		if r := reasons[p.ID]; len(r) > 0 {
			out = append(out, Highlight{Post: p, Reasons: r})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Reasons) > len(out[j].Reasons)
	})
	return out
}
