// Package render turns posts and comment threads into display-ready
// bundles of HTML strings and layout hints. It has no notion of a
// screen; callers plug the bundles into whatever surface they render.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"moonglow/internal/models"
	"moonglow/internal/thread"
)

// Renderer converts markup to HTML. Markdown goes through goldmark with
// GitHub-flavored extensions; raw HTML content is sanitized.
type Renderer struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

// New creates a renderer.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		ugc:    bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// ContentHTML renders a post's body. Markdown posts are converted;
// anything else is treated as HTML from a rich-text editor and
// sanitized.
func (r *Renderer) ContentHTML(post *models.Post) (string, error) {
	if post.Format == models.FormatMarkdown {
		return r.markdown(post.Content)
	}
	return r.ugc.Sanitize(post.Content), nil
}

// CommentHTML renders a comment body, which is always markdown.
func (r *Renderer) CommentHTML(text string) (string, error) {
	return r.markdown(text)
}

func (r *Renderer) markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// CommentView is one linearized comment ready for display.
type CommentView struct {
	Comment    models.Comment
	HTML       string
	Level      int
	Indent     int
	HasReplies bool
}

// PostDetail is everything a detail view needs for one post.
type PostDetail struct {
	Post         models.Post
	HTML         string
	CategoryName string
	Comments     []CommentView
}

// PostDetail builds the full detail bundle: rendered body, resolved
// category name and the linearized comment thread with indent hints.
func (r *Renderer) PostDetail(post *models.Post, categoryName string) (*PostDetail, error) {
	body, err := r.ContentHTML(post)
	if err != nil {
		return nil, err
	}
	detail := &PostDetail{
		Post:         *post,
		HTML:         body,
		CategoryName: categoryName,
	}
	for _, c := range thread.Linearize(post.Comments) {
		commentHTML, err := r.CommentHTML(c.Text)
		if err != nil {
			return nil, err
		}
		level := thread.Level(post.Comments, c.ID)
		detail.Comments = append(detail.Comments, CommentView{
			Comment:    c,
			HTML:       commentHTML,
			Level:      level,
			Indent:     thread.Indent(level),
			HasReplies: thread.HasReplies(post.Comments, c.ID),
		})
	}
	return detail, nil
}

// Excerpt strips all markup from rendered HTML, collapses whitespace
// and truncates to at most max runes, appending an ellipsis when text
// was cut.
func (r *Renderer) Excerpt(renderedHTML string, max int) string {
	text := strings.TrimSpace(r.strict.Sanitize(renderedHTML))
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
