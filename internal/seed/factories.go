// Package seed provides the default demo data installed into an empty
// store, plus factories for generating richer development datasets.
package seed

import (
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"moonglow/internal/models"
)

// Factory builds randomized domain entities. It is a thin helper for
// development presets and tests; nothing here persists anything.
type Factory struct {
	rand   *rand.Rand
	nextID int64
}

// NewFactory creates a factory with a deterministic id sequence and the
// given random seed.
func NewFactory(seedValue int64) *Factory {
	gofakeit.Seed(seedValue)
	return &Factory{
		rand:   rand.New(rand.NewSource(seedValue)),
		nextID: time.Now().Add(-365 * 24 * time.Hour).UnixMilli(),
	}
}

func (f *Factory) id() int64 {
	f.nextID++
	return f.nextID
}

// User builds a visitor account with a fake name.
func (f *Factory) User(overrides ...func(*models.User)) models.User {
	user := models.User{
		ID:       f.id(),
		Username: gofakeit.Username(),
		Password: gofakeit.Password(true, true, true, false, false, 8),
		Role:     models.RoleVisitor,
	}
	for _, o := range overrides {
		o(&user)
	}
	return user
}

// Post builds a markdown post by the given author with a creation date
// spread over the past maxDays days.
func (f *Factory) Post(author models.User, maxDays int, overrides ...func(*models.Post)) models.Post {
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rand.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute
	post := models.Post{
		ID:         f.id(),
		CategoryID: models.UncategorizedID,
		Author:     author,
		Title:      gofakeit.Sentence(5),
		Format:     models.FormatMarkdown,
		Content:    gofakeit.Paragraph(2, 4, 8, "\n\n"),
		Tags:       []string{gofakeit.Word(), gofakeit.Word()},
		Date:       time.Now().Add(-back),
		Views:      f.rand.Intn(200),
		Comments:   []models.Comment{},
	}
	for _, o := range overrides {
		o(&post)
	}
	return post
}

// Comment builds a comment by the given author. parentID may be nil.
func (f *Factory) Comment(author models.User, parentID *int64, overrides ...func(*models.Comment)) models.Comment {
	comment := models.Comment{
		ID:       f.id(),
		UserID:   author.ID,
		Username: author.Username,
		Text:     gofakeit.Sentence(10),
		Date:     time.Now().Add(-time.Duration(f.rand.Intn(72)) * time.Hour),
		ParentID: parentID,
	}
	for _, o := range overrides {
		o(&comment)
	}
	return comment
}

// Posts builds n posts by the given author.
func (f *Factory) Posts(author models.User, n, maxDays int) []models.Post {
	out := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, f.Post(author, maxDays))
	}
	return out
}
