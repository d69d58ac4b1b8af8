package service

import (
	"context"
	"strings"

	"moonglow/internal/models"
	"moonglow/internal/observability"
	"moonglow/internal/store"
)

type CategoryService struct {
	store *store.Store
	log   *observability.Logger
}

func NewCategoryService(st *store.Store, log *observability.Logger) *CategoryService {
	return &CategoryService{store: st, log: log.Component("categories")}
}

// Add creates a new category. Names must be non-empty and unique
// ignoring case.
func (s *CategoryService) Add(ctx context.Context, actor *models.User, name string) (*models.Category, error) {
	if !actor.CanPublish() {
		return nil, models.NewUnauthorizedError("only editors can manage categories")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("category name is required")
	}
	if s.categoryByName(name) != nil {
		return nil, models.NewValidationError("category already exists")
	}
	cat := models.Category{ID: nextID(categoryIDs(s.store.Categories)), Name: name}
	s.store.Categories = append(s.store.Categories, cat)
	if err := s.store.SaveCategories(ctx); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Rename changes a category's display name. Query conditions written
// against the old name stop matching; stored posts are untouched since
// they reference the id. Renaming an unknown id is a no-op.
func (s *CategoryService) Rename(ctx context.Context, actor *models.User, id int64, name string) error {
	if !actor.CanPublish() {
		return models.NewUnauthorizedError("only editors can manage categories")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("category name is required")
	}
	cat := s.store.CategoryByID(id)
	if cat == nil {
		return nil
	}
	cat.Name = name
	return s.store.SaveCategories(ctx)
}

// Delete removes a category. The reserved fallback category cannot be
// deleted. Posts keep their dangling category id and display under the
// fallback. Deleting an unknown id is a no-op.
func (s *CategoryService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if !actor.CanPublish() {
		return models.NewUnauthorizedError("only editors can manage categories")
	}
	if id == models.UncategorizedID {
		return models.NewValidationError("the default category cannot be deleted")
	}
	kept := s.store.Categories[:0]
	removed := false
	for _, c := range s.store.Categories {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	s.store.Categories = kept
	if !removed {
		return nil
	}
	return s.store.SaveCategories(ctx)
}

// List returns a copy of all categories in stored order.
func (s *CategoryService) List() []models.Category {
	return append([]models.Category(nil), s.store.Categories...)
}

// DisplayName resolves a post's category name, falling back to the
// reserved category's name when the id dangles.
func (s *CategoryService) DisplayName(id int64) string {
	if cat := s.store.CategoryByID(id); cat != nil {
		return cat.Name
	}
	if cat := s.store.CategoryByID(models.UncategorizedID); cat != nil {
		return cat.Name
	}
	return "Uncategorized"
}

func (s *CategoryService) categoryByName(name string) *models.Category {
	for i := range s.store.Categories {
		if strings.EqualFold(s.store.Categories[i].Name, name) {
			return &s.store.Categories[i]
		}
	}
	return nil
}

func categoryIDs(categories []models.Category) map[int64]bool {
	out := make(map[int64]bool, len(categories))
	for _, c := range categories {
		out[c.ID] = true
	}
	return out
}
