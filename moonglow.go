// Package moonglow wires the blog engine together: a snapshot-backed
// store, the services operating on it, the vote ledger, the list query
// engine and the renderer. Embedders construct an App and drive it; all
// presentation stays on their side of the render callbacks.
package moonglow

import (
	"context"
	"fmt"

	"moonglow/internal/config"
	"moonglow/internal/models"
	"moonglow/internal/observability"
	"moonglow/internal/query"
	"moonglow/internal/render"
	"moonglow/internal/seed"
	"moonglow/internal/service"
	"moonglow/internal/store"
	"moonglow/internal/voting"
)

// App is the assembled application.
type App struct {
	Config *config.Config
	Log    *observability.Logger
	Store  *store.Store

	Auth       *service.AuthService
	Posts      *service.PostService
	Comments   *service.CommentService
	Categories *service.CategoryService
	Votes      *voting.Ledger
	Renderer   *render.Renderer
}

// Open builds the backend named by the configuration, loads the store
// and seeds the default dataset if the store is empty and seeding is
// enabled.
func Open(ctx context.Context, cfg *config.Config, log *observability.Logger) (*App, error) {
	if log == nil {
		log = observability.NewDefaultLogger()
	}

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	st := store.New(backend, log)
	if err := st.Load(ctx); err != nil {
		backend.Close()
		return nil, err
	}
	if cfg.SeedOnEmpty {
		seeded, err := seed.IfEmpty(ctx, st)
		if err != nil {
			backend.Close()
			return nil, err
		}
		if seeded {
			log.Info("seeded default dataset")
		}
	}

	return &App{
		Config:     cfg,
		Log:        log,
		Store:      st,
		Auth:       service.NewAuthService(st, cfg.InvitationCode, log),
		Posts:      service.NewPostService(st, log),
		Comments:   service.NewCommentService(st, log),
		Categories: service.NewCategoryService(st, log),
		Votes:      voting.NewLedger(st, log),
		Renderer:   render.New(),
	}, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return store.NewMemoryBackend(), nil
	case config.BackendFile:
		return store.NewFileBackend(cfg.DataDir)
	case config.BackendSQLite:
		return store.NewSQLiteBackend(cfg.SQLitePath)
	case config.BackendRedis:
		return store.NewRedisBackend(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// NewListEngine creates a query engine over the live post and category
// collections, pushing recomputed views through render.
func (a *App) NewListEngine(renderFn query.RenderFunc) *query.Engine {
	return query.NewEngine(
		func() []models.Post { return a.Store.Posts },
		func() []models.Category { return a.Store.Categories },
		renderFn,
	)
}

// Highlights selects the posts to spotlight on the home view.
func (a *App) Highlights() []service.Highlight {
	return service.HomeHighlights(a.Store.Posts, a.Config.HighlightLimit)
}

// PostDetail loads one post's display bundle and counts the view.
func (a *App) PostDetail(ctx context.Context, id int64) (*render.PostDetail, error) {
	post := a.Store.PostByID(id)
	if post == nil {
		return nil, nil
	}
	if err := a.Posts.RecordView(ctx, id); err != nil {
		return nil, err
	}
	return a.Renderer.PostDetail(post, a.Categories.DisplayName(post.CategoryID))
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.Store.Close()
}
