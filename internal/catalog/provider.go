package catalog

import (
	"context"

	"github.com/mangaview/mangaview/internal/domain"
)

// Provider is the remote catalog the front-end browses.
type Provider interface {
	MangasByTag(ctx context.Context, tagID string, limit, offset int, filter domain.ContentFilter) (*domain.MangaPage, error)
	TopRated(ctx context.Context, limit int, filter domain.ContentFilter) ([]domain.Manga, error)
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetManga(ctx context.Context, id, lang string) (*domain.Manga, error)
}
