package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mangaview/mangaview/internal/domain"
)

// MockProvider serves a deterministic in-memory catalog.
type MockProvider struct {
	Tags  []domain.Tag
	Total int
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		Tags: []domain.Tag{
			{ID: "action", Name: "Action", Group: "genre"},
			{ID: "romance", Name: "Romance", Group: "genre"},
			{ID: "empty", Name: "Empty", Group: "theme"},
		},
		Total: 500,
	}
}

func (p *MockProvider) mockManga(n int) domain.Manga {
	return domain.Manga{
		ID:     fmt.Sprintf("mock-%d", n),
		Title:  fmt.Sprintf("Mock Manga %d", n),
		Author: []domain.Person{{ID: "author-1", Name: "Mock Author"}},
		Artist: []domain.Person{{ID: "artist-1", Name: "Mock Artist"}},
	}
}

func (p *MockProvider) MangasByTag(ctx context.Context, tagID string, limit, offset int, filter domain.ContentFilter) (*domain.MangaPage, error) {
	if _, err := p.GetTag(ctx, tagID); err != nil {
		return nil, err
	}
	total := p.Total
	if tagID == "empty" {
		total = 0
	}

	page := &domain.MangaPage{Total: total, Limit: limit, Offset: offset, Mangas: []domain.Manga{}}
	for i := offset; i < offset+limit && i < total; i++ {
		page.Mangas = append(page.Mangas, p.mockManga(i+1))
	}
	return page, nil
}

func (p *MockProvider) TopRated(ctx context.Context, limit int, filter domain.ContentFilter) ([]domain.Manga, error) {
	mangas := make([]domain.Manga, 0, limit)
	for i := 0; i < limit; i++ {
		m := p.mockManga(i + 1)
		m.Stats = &domain.MangaStats{
			Rating:  domain.Rating{Average: 9.5 - float64(i)*0.1, Bayesian: 9.4 - float64(i)*0.1},
			Follows: 10000 - i*100,
		}
		mangas = append(mangas, m)
	}
	return mangas, nil
}

func (p *MockProvider) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	for _, t := range p.Tags {
		if t.ID == id {
			tag := t
			return &tag, nil
		}
	}
	return nil, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
}

// GetManga resolves IDs of the form mock-N produced by the listings.
func (p *MockProvider) GetManga(ctx context.Context, id, lang string) (*domain.Manga, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "mock-"))
	if err != nil || n < 1 || !strings.HasPrefix(id, "mock-") {
		return nil, fmt.Errorf("manga %s: %w", id, domain.ErrNotFound)
	}
	m := p.mockManga(n)
	m.Description = fmt.Sprintf("Description of mock manga %d.", n)
	m.Status = "ongoing"
	return &m, nil
}

var _ Provider = (*MockProvider)(nil)
