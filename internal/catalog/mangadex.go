package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mangaview/mangaview/internal/domain"
	"github.com/mangaview/mangaview/internal/logger"
)

// Doer sends HTTP requests. *httpclient.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// MangaDexProvider talks to a MangaDex-compatible REST API.
type MangaDexProvider struct {
	BaseURL    string
	UploadsURL string
	client     Doer
	logger     *logger.Logger
}

func NewMangaDexProvider(baseURL, uploadsURL string, client Doer, log *logger.Logger) *MangaDexProvider {
	if log == nil {
		log = logger.Default()
	}
	return &MangaDexProvider{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		UploadsURL: strings.TrimRight(uploadsURL, "/"),
		client:     client,
		logger:     log.WithComponent("mangadex"),
	}
}

// listQuery holds the parameters shared by every manga listing.
func listQuery(limit, offset int, filter domain.ContentFilter) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if filter.Language != "" {
		q.Add("availableTranslatedLanguage[]", filter.Language)
	}
	for _, rating := range filter.ContentRatings() {
		q.Add("contentRating[]", rating)
	}
	addIncludes(q)
	return q
}

func addIncludes(q url.Values) {
	q.Add("includes[]", "cover_art")
	q.Add("includes[]", "author")
	q.Add("includes[]", "artist")
}

// MangaDex rejects listings where offset+limit exceeds this.
const maxListWindow = 10000

// MangasByTag reports at most maxListWindow results in Total so page counts
// never point past what the API will serve.
func (p *MangaDexProvider) MangasByTag(ctx context.Context, tagID string, limit, offset int, filter domain.ContentFilter) (*domain.MangaPage, error) {
	reqLimit, reqOffset := limit, offset
	beyond := offset >= maxListWindow
	switch {
	case beyond:
		// only the total is needed
		reqLimit, reqOffset = 1, 0
	case offset+limit > maxListWindow:
		reqLimit = maxListWindow - offset
	}

	q := listQuery(reqLimit, reqOffset, filter)
	q.Add("includedTags[]", tagID)
	q.Set("order[latestUploadedChapter]", "desc")

	var resp APIMangaListResponse
	if err := p.get(ctx, "/manga", q, &resp); err != nil {
		return nil, fmt.Errorf("list mangas for tag %s: %w", tagID, err)
	}

	page := resp.ToDomain(p.UploadsURL, filter.Language)
	page.Total = min(page.Total, maxListWindow)
	page.Limit, page.Offset = limit, offset
	if beyond {
		page.Mangas = []domain.Manga{}
	}
	return page, nil
}

func (p *MangaDexProvider) TopRated(ctx context.Context, limit int, filter domain.ContentFilter) ([]domain.Manga, error) {
	q := listQuery(limit, 0, filter)
	q.Set("order[rating]", "desc")
	q.Set("hasAvailableChapters", "true")

	var resp APIMangaListResponse
	if err := p.get(ctx, "/manga", q, &resp); err != nil {
		return nil, fmt.Errorf("list top rated: %w", err)
	}
	mangas := resp.ToDomain(p.UploadsURL, filter.Language).Mangas
	if len(mangas) == 0 {
		return mangas, nil
	}

	stats, err := p.statistics(ctx, mangas)
	if err != nil {
		// The leaderboard still renders without scores.
		p.logger.Warn("Failed to fetch statistics", "error", err)
		return mangas, nil
	}
	for i := range mangas {
		if s, ok := stats[mangas[i].ID]; ok {
			mangas[i].Stats = s.ToDomain()
		}
	}
	return mangas, nil
}

func (p *MangaDexProvider) statistics(ctx context.Context, mangas []domain.Manga) (map[string]APIStatistics, error) {
	q := url.Values{}
	for _, m := range mangas {
		q.Add("manga[]", m.ID)
	}
	var resp APIStatisticsResponse
	if err := p.get(ctx, "/statistics/manga", q, &resp); err != nil {
		return nil, err
	}
	return resp.Statistics, nil
}

func (p *MangaDexProvider) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	var resp APITagListResponse
	if err := p.get(ctx, "/manga/tag", nil, &resp); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	for _, t := range resp.Data {
		if t.ID == id {
			tag := t.ToDomain()
			return &tag, nil
		}
	}
	return nil, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
}

// GetManga returns one manga with its statistics. Missing statistics are
// logged and left nil.
func (p *MangaDexProvider) GetManga(ctx context.Context, id, lang string) (*domain.Manga, error) {
	q := url.Values{}
	addIncludes(q)

	var resp APIMangaResponse
	if err := p.get(ctx, "/manga/"+url.PathEscape(id), q, &resp); err != nil {
		return nil, fmt.Errorf("get manga %s: %w", id, err)
	}
	manga := resp.Data.ToDomain(p.UploadsURL, lang)

	stats, err := p.statistics(ctx, []domain.Manga{manga})
	if err != nil {
		p.logger.Warn("Failed to fetch statistics", "manga_id", id, "error", err)
		return &manga, nil
	}
	if s, ok := stats[manga.ID]; ok {
		manga.Stats = s.ToDomain()
	}
	return &manga, nil
}

func (p *MangaDexProvider) get(ctx context.Context, path string, query url.Values, target interface{}) error {
	u := p.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	p.logger.Debug("API request", "url", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", domain.ErrUpstream, describeError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// describeError summarizes an error response, preferring the API's own detail.
func describeError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var apiErr APIErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && len(apiErr.Errors) > 0 {
		e := apiErr.Errors[0]
		if e.Detail != "" {
			return fmt.Sprintf("%s: %s", resp.Status, e.Detail)
		}
		return fmt.Sprintf("%s: %s", resp.Status, e.Title)
	}
	return resp.Status
}

var _ Provider = (*MangaDexProvider)(nil)
