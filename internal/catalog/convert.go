package catalog

import (
	"github.com/mangaview/mangaview/internal/constants"
	"github.com/mangaview/mangaview/internal/domain"
)

// titleLanguages returns the language preference order used for titles.
func titleLanguages(lang string) []string {
	if lang == "" || lang == "en" {
		return []string{"en", "ja-ro"}
	}
	return []string{lang, "en", "ja-ro"}
}

// title prefers a main title in the reader's language, then an alternative
// title in that language, then the main title in any language.
func (r APIManga) title(lang string) string {
	if lang != "" {
		if t := r.Attributes.Title[lang]; t != "" {
			return t
		}
		for _, alt := range r.Attributes.AltTitles {
			if t := alt[lang]; t != "" {
				return t
			}
		}
	}
	return r.Attributes.Title.Pick(titleLanguages(lang)...)
}

func (r APITag) ToDomain() domain.Tag {
	return domain.Tag{
		ID:    r.ID,
		Name:  r.Attributes.Name.Pick("en"),
		Group: r.Attributes.Group,
	}
}

// ToDomain converts an API manga, resolving cover art against uploadsURL.
func (r APIManga) ToDomain(uploadsURL, lang string) domain.Manga {
	m := domain.Manga{
		ID:            r.ID,
		Title:         r.title(lang),
		Description:   r.Attributes.Description.Pick(titleLanguages(lang)...),
		Status:        r.Attributes.Status,
		ContentRating: r.Attributes.ContentRating,
	}
	if r.Attributes.Year != nil {
		m.Year = *r.Attributes.Year
	}
	for _, t := range r.Attributes.Tags {
		m.Tags = append(m.Tags, t.ToDomain())
	}

	for _, rel := range r.Relationships {
		if rel.Attributes == nil {
			continue
		}
		switch rel.Type {
		case "cover_art":
			m.Cover = coverURL(uploadsURL, r.ID, rel.Attributes.FileName)
		case "author":
			m.Author = append(m.Author, domain.Person{ID: rel.ID, Name: rel.Attributes.Name})
		case "artist":
			m.Artist = append(m.Artist, domain.Person{ID: rel.ID, Name: rel.Attributes.Name})
		}
	}
	return m
}

func (r APIMangaListResponse) ToDomain(uploadsURL, lang string) *domain.MangaPage {
	page := &domain.MangaPage{
		Total:  r.Total,
		Limit:  r.Limit,
		Offset: r.Offset,
		Mangas: make([]domain.Manga, 0, len(r.Data)),
	}
	for _, item := range r.Data {
		page.Mangas = append(page.Mangas, item.ToDomain(uploadsURL, lang))
	}
	return page
}

func (r APIStatistics) ToDomain() *domain.MangaStats {
	stats := &domain.MangaStats{
		Rating:  domain.Rating{Bayesian: r.Rating.Bayesian},
		Follows: r.Follows,
	}
	if r.Rating.Average != nil {
		stats.Rating.Average = *r.Rating.Average
	}
	if r.Comments != nil {
		stats.Comments = r.Comments.RepliesCount
	}
	return stats
}

func coverURL(uploadsURL, mangaID, fileName string) string {
	if fileName == "" {
		return ""
	}
	return uploadsURL + "/covers/" + mangaID + "/" + fileName + constants.CoverSizeSmall
}
