package domain

// ContentRating values accepted by the catalog.
const (
	RatingSafe         = "safe"
	RatingSuggestive   = "suggestive"
	RatingErotica      = "erotica"
	RatingPornographic = "pornographic"
)

// ContentFilter narrows catalog queries to what the reader wants to see.
type ContentFilter struct {
	Language string `json:"language"`
	R18      bool   `json:"r18"`
}

// ContentRatings returns the ratings allowed by the filter.
func (f ContentFilter) ContentRatings() []string {
	if f.R18 {
		return []string{RatingSafe, RatingSuggestive, RatingErotica, RatingPornographic}
	}
	return []string{RatingSafe, RatingSuggestive}
}

type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Rating struct {
	Average  float64 `json:"average"`
	Bayesian float64 `json:"bayesian"`
}

// MangaStats holds community statistics for a manga.
type MangaStats struct {
	Rating   Rating `json:"rating"`
	Follows  int    `json:"follows"`
	Comments int    `json:"comments"`
}

// Manga is a catalog entry as shown on cards and leaderboards.
type Manga struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Cover         string      `json:"cover,omitempty"`
	ContentRating string      `json:"content_rating,omitempty"`
	Status        string      `json:"status,omitempty"`
	Year          int         `json:"year,omitempty"`
	Tags          []Tag       `json:"tags,omitempty"`
	Author        []Person    `json:"author,omitempty"`
	Artist        []Person    `json:"artist,omitempty"`
	Stats         *MangaStats `json:"stats,omitempty"`
}

// Creators returns the distinct author and artist names, authors first.
func (m Manga) Creators() []string {
	seen := make(map[string]bool, len(m.Author)+len(m.Artist))
	var names []string
	for _, people := range [][]Person{m.Author, m.Artist} {
		for _, p := range people {
			if p.Name == "" || seen[p.Name] {
				continue
			}
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	return names
}

type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
}

// MangaPage is one page of a catalog listing plus the total across all pages.
type MangaPage struct {
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Mangas []Manga `json:"mangas"`
}
