package catalog

import (
	"encoding/json"
	"sort"
)

// LocalizedString maps language codes to text, as returned for titles,
// descriptions and tag names.
type LocalizedString map[string]string

// UnmarshalJSON accepts an object, or the empty array the API sends instead
// of an empty object.
func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || data[0] == '[' || string(data) == "null" {
		*l = LocalizedString{}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*l = m
	return nil
}

// Pick returns the text in the first available language of langs, falling
// back to the alphabetically first entry.
func (l LocalizedString) Pick(langs ...string) string {
	for _, lang := range langs {
		if v := l[lang]; v != "" {
			return v
		}
	}
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if l[k] != "" {
			return l[k]
		}
	}
	return ""
}

// APIRelationship is an entry of a resource's relationships array. Attributes
// are only present when the relationship was requested through includes[].
type APIRelationship struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes *struct {
		FileName string `json:"fileName"`
		Name     string `json:"name"`
	} `json:"attributes"`
}

type APITag struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Name  LocalizedString `json:"name"`
		Group string          `json:"group"`
	} `json:"attributes"`
}

type APIManga struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Title         LocalizedString   `json:"title"`
		AltTitles     []LocalizedString `json:"altTitles"`
		Description   LocalizedString   `json:"description"`
		Status        string            `json:"status"`
		Year          *int              `json:"year"`
		ContentRating string            `json:"contentRating"`
		Tags          []APITag          `json:"tags"`
	} `json:"attributes"`
	Relationships []APIRelationship `json:"relationships"`
}

// APIMangaListResponse is the body of GET /manga.
type APIMangaListResponse struct {
	Result string     `json:"result"`
	Data   []APIManga `json:"data"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	Total  int        `json:"total"`
}

// APIMangaResponse is the body of GET /manga/{id}.
type APIMangaResponse struct {
	Result string   `json:"result"`
	Data   APIManga `json:"data"`
}

// APITagListResponse is the body of GET /manga/tag.
type APITagListResponse struct {
	Result string   `json:"result"`
	Data   []APITag `json:"data"`
}

type APIStatistics struct {
	Rating struct {
		Average  *float64 `json:"average"`
		Bayesian float64  `json:"bayesian"`
	} `json:"rating"`
	Follows  int `json:"follows"`
	Comments *struct {
		RepliesCount int `json:"repliesCount"`
	} `json:"comments"`
}

// APIStatisticsResponse is the body of GET /statistics/manga.
type APIStatisticsResponse struct {
	Result     string                   `json:"result"`
	Statistics map[string]APIStatistics `json:"statistics"`
}

// APIErrorResponse is the body the API sends with non-2xx statuses.
type APIErrorResponse struct {
	Result string `json:"result"`
	Errors []struct {
		Status int    `json:"status"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}
