// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort         = "8080"
	DefaultDBPath       = "mangaview.db"
	DefaultCatalogURL   = "https://api.mangadex.org"
	DefaultUploadsURL   = "https://uploads.mangadex.org"
	DefaultLanguage     = "vi"
	DefaultHTTPTimeout  = 15 * time.Second
	DefaultRetryCount   = 3
	DefaultRetryBase    = 1 * time.Second
	DefaultCacheTTL     = 10 * time.Minute
	DefaultRequestGap   = 200 * time.Millisecond
	DefaultCommentLimit = 5
	DefaultCommentEvery = time.Minute
	DefaultShutdownWait = 5 * time.Second
	UserAgent           = "mangaview/1.0"
)

// Listing sizes
const (
	TagPageSize      = 32
	CommentPageSize  = 20
	LeaderboardLimit = 10
)

// Comment content bounds, counted in plain-text runes.
const (
	CommentMinLength = 3
	CommentMaxLength = 2000
)

// Cover image sizes served by the uploads host.
const (
	CoverSizeSmall  = ".256.jpg"
	CoverSizeMedium = ".512.jpg"
)

// Database
const (
	CacheTable    = "cache"
	CommentsTable = "comments"
)

// HTTP
const (
	UserHeader       = "X-Forwarded-User"
	PreferenceCookie = "reader_config"
)

// Supported translated languages for the reader preference form.
var SupportedLanguages = []string{"vi", "en"}
