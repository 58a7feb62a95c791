package httpapp

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/mangaview/mangaview/internal/constants"
	"github.com/mangaview/mangaview/internal/domain"
)

const preferenceMaxAge = 365 * 24 * time.Hour

// preferences reads the reader's language and R18 choice from the preference
// cookie. Missing or unsupported values fall back to the configured defaults.
func (h *Handler) preferences(r *http.Request) domain.ContentFilter {
	prefs := h.Defaults
	cookie, err := r.Cookie(constants.PreferenceCookie)
	if err != nil {
		return prefs
	}
	values, err := url.ParseQuery(cookie.Value)
	if err != nil {
		return prefs
	}
	if lang := values.Get("language"); h.supported(lang) {
		prefs.Language = lang
	}
	if r18, err := strconv.ParseBool(values.Get("r18")); err == nil {
		prefs.R18 = r18
	}
	return prefs
}

func (h *Handler) supported(lang string) bool {
	return lang != "" && slices.Contains(h.Languages, lang)
}

func encodePreferences(p domain.ContentFilter) string {
	values := url.Values{}
	values.Set("language", p.Language)
	values.Set("r18", strconv.FormatBool(p.R18))
	return values.Encode()
}

// SaveSettings stores the submitted preferences in a cookie and sends the
// reader back to the page they came from.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	prefs := h.preferences(r)
	if lang := r.PostForm.Get("language"); lang != "" {
		if !h.supported(lang) {
			http.Error(w, "unsupported language", http.StatusBadRequest)
			return
		}
		prefs.Language = lang
	}
	prefs.R18 = r.PostForm.Get("r18") != ""

	http.SetCookie(w, &http.Cookie{
		Name:     constants.PreferenceCookie,
		Value:    encodePreferences(prefs),
		Path:     "/",
		MaxAge:   int(preferenceMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, backURL(r), http.StatusSeeOther)
}

// backURL returns the path of a same-site Referer, or "/".
func backURL(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	back := url.URL{Path: ref.Path, RawQuery: ref.RawQuery}
	return back.String()
}
