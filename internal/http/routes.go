package httpapp

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mangaview/mangaview/internal/comments"
	"github.com/mangaview/mangaview/internal/constants"
	"github.com/mangaview/mangaview/internal/domain"
	"github.com/mangaview/mangaview/internal/http/dto"
	"github.com/mangaview/mangaview/internal/pagination"
)

const maxCommentBody = 64 << 10

func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	prefs := h.preferences(r)
	mangas, err := h.Provider.TopRated(r.Context(), constants.LeaderboardLimit, prefs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.RenderPage(w, "index.html", h.pageData(r, "Top rated", map[string]interface{}{
		"Mangas": mangas,
	}))
}

func (h *Handler) TagPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	nav := newRequestNavigator(w, r)
	page := nav.CurrentPage()
	log := h.Logger.WithTag(id, page)

	tag, err := h.Provider.GetTag(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.Provider.MangasByTag(r.Context(), id, constants.TagPageSize,
		pagination.Offset(page, constants.TagPageSize), h.preferences(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	totalPages := pagination.TotalPages(result.Total, constants.TagPageSize)
	if page > totalPages && totalPages > 0 {
		log.Debug("Page out of range, redirecting", "total_pages", totalPages)
		pagination.Go(nav, page, totalPages)
		return
	}

	h.RenderPage(w, "tag.html", h.pageData(r, tag.Name, map[string]interface{}{
		"Tag":        tag,
		"Mangas":     result.Mangas,
		"Pagination": pagination.New(page, result.Total, constants.TagPageSize, r.URL.RequestURI()),
	}))
}

func (h *Handler) CommentsFragment(w http.ResponseWriter, r *http.Request) {
	targetType := domain.TargetType(chi.URLParam(r, "type"))
	targetID := chi.URLParam(r, "id")
	nav := newRequestNavigator(w, r)
	page := nav.CurrentPage()

	result, err := h.Comments.List(r.Context(), targetType, targetID, page, constants.CommentPageSize)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	totalPages := pagination.TotalPages(result.Total, constants.CommentPageSize)
	if page > totalPages && totalPages > 0 {
		pagination.Go(nav, page, totalPages)
		return
	}

	h.RenderFragment(w, "comments", map[string]interface{}{
		"Comments":   result.Comments,
		"Pagination": pagination.New(page, result.Total, constants.CommentPageSize, r.URL.RequestURI()),
	})
}

func (h *Handler) MangaPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prefs := h.preferences(r)

	manga, err := h.Provider.GetManga(r.Context(), id, prefs.Language)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.Comments.List(r.Context(), domain.TargetManga, id, 1, constants.CommentPageSize)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	commentsURL := "/comments/" + string(domain.TargetManga) + "/" + url.PathEscape(id)
	h.RenderPage(w, "manga.html", h.pageData(r, manga.Title, map[string]interface{}{
		"Manga":       manga,
		"CommentsURL": commentsURL,
		"PostURL":     "/api/comments/" + string(domain.TargetManga) + "/" + url.PathEscape(id),
		"CommentList": map[string]interface{}{
			"Comments":   list.Comments,
			"Pagination": pagination.New(1, list.Total, constants.CommentPageSize, commentsURL),
		},
	}))
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(constants.UserHeader)
	if userID == "" {
		h.writeJSONError(w, r, domain.ErrUnauthorized)
		return
	}

	var req dto.CreateCommentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommentBody)).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "invalid JSON body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		h.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:  dto.ToResponse(errs),
			Fields: dto.ToMap(errs),
		})
		return
	}

	comment, err := h.Comments.Post(r.Context(), comments.Input{
		TargetType:    domain.TargetType(chi.URLParam(r, "type")),
		TargetID:      chi.URLParam(r, "id"),
		Title:         req.Title,
		ChapterNumber: req.ChapterNumber,
		UserID:        userID,
		Content:       req.Content,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			h.setRetryAfter(w, userID)
		}
		h.writeJSONError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, dto.NewCommentResponse(comment))
}

// setRetryAfter tells a throttled client, in whole seconds, when it may post again.
func (h *Handler) setRetryAfter(w http.ResponseWriter, userID string) {
	if h.Limiter == nil {
		return
	}
	if wait := h.Limiter.RetryAfter(userID); wait > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok")); err != nil {
		h.Logger.Debug("Failed to write health response", "error", err)
	}
}
