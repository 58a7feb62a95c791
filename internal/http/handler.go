package httpapp

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mangaview/mangaview/internal/catalog"
	"github.com/mangaview/mangaview/internal/comments"
	"github.com/mangaview/mangaview/internal/domain"
	"github.com/mangaview/mangaview/internal/logger"
	"github.com/mangaview/mangaview/web"
)

// CommentService is the part of *comments.Service the handlers use.
type CommentService interface {
	Post(ctx context.Context, in comments.Input) (*domain.Comment, error)
	List(ctx context.Context, targetType domain.TargetType, targetID string, page, pageSize int) (*domain.CommentPage, error)
}

// RetryLimiter reports how long a user must wait before posting again.
// *ratelimit.Limiter satisfies it.
type RetryLimiter interface {
	RetryAfter(key string) time.Duration
}

type Handler struct {
	Provider  catalog.Provider
	Comments  CommentService
	Limiter   RetryLimiter
	Defaults  domain.ContentFilter
	Languages []string
	Logger    *logger.Logger

	pages     map[string]*template.Template
	fragments *template.Template
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	// Comment bodies are sanitized by bluemonday before they are stored.
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
}

func NewHandler(provider catalog.Provider, svc CommentService, limiter RetryLimiter, defaults domain.ContentFilter, languages []string, log *logger.Logger) (*Handler, error) {
	if log == nil {
		log = logger.Default()
	}
	h := &Handler{
		Provider:  provider,
		Comments:  svc,
		Limiter:   limiter,
		Defaults:  defaults,
		Languages: languages,
		Logger:    log.WithComponent("http"),
	}
	if err := h.ParseTemplates(web.Files); err != nil {
		return nil, err
	}
	return h, nil
}

// ParseTemplates builds one template set per page, each holding the base
// layout, the page, the comments fragment and all components.
func (h *Handler) ParseTemplates(files fs.FS) error {
	pages, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return err
	}

	h.pages = make(map[string]*template.Template)
	for _, page := range pages {
		name := strings.TrimPrefix(page, "templates/")
		if name == "base.html" || name == "comments.html" {
			continue
		}
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(files,
			"templates/base.html",
			page,
			"templates/comments.html",
			"templates/components/*.html",
		)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		h.pages[name] = tmpl
	}

	h.fragments, err = template.New("fragments").Funcs(templateFuncs).ParseFS(files,
		"templates/comments.html",
		"templates/components/*.html",
	)
	if err != nil {
		return fmt.Errorf("parse fragments: %w", err)
	}
	return nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HomePage)
	r.Get("/tag/{id}", h.TagPage)
	r.Get("/manga/{id}", h.MangaPage)
	r.Get("/comments/{type}/{id}", h.CommentsFragment)
	r.Post("/api/comments/{type}/{id}", h.CreateComment)
	r.Post("/settings", h.SaveSettings)
	r.Get("/healthz", h.Healthz)
}

func (h *Handler) RenderPage(w http.ResponseWriter, pageTmpl string, data interface{}) {
	tmpl, ok := h.pages[pageTmpl]
	if !ok {
		http.Error(w, "unknown page "+pageTmpl, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		h.Logger.Error("Failed to render page", "page", pageTmpl, "error", err)
	}
}

func (h *Handler) RenderFragment(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.fragments.ExecuteTemplate(w, name, data); err != nil {
		h.Logger.Error("Failed to render fragment", "fragment", name, "error", err)
	}
}

// pageData returns the fields every full page needs, merged with extra.
func (h *Handler) pageData(r *http.Request, title string, extra map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"Title":       title,
		"Preferences": h.preferences(r),
		"Languages":   h.Languages,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
