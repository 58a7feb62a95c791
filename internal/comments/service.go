// Package comments accepts and lists reader comments on mangas and chapters.
package comments

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mangaview/mangaview/internal/constants"
	"github.com/mangaview/mangaview/internal/domain"
	"github.com/mangaview/mangaview/internal/logger"
	"github.com/mangaview/mangaview/internal/metrics"
	"github.com/mangaview/mangaview/internal/pagination"
)

// Store persists comments. *store.DB satisfies it.
type Store interface {
	CreateComment(c *domain.Comment) error
	ListComments(targetType domain.TargetType, targetID string, limit, offset int) ([]domain.Comment, error)
	CountComments(targetType domain.TargetType, targetID string) (int, error)
}

// Limiter decides whether a user may post again. *ratelimit.Limiter satisfies it.
type Limiter interface {
	Allow(key string) bool
}

// Input is a comment submission.
type Input struct {
	TargetType    domain.TargetType
	TargetID      string
	Title         string
	ChapterNumber string
	UserID        string
	Content       string
}

type Service struct {
	store    Store
	limiter  Limiter
	markdown goldmark.Markdown
	ugc      *bluemonday.Policy
	strict   *bluemonday.Policy
	logger   *logger.Logger
	now      func() time.Time
}

func NewService(store Store, limiter Limiter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	ugc := bluemonday.UGCPolicy()
	ugc.RequireNoFollowOnLinks(true)
	ugc.AddTargetBlankToFullyQualifiedLinks(true)

	return &Service{
		store:    store,
		limiter:  limiter,
		markdown: goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify)),
		ugc:      ugc,
		strict:   bluemonday.StrictPolicy(),
		logger:   log.WithComponent("comments"),
		now:      time.Now,
	}
}

// Post validates, renders and stores a comment. Validation runs before the
// rate limit so malformed submissions do not use up a user's quota.
func (s *Service) Post(ctx context.Context, in Input) (*domain.Comment, error) {
	if in.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	log := s.logger.WithComment(string(in.TargetType), in.TargetID, in.UserID)

	rendered, err := s.validate(in)
	if err != nil {
		metrics.CommentsTotal.WithLabelValues(string(in.TargetType), "invalid").Inc()
		return nil, err
	}

	if s.limiter != nil && !s.limiter.Allow(in.UserID) {
		metrics.CommentsTotal.WithLabelValues(string(in.TargetType), "rate_limited").Inc()
		log.Warn("Comment rate limit exceeded")
		return nil, domain.ErrRateLimited
	}

	comment := &domain.Comment{
		ID:            uuid.New().String(),
		TargetType:    in.TargetType,
		TargetID:      in.TargetID,
		Title:         strings.TrimSpace(in.Title),
		ChapterNumber: strings.TrimSpace(in.ChapterNumber),
		UserID:        in.UserID,
		Content:       rendered,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.CreateComment(comment); err != nil {
		metrics.CommentsTotal.WithLabelValues(string(in.TargetType), "error").Inc()
		return nil, fmt.Errorf("save comment: %w", err)
	}

	metrics.CommentsTotal.WithLabelValues(string(in.TargetType), "ok").Inc()
	log.Info("Comment posted", "comment_id", comment.ID)
	return comment, nil
}

// validate checks the submission and returns the sanitized HTML body.
func (s *Service) validate(in Input) (string, error) {
	if !in.TargetType.Valid() {
		return "", &domain.ValidationError{Field: "type", Message: "must be manga or chapter"}
	}
	if strings.TrimSpace(in.TargetID) == "" {
		return "", &domain.ValidationError{Field: "id", Message: "is required"}
	}
	if in.TargetType == domain.TargetChapter && strings.TrimSpace(in.ChapterNumber) == "" {
		return "", &domain.ValidationError{Field: "chapterNumber", Message: "is required for chapter comments"}
	}

	rendered, err := s.Render(in.Content)
	if err != nil {
		return "", err
	}

	n := s.PlainTextLength(rendered)
	if n < constants.CommentMinLength {
		return "", &domain.ValidationError{Field: "content", Message: fmt.Sprintf("must be at least %d characters", constants.CommentMinLength)}
	}
	if n > constants.CommentMaxLength {
		return "", &domain.ValidationError{Field: "content", Message: fmt.Sprintf("must be at most %d characters", constants.CommentMaxLength)}
	}
	return rendered, nil
}

// Render converts markdown to sanitized HTML.
func (s *Service) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(s.ugc.Sanitize(buf.String())), nil
}

// PlainTextLength counts the visible characters of an HTML fragment.
func (s *Service) PlainTextLength(fragment string) int {
	text := html.UnescapeString(s.strict.Sanitize(fragment))
	return utf8.RuneCountInString(strings.TrimSpace(text))
}

// List returns one page of comments on a target, newest first.
func (s *Service) List(ctx context.Context, targetType domain.TargetType, targetID string, page, pageSize int) (*domain.CommentPage, error) {
	if !targetType.Valid() {
		return nil, &domain.ValidationError{Field: "type", Message: "must be manga or chapter"}
	}
	if pageSize < 1 {
		pageSize = constants.CommentPageSize
	}

	total, err := s.store.CountComments(targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	list, err := s.store.ListComments(targetType, targetID, pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return &domain.CommentPage{Total: total, Comments: list}, nil
}
