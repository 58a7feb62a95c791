package dto

import (
	"strings"
	"time"

	"github.com/mangaview/mangaview/internal/domain"
)

// CreateCommentRequest is the JSON body of a comment submission.
type CreateCommentRequest struct {
	Content       string `json:"content"`
	Title         string `json:"title"`
	ChapterNumber string `json:"chapterNumber"`
}

// Validate checks the fields that do not depend on rendering. Content length
// is measured by the comments service after markdown is rendered.
func (r *CreateCommentRequest) Validate() []domain.ValidationError {
	var errs []domain.ValidationError
	if strings.TrimSpace(r.Content) == "" {
		errs = append(errs, domain.ValidationError{Field: "content", Message: "is required"})
	}
	if len(r.Title) > 255 {
		errs = append(errs, domain.ValidationError{Field: "title", Message: "must be at most 255 characters"})
	}
	if len(r.ChapterNumber) > 32 {
		errs = append(errs, domain.ValidationError{Field: "chapterNumber", Message: "must be at most 32 characters"})
	}
	return errs
}

type CommentResponse struct {
	ID            string    `json:"id"`
	TargetType    string    `json:"type"`
	TargetID      string    `json:"targetId"`
	Title         string    `json:"title,omitempty"`
	ChapterNumber string    `json:"chapterNumber,omitempty"`
	UserID        string    `json:"userId"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:            c.ID,
		TargetType:    string(c.TargetType),
		TargetID:      c.TargetID,
		Title:         c.Title,
		ChapterNumber: c.ChapterNumber,
		UserID:        c.UserID,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
	}
}

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func ToMap(errs []domain.ValidationError) map[string]string {
	result := make(map[string]string)
	for _, e := range errs {
		result[e.Field] = e.Message
	}
	return result
}

func ToResponse(errs []domain.ValidationError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}
