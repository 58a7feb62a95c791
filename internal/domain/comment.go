package domain

import "time"

// TargetType is what a comment is attached to.
type TargetType string

const (
	TargetManga   TargetType = "manga"
	TargetChapter TargetType = "chapter"
)

// Valid reports whether t is a known target type.
func (t TargetType) Valid() bool {
	return t == TargetManga || t == TargetChapter
}

// Comment is a reader comment. Content holds sanitized HTML.
type Comment struct {
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	ID            string     `json:"id" db:"id"`
	TargetType    TargetType `json:"target_type" db:"target_type"`
	TargetID      string     `json:"target_id" db:"target_id"`
	Title         string     `json:"title" db:"title"`
	ChapterNumber string     `json:"chapter_number,omitempty" db:"chapter_number"`
	UserID        string     `json:"user_id" db:"user_id"`
	Content       string     `json:"content" db:"content"`
}

type CommentPage struct {
	Total    int       `json:"total"`
	Comments []Comment `json:"comments"`
}
