package store

import (
	"github.com/mangaview/mangaview/internal/domain"
)

func (db *DB) CreateComment(c *domain.Comment) error {
	_, err := db.NamedExec(`
		INSERT INTO comments (id, target_type, target_id, title, chapter_number, user_id, content, created_at)
		VALUES (:id, :target_type, :target_id, :title, :chapter_number, :user_id, :content, :created_at)
	`, c)
	return err
}

// ListComments returns one page of comments on a target, newest first.
func (db *DB) ListComments(targetType domain.TargetType, targetID string, limit, offset int) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	err := db.Select(&comments, `
		SELECT id, target_type, target_id, title, chapter_number, user_id, content, created_at
		FROM comments
		WHERE target_type = ? AND target_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, targetType, targetID, limit, offset)
	return comments, err
}

func (db *DB) CountComments(targetType domain.TargetType, targetID string) (int, error) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM comments WHERE target_type = ? AND target_id = ?", targetType, targetID)
	return count, err
}
