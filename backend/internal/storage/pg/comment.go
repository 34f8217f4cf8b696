package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/threadboard/threadboard/shared/domain"
	internal_errors "github.com/threadboard/threadboard/shared/errors"
)

const commentColumns = "id, thread_id, author_id, parent_id, content, created_at, edited, likes, dislikes"

func scanComment(row rowScanner) (domain.Comment, error) {
	var (
		c               domain.Comment
		parent          uuid.NullUUID
		likes, dislikes pq.StringArray
	)
	if err := row.Scan(&c.Id, &c.ThreadId, &c.AuthorId, &parent, &c.Content, &c.CreatedAt, &c.Edited, &likes, &dislikes); err != nil {
		return domain.Comment{}, err
	}
	if parent.Valid {
		c.ParentId = &parent.UUID
	}

	var err error
	if c.Likes, err = domain.VoterSetFromStrings(likes); err != nil {
		return domain.Comment{}, err
	}
	if c.Dislikes, err = domain.VoterSetFromStrings(dislikes); err != nil {
		return domain.Comment{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func (s *Storage) GetComment(ctx context.Context, id domain.CommentId) (domain.Comment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = $1", id)
	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, internal_errors.NotFound("comment")
		}
		return domain.Comment{}, fmt.Errorf("failed to query comment: %w", err)
	}
	return comment, nil
}

// PutComment inserts or fully replaces a comment. Thread, author and parent
// never change after creation.
func (s *Storage) PutComment(ctx context.Context, c domain.Comment) error {
	var parent uuid.NullUUID
	if c.ParentId != nil {
		parent = uuid.NullUUID{UUID: *c.ParentId, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO comments (`+commentColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            content = EXCLUDED.content,
            edited = EXCLUDED.edited,
            likes = EXCLUDED.likes,
            dislikes = EXCLUDED.dislikes
    `,
		c.Id, c.ThreadId, c.AuthorId, parent, c.Content, c.CreatedAt, c.Edited,
		pq.StringArray(c.Likes.Strings()), pq.StringArray(c.Dislikes.Strings()),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert comment: %w", err)
	}
	return nil
}

func (s *Storage) DeleteComment(ctx context.Context, id domain.CommentId) error {
	return deleteOne(ctx, s.db, "comment", "DELETE FROM comments WHERE id = $1", id)
}

// CommentsByThread returns every stored comment of the thread in creation
// order, including replies whose parent is gone.
func (s *Storage) CommentsByThread(ctx context.Context, threadId domain.ThreadId) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE thread_id = $1 ORDER BY created_at, id", threadId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}
