package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/threadboard/threadboard/shared/domain"
	internal_errors "github.com/threadboard/threadboard/shared/errors"
)

const threadColumns = "id, author_id, title, content, created_at, edited, likes, dislikes, comment_ids"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanThread(row rowScanner) (domain.Thread, error) {
	var (
		t                           domain.Thread
		likes, dislikes, commentIds pq.StringArray
	)
	if err := row.Scan(&t.Id, &t.AuthorId, &t.Title, &t.Content, &t.CreatedAt, &t.Edited, &likes, &dislikes, &commentIds); err != nil {
		return domain.Thread{}, err
	}

	var err error
	if t.Likes, err = domain.VoterSetFromStrings(likes); err != nil {
		return domain.Thread{}, err
	}
	if t.Dislikes, err = domain.VoterSetFromStrings(dislikes); err != nil {
		return domain.Thread{}, err
	}
	if t.CommentIds, err = parseUUIDs(commentIds); err != nil {
		return domain.Thread{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+threadColumns+" FROM threads WHERE id = $1", id)
	thread, err := scanThread(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, internal_errors.NotFound("thread")
		}
		return domain.Thread{}, fmt.Errorf("failed to query thread: %w", err)
	}
	return thread, nil
}

// PutThread inserts or fully replaces a thread.
func (s *Storage) PutThread(ctx context.Context, t domain.Thread) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO threads (`+threadColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            title = EXCLUDED.title,
            content = EXCLUDED.content,
            edited = EXCLUDED.edited,
            likes = EXCLUDED.likes,
            dislikes = EXCLUDED.dislikes,
            comment_ids = EXCLUDED.comment_ids
    `,
		t.Id, t.AuthorId, t.Title, t.Content, t.CreatedAt, t.Edited,
		pq.StringArray(t.Likes.Strings()), pq.StringArray(t.Dislikes.Strings()), uuidArray(t.CommentIds),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert thread: %w", err)
	}
	return nil
}

func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	return deleteOne(ctx, s.db, "thread", "DELETE FROM threads WHERE id = $1", id)
}

func (s *Storage) ListThreads(ctx context.Context) ([]domain.Thread, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+threadColumns+" FROM threads ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query threads: %w", err)
	}
	defer rows.Close()

	threads := []domain.Thread{}
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate threads: %w", err)
	}
	return threads, nil
}
