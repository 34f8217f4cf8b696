package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"


	"github.com/threadboard/threadboard/shared/domain"
	internal_errors "github.com/threadboard/threadboard/shared/errors"
	sharedpg "github.com/threadboard/threadboard/shared/storage/pg"
)

func (s *Storage) SaveUser(ctx context.Context, user domain.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password_hash, created_at) VALUES($1, $2, $3, $4, $5)",
		user.Id, user.Name, user.Email, user.PassHash, user.CreatedAt)
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", user.Email, internal_errors.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE lower(email) = lower($1)", email,
	).Scan(&user.Id, &user.Name, &user.Email, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("user")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) UserExists(ctx context.Context, id domain.UserId) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}

// UsersByIds returns the users that exist among ids. Duplicates are fine.
func (s *Storage) UsersByIds(ctx context.Context, ids []domain.UserId) (map[domain.UserId]domain.User, error) {
	users := make(map[domain.UserId]domain.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM users WHERE id = ANY($1::uuid[])", uuidArray(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Id, &u.Name, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[u.Id] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

