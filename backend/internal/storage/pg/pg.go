package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/threadboard/threadboard/shared/config"
	internal_errors "github.com/threadboard/threadboard/shared/errors"
	"github.com/threadboard/threadboard/shared/logger"
	sharedpg "github.com/threadboard/threadboard/shared/storage/pg"
)

// Storage keeps users, threads and comments in PostgreSQL. Every Put is a
// single upsert statement.
type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to postgres", "host", cfg.Host, "db", cfg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("connected to postgres")
	return &Storage{db: db}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func uuidArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(raw pq.StringArray) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", s, err)
		}
		out[i] = id
	}
	return out, nil
}

// deleteOne runs a DELETE that must remove exactly one row.
func deleteOne(ctx context.Context, q sharedpg.Querier, what, query string, args ...any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", what, err)
	}
	if n == 0 {
		return internal_errors.NotFound(what)
	}
	return nil
}
