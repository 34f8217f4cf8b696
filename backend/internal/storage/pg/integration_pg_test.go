package pg

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/threadboard/threadboard/shared/config"
	"github.com/threadboard/threadboard/shared/domain"
	"github.com/threadboard/threadboard/shared/logger"
)

var storage *Storage

func TestMain(m *testing.M) {
	logger.Silence()
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)

	exitCode := m.Run()
	teardown(ctx, storage, container)
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "threadboard"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithInitScripts(filepath.Join("..", "..", "..", "migrations", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// the server restarts once after running init scripts
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	storage, err := New(ctx, config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName})
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// --- helpers shared by the integration tests ---

// postgres keeps microseconds
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func createTestUser(t *testing.T) domain.User {
	t.Helper()
	id := uuid.New()
	user := domain.User{Id: id, Name: "user-" + id.String()[:8], Email: id.String() + "@example.com", PassHash: "hash", CreatedAt: now()}
	if err := storage.SaveUser(context.Background(), user); err != nil {
		t.Fatalf("failed to save user: %s", err)
	}
	return user
}

func createTestThread(t *testing.T, author domain.UserId) domain.Thread {
	t.Helper()
	thread := domain.Thread{
		Id:          uuid.New(),
		AuthorId:    author,
		Title:       "title",
		Content:     "content",
		CreatedAt:   now(),
		ReactionSet: domain.NewReactionSet(),
		CommentIds:  []domain.CommentId{},
	}
	if err := storage.PutThread(context.Background(), thread); err != nil {
		t.Fatalf("failed to save thread: %s", err)
	}
	return thread
}

func TestPing(t *testing.T) {
	if err := storage.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %s", err)
	}
}
