package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/threadboard/threadboard/backend/internal/handler"
	"github.com/threadboard/threadboard/backend/internal/service"
	"github.com/threadboard/threadboard/backend/internal/storage/mongo"
	"github.com/threadboard/threadboard/backend/internal/storage/pg"
	"github.com/threadboard/threadboard/backend/internal/utils"
	"github.com/threadboard/threadboard/shared/config"
	"github.com/threadboard/threadboard/shared/jwt"
	mw "github.com/threadboard/threadboard/shared/middleware"
	rl "github.com/threadboard/threadboard/shared/middleware/ratelimiter"
)

// Store is everything the services need from a storage backend.
type Store interface {
	service.AuthStorage
	service.ThreadStorage
	service.EngagementStorage
	Ping(ctx context.Context) error
	Cleanup() error
}

var (
	_ Store = (*pg.Storage)(nil)
	_ Store = (*mongo.Storage)(nil)
)

// RateLimiters are shared by the router; each runs a cleanup goroutine
// until stopped.
type RateLimiters struct {
	Login    *rl.UserRateLimiter
	Register *rl.UserRateLimiter
	Write    *rl.UserRateLimiter
	Global   *rl.UserRateLimiter
}

func (l *RateLimiters) Stop() {
	for _, limiter := range []*rl.UserRateLimiter{l.Login, l.Register, l.Write, l.Global} {
		if limiter != nil {
			limiter.Stop()
		}
	}
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        Store
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	RateLimiters   *RateLimiters
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := NewStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	clock := clockwork.NewRealClock()
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	contentValidator := utils.NewContentValidator(&cfg.Public)

	auth := service.NewAuth(storage, utils.NewCredentialsValidator(), jwtService, clock)
	thread := service.NewThread(storage, contentValidator, clock)
	engagement := service.NewEngagement(storage, contentValidator, clock)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        handler.New(auth, thread, engagement, storage, cfg),
		AuthMiddleware: mw.NewAuth(jwtService),
		RateLimiters:   NewRateLimiters(cfg),
	}, nil
}

// NewStore opens the backend selected by storage_driver.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Public.StorageDriver {
	case config.DriverPostgres:
		storage, err := pg.New(ctx, cfg.Private.Pg)
		if err != nil {
			return nil, err
		}
		return storage, nil
	case config.DriverMongo:
		storage, err := mongo.New(ctx, cfg.Private.MongoURI, cfg.Private.MongoDB)
		if err != nil {
			return nil, err
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Public.StorageDriver)
	}
}

func NewRateLimiters(cfg *config.Config) *RateLimiters {
	limiters := &RateLimiters{
		Login:    rl.New(1, 1, time.Hour),
		Register: rl.New(rl.Every(10*time.Second), 1, time.Hour),
		Global:   rl.New(1000, 1000, time.Hour),
	}
	if cfg.Public.WriteRps > 0 {
		limiters.Write = rl.New(cfg.Public.WriteRps, int(cfg.Public.WriteRps)+1, time.Hour)
	}
	return limiters
}

// Close releases the store and stops limiter goroutines.
func (d *Dependencies) Close() error {
	d.RateLimiters.Stop()
	return d.Storage.Cleanup()
}
