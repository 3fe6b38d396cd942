package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/adsignage/billboard-server/internal/controller"
	"github.com/adsignage/billboard-server/internal/core/domain"
	"github.com/adsignage/billboard-server/internal/core/ports"
	"github.com/adsignage/billboard-server/internal/core/service"
	"github.com/adsignage/billboard-server/internal/dispatch"
	"github.com/adsignage/billboard-server/internal/infrastructure/config"
	sessionmem "github.com/adsignage/billboard-server/internal/infrastructure/session/memory"
	"github.com/adsignage/billboard-server/internal/infrastructure/session/redisession"
	storemem "github.com/adsignage/billboard-server/internal/infrastructure/store/memory"
	"github.com/adsignage/billboard-server/internal/infrastructure/store/mongostore"
	"github.com/adsignage/billboard-server/internal/infrastructure/transport/httpgw"
	"github.com/adsignage/billboard-server/pkg/logger"
)

const janitorInterval = time.Minute

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]httpgw.Pinger{}

	stores, closeStores, err := buildStores(ctx, cfg, checks)
	if err != nil {
		log.Fatal().Err(err).Msg("store setup failed")
	}
	defer closeStores()

	sessions, closeSessions, err := buildSessions(ctx, cfg, checks, log)
	if err != nil {
		log.Fatal().Err(err).Msg("session registry setup failed")
	}
	defer closeSessions()

	hasher := service.NewArgon2Hasher()
	auth := service.NewAuthService(stores.Users, stores.Permissions, sessions, hasher, nil, log)

	if err := seedAdmin(ctx, cfg, stores, hasher, log); err != nil {
		log.Fatal().Err(err).Msg("bootstrap admin seeding failed")
	}

	router := dispatch.NewRouter()
	controller.RegisterRoutes(router, auth, stores, hasher, log)

	disp := dispatch.NewDispatcher(router, log,
		dispatch.AccessLog(log),
		dispatch.Instrument(),
		dispatch.Auth(auth, log),
	)

	e := httpgw.New(disp, checks, log)

	go func() {
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().
		Str("addr", cfg.Addr).
		Str("store_backend", cfg.StoreBackend).
		Str("session_backend", cfg.SessionBackend).
		Msg("billboard server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("billboard server stopped")
}

func buildStores(ctx context.Context, cfg *config.Config, checks map[string]httpgw.Pinger) (ports.Stores, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case "memory":
		return ports.Stores{
			Billboards: storemem.NewStore("billboard",
				storemem.WithUniqueKey(func(b domain.Billboard) string { return b.Name })),
			Users: storemem.NewStore("user",
				storemem.WithUniqueKey(func(u domain.User) string { return u.Username })),
			Permissions: storemem.NewStore("permission",
				storemem.WithUniqueKey(func(p domain.PermissionSet) string { return p.Username })),
			Schedules: storemem.NewStore[domain.Schedule]("schedule"),
		}, noop, nil

	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return ports.Stores{}, noop, err
		}

		billboards, err := mongostore.New[domain.Billboard](ctx, db, "billboard", "name")
		if err != nil {
			return ports.Stores{}, noop, err
		}
		users, err := mongostore.New[domain.User](ctx, db, "user", "username")
		if err != nil {
			return ports.Stores{}, noop, err
		}
		permissions, err := mongostore.New[domain.PermissionSet](ctx, db, "permission", "username")
		if err != nil {
			return ports.Stores{}, noop, err
		}
		schedules, err := mongostore.New[domain.Schedule](ctx, db, "schedule", "")
		if err != nil {
			return ports.Stores{}, noop, err
		}

		checks["mongodb"] = httpgw.PingerFunc(func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		})
		closeClient := func() {
			_ = client.Disconnect(context.Background())
		}
		return ports.Stores{
			Billboards:  billboards,
			Users:       users,
			Permissions: permissions,
			Schedules:   schedules,
		}, closeClient, nil

	default:
		return ports.Stores{}, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func buildSessions(ctx context.Context, cfg *config.Config, checks map[string]httpgw.Pinger, log zerolog.Logger) (ports.SessionRegistry, func(), error) {
	noop := func() {}

	switch cfg.SessionBackend {
	case "memory":
		registry := sessionmem.NewRegistry(cfg.SessionTimeout, nil, log)
		registry.StartJanitor(ctx, janitorInterval)
		return registry, noop, nil

	case "redis":
		client, err := redisession.Connect(ctx, redisession.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, noop, err
		}
		checks["redis"] = httpgw.PingerFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		closeClient := func() { _ = client.Close() }
		return redisession.NewRegistry(client, cfg.SessionTimeout), closeClient, nil

	default:
		return nil, noop, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

// seedAdmin creates the bootstrap administrator on a fresh deployment so the
// server is reachable before any user exists. When no password is configured
// one is generated and logged exactly once.
func seedAdmin(ctx context.Context, cfg *config.Config, stores ports.Stores, hasher ports.PasswordHasher, log zerolog.Logger) error {
	existing, err := stores.Users.Get(ctx, func(domain.User) bool { return true })
	if err != nil {
		return fmt.Errorf("check user collection: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	password := cfg.AdminPassword
	generated := false
	if password == "" {
		raw := make([]byte, 12)
		if _, err := rand.Read(raw); err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
		password = hex.EncodeToString(raw)
		generated = true
	}

	digest, salt, err := service.NewCredentials(hasher, password)
	if err != nil {
		return err
	}
	if _, err := stores.Users.Insert(ctx, domain.User{
		Username: cfg.AdminUsername,
		Password: digest,
		Salt:     salt,
	}); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	if _, err := stores.Permissions.Insert(ctx, domain.AllPermissions(cfg.AdminUsername)); err != nil {
		return fmt.Errorf("seed admin permissions: %w", err)
	}

	event := log.Info().Str("username", cfg.AdminUsername)
	if generated {
		event = event.Str("password", password)
	}
	event.Msg("seeded bootstrap administrator")
	return nil
}
