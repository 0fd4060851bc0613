package router

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"animal-rescue/internal/adapters/auth/jwtverifier"
	"animal-rescue/internal/adapters/ratelimit"
	mem "animal-rescue/internal/adapters/storage/memory"
	pg "animal-rescue/internal/adapters/storage/postgres"
	"animal-rescue/internal/adapters/storage/sqlite"
	"animal-rescue/internal/adapters/supabase"
	"animal-rescue/internal/config"
	"animal-rescue/internal/domain/animals"
	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/ports/auth"
	"animal-rescue/internal/ports/rowstore"
)

// Closer libera lo que abrió Open*. Nunca es nil.
type Closer func() error

func noopCloser() error { return nil }

// OpenStore elige el backend de filas según STORAGE_DRIVER. Si el backend
// configurado no responde se cae a memoria con un warning, para que el
// sitio siga navegable.
func OpenStore(ctx context.Context, cfg *config.Config, log logger.Logger) (rowstore.Store, Closer, error) {
	if log == nil {
		log = logger.Nop()
	}
	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		log.Warn("storage backend unavailable, using memory", map[string]any{"driver": cfg.StorageDriver, "err": err})
		store, closer = mem.NewRowStore(), noopCloser
	}

	if cfg.SeedDemoData {
		n, err := seedIfEmpty(ctx, store, log)
		if err != nil {
			log.Warn("seed demo animals failed", map[string]any{"err": err})
		} else if n > 0 {
			log.Info("seeded demo animals", map[string]any{"count": n})
		}
	}
	return store, closer, nil
}

func openStore(ctx context.Context, cfg *config.Config) (rowstore.Store, Closer, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return pg.NewRowStore(db), dbCloser(db), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return sqlite.NewRowStore(db), dbCloser(db), nil

	case config.DriverSupabase:
		c, err := supabase.NewClient(supabase.Config{URL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey, Timeout: cfg.UpstreamTimeout})
		if err != nil {
			return nil, nil, err
		}
		return supabase.NewRowStore(c), noopCloser, nil

	default:
		return mem.NewRowStore(), noopCloser, nil
	}
}

func dbCloser(db *sql.DB) Closer {
	return func() error { return db.Close() }
}

// seedIfEmpty solo siembra si no hay ningún animal cargado.
func seedIfEmpty(ctx context.Context, store rowstore.Store, log logger.Logger) (int, error) {
	rows, err := store.Select(ctx, *rowstore.From(animals.Table).Take(1))
	if err != nil {
		return 0, err
	}
	if len(rows) > 0 {
		return 0, nil
	}
	return animals.SeedDemo(ctx, animals.NewService(store, log))
}

// OpenAuth arma verificador y backend de sesión. Ambos pueden quedar nil:
// sin secreto se usa el modo dev de headers y sin Supabase no hay sign-in.
func OpenAuth(cfg *config.Config, log logger.Logger) (auth.AuthVerifier, auth.Backend, error) {
	if log == nil {
		log = logger.Nop()
	}

	var verifier auth.AuthVerifier
	if cfg.SupabaseJWTSecret != "" {
		v, err := jwtverifier.New(cfg.SupabaseJWTSecret)
		if err != nil {
			return nil, nil, err
		}
		verifier = v
	} else {
		log.Warn("no jwt secret, trusting X-Debug-User-ID headers", nil)
	}

	var backend auth.Backend
	c, err := supabase.NewClient(supabase.Config{URL: cfg.SupabaseURL, AnonKey: cfg.SupabaseAnonKey, Timeout: cfg.UpstreamTimeout})
	switch {
	case errors.Is(err, supabase.ErrNotConfigured):
		log.Warn("supabase not configured, sign-in disabled", nil)
	case err != nil:
		return nil, nil, err
	default:
		backend = supabase.NewBackend(c)
	}
	return verifier, backend, nil
}

// Limiter agrupa el limitador elegido y su mantenimiento.
type Limiter struct {
	ratelimit.Limiter
	sweep func() int
	close Closer
}

// Sweep limpia ventanas vencidas (solo aplica al limitador en memoria).
func (l *Limiter) Sweep() int {
	if l.sweep == nil {
		return 0
	}
	return l.sweep()
}

func (l *Limiter) Close() error { return l.close() }

// OpenLimiter usa Redis si REDIS_URL está y responde; si no, memoria.
// RATE_LIMIT_RPM=0 desactiva el límite y devuelve nil.
func OpenLimiter(ctx context.Context, cfg *config.Config, log logger.Logger) *Limiter {
	if cfg.RateLimitRPM == 0 {
		return nil
	}
	if log == nil {
		log = logger.Nop()
	}

	if cfg.RedisURL != "" {
		r, err := ratelimit.NewRedis(cfg.RedisURL, cfg.RateLimitRPM)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err = r.Ping(pingCtx)
			cancel()
			if err == nil {
				return &Limiter{Limiter: r, close: r.Close}
			}
			_ = r.Close()
		}
		log.Warn("redis rate limiter unavailable, using memory", map[string]any{"err": err})
	}

	m := ratelimit.NewMemory(cfg.RateLimitRPM)
	return &Limiter{Limiter: m, sweep: m.Sweep, close: noopCloser}
}
