package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/inkwellcms/inkwell/internal/auth"
	"github.com/inkwellcms/inkwell/internal/service"
	"github.com/inkwellcms/inkwell/internal/store"
)

const devJWTSecret = "inkwell-dev-secret-change-me"

// newLogger builds the process logger from the log.level and log.format
// settings.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch viper.GetString("log.level") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if viper.GetString("log.format") == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// openStore connects to MongoDB, or returns an in-memory store when memory
// mode is requested. The returned Store must be closed by the caller.
func openStore(ctx context.Context, memory bool, logger *slog.Logger) (store.Store, error) {
	if memory {
		logger.Warn("using in-memory store, all data is lost on exit")
		return store.NewMemory(), nil
	}

	uri := viper.GetString("mongo.uri")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := viper.GetString("mongo.database")
	if dbName == "" {
		dbName = "inkwell"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.NewMongo(connectCtx, uri, dbName)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	logger.Info("connected to mongodb", "database", dbName)
	return st, nil
}

// jwtSecret returns the configured signing secret, falling back to a
// development default.
func jwtSecret(logger *slog.Logger) string {
	secret := viper.GetString("auth.jwt_secret")
	if secret == "" {
		logger.Warn("auth.jwt_secret not set, using insecure development secret")
		return devJWTSecret
	}
	return secret
}

// newAuthService wires the password hasher, token codec, and credential store
// into the auth core.
func newAuthService(st store.Store, logger *slog.Logger) *service.AuthService {
	ttl := viper.GetDuration("auth.token_ttl")
	hasher := auth.NewPasswordHasher(viper.GetInt("auth.bcrypt_cost"))
	codec := auth.NewTokenCodec(jwtSecret(logger), "inkwell")
	return service.NewAuthService(st, hasher, codec, ttl, logger)
}
