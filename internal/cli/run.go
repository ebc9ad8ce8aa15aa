package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/pips/internal/config"
	"github.com/aretw0/pips/internal/presentation/tui"
	"github.com/aretw0/pips/pkg/adapters/memory"
	"github.com/aretw0/pips/pkg/adapters/redis"
	"github.com/aretw0/pips/pkg/persistence/middleware"
	"github.com/aretw0/pips/pkg/ports"
	"github.com/aretw0/pips/pkg/session"
)

// RunOptions control the interactive shell.
type RunOptions struct {
	SessionID     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// RedisTTL expires idle sessions. Zero keeps them forever.
	RedisTTL time.Duration
	// EncryptionKey is an optional base64-encoded 32-byte key. When set,
	// session state is encrypted at rest.
	EncryptionKey string
	Debug         bool
}

// WithConfig fills connection settings from pips.yaml. An address given
// on the command line wins over the configured one.
func (o RunOptions) WithConfig(cfg *config.Config) RunOptions {
	if o.RedisAddr == "" {
		o.RedisAddr = cfg.Redis.Addr
	}
	if o.RedisPassword == "" {
		o.RedisPassword = cfg.Redis.Password
	}
	if o.RedisDB == 0 {
		o.RedisDB = cfg.Redis.DB
	}
	if o.RedisTTL == 0 {
		o.RedisTTL = cfg.Redis.TTL.Std()
	}
	return o
}

// RunREPL starts the interactive shell. Sessions persist in Redis when
// an address is configured, otherwise in process memory.
func RunREPL(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	var store ports.StateStore
	if opts.RedisAddr != "" {
		redisStore := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, redis.WithTTL(opts.RedisTTL))
		defer redisStore.Close()
		store = redisStore
		logger.Info("using redis store", "addr", opts.RedisAddr, "db", opts.RedisDB, "ttl", opts.RedisTTL)
	} else {
		store = memory.NewStore()
	}

	if opts.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(opts.EncryptionKey)
		if err != nil {
			return fmt.Errorf("invalid encryption key: %w", err)
		}
		if len(key) != 32 {
			return fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
		}
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
	}

	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	tui.PrintBanner()

	manager := session.NewManager(store, session.WithLogger(logger))
	repl := NewREPL(manager, sessionID, WithREPLLogger(logger))

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	err := repl.Run(sigCtx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}

	printSystemMessage("Session %q saved.", sessionID)
	return nil
}
