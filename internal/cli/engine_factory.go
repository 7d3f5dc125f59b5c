package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/tper/internal/config"
	"github.com/aretw0/tper/pkg/adapters/memory"
	"github.com/aretw0/tper/pkg/adapters/redis"
	"github.com/aretw0/tper/pkg/domain"
	"github.com/aretw0/tper/pkg/llm"
	"github.com/aretw0/tper/pkg/persistence/middleware"
	"github.com/aretw0/tper/pkg/ports"
	"github.com/aretw0/tper/pkg/workflow"
)

// engineDeps are the shared pieces behind every workflow instance of a session.
type engineDeps struct {
	Factory ports.WorkflowFactory
	Close   func() error
}

// createEngine picks the engine variant once, at configuration time.
func createEngine(ctx context.Context, cfg *config.Config, opts RunOptions, logger *slog.Logger, hooks domain.LifecycleHooks) (*engineDeps, error) {
	completer, err := createCompleter(cfg, opts, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Debug {
		hooks = createDebugHooks(logger).Merge(hooks)
	}

	wfOpts := []workflow.Option{
		workflow.WithConfig(workflow.Config{
			MaxIterations: cfg.MaxIterations,
			MaxSteps:      cfg.MaxSteps,
		}),
		workflow.WithLifecycleHooks(hooks),
		workflow.WithLogger(logger),
	}

	var scratch ports.Scratchpad = memory.NewStore()
	closeFn := func() error { return nil }
	if cfg.Scratchpad.Backend == config.BackendRedis {
		store, err := createRedisScratchpad(ctx, cfg.Scratchpad)
		if err != nil {
			return nil, err
		}
		scratch = store
		closeFn = store.Close
		logger.Debug("redis scratchpad ready", "prefix", cfg.Scratchpad.Prefix)
	}

	mws, err := createScratchpadMiddleware(cfg.Scratchpad)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	wfOpts = append(wfOpts, workflow.WithScratchpad(middleware.Chain(scratch, mws...)))

	return &engineDeps{
		Factory: workflow.NewFactory(completer, wfOpts...),
		Close:   closeFn,
	}, nil
}

func createCompleter(cfg *config.Config, opts RunOptions, logger *slog.Logger) (ports.Completer, error) {
	if opts.Completer != nil {
		return opts.Completer, nil
	}
	client, err := llm.New(llm.Config{
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		APIKey:      opts.Getenv(cfg.CredentialVar()),
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing model client: %w", err)
	}
	return client, nil
}

func createRedisScratchpad(ctx context.Context, sc config.ScratchpadConfig) (*redis.Store, error) {
	var opts []redis.Option
	if sc.TTL > 0 {
		opts = append(opts, redis.WithTTL(sc.TTL))
	}
	if sc.Prefix != "" {
		opts = append(opts, redis.WithPrefix(sc.Prefix))
	}
	store, err := redis.NewFromURL(sc.RedisURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid redis_url: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("redis scratchpad unreachable: %w", err)
	}
	return store, nil
}

// createScratchpadMiddleware returns redaction before encryption so masks apply to clear text.
func createScratchpadMiddleware(sc config.ScratchpadConfig) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(sc.Redact) > 0 {
		mw, err := middleware.NewRedactMiddleware(sc.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	if sc.EncryptionKey != "" {
		key, err := middleware.ParseKey(sc.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("scratchpad encryption: %w", err)
		}
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return mws, nil
}
