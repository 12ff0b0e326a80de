package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/comercial-bot/internal/account"
	"github.com/sells-group/comercial-bot/internal/pipeline"
	anthropicpkg "github.com/sells-group/comercial-bot/pkg/anthropic"
)

// botEnv holds the store and the pipeline needed by the serve/ask/resolve
// commands.
type botEnv struct {
	Store    account.Store
	Repo     *account.Repository
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the environment.
func (e *botEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initPipeline opens the store, runs migrations, and wires the model client
// and the account repository into a pipeline. Callers should defer
// env.Close().
func initPipeline(ctx context.Context) (*botEnv, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic API key is required (COMERCIAL_ANTHROPIC_KEY)")
	}

	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	aiClient := anthropicpkg.NewClient(cfg.Anthropic.Key,
		anthropicpkg.WithRateLimit(cfg.Anthropic.RatePerSecond, cfg.Anthropic.RateBurst),
	)

	repo := account.NewRepository(st)

	return &botEnv{
		Store:    st,
		Repo:     repo,
		Pipeline: pipeline.New(aiClient, cfg.Anthropic, repo),
	}, nil
}
