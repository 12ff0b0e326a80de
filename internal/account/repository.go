package account

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/comercial-bot/internal/normalize"
)

// Repository performs the two-tier brand resolution against a Store.
type Repository struct {
	store Store
}

// NewRepository creates a repository over the given store.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Resolve maps a raw brand string to the best matching account.
//
// Tier 1 is an exact-key lookup: among rows whose trade or legal key equals
// the normalized brand, a trade-key match beats a legal-key match and a hit
// ends resolution. Tier 2 runs only when tier 1 produced nothing (or its
// store access failed): rows containing the key as a substring are ranked by
// the priority table in rank.go. Store failures degrade the affected tier to
// an empty result and are logged, never surfaced to the caller.
func (r *Repository) Resolve(ctx context.Context, rawBrand string) (Match, bool) {
	key := normalize.Key(rawBrand)
	if key == "" {
		return Match{}, false
	}

	rows, err := r.store.FindExact(ctx, key)
	if err != nil {
		zap.L().Error("account: exact lookup failed",
			zap.String("key", key),
			zap.Error(err),
		)
	} else if m, ok := bestExact(key, rows); ok {
		zap.L().Debug("account: resolved on exact tier",
			zap.String("key", key),
			zap.String("executive", m.Executive),
		)
		return m, true
	}

	rows, err = r.store.FindContaining(ctx, key)
	if err != nil {
		zap.L().Error("account: substring lookup failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return Match{}, false
	}

	best, ok := rankBest(key, rows)
	if !ok {
		return Match{}, false
	}
	zap.L().Debug("account: resolved on fuzzy tier",
		zap.String("key", key),
		zap.Int("candidates", len(rows)),
		zap.String("executive", best.Executive),
	)
	return matchFrom(best), true
}

// bestExact picks the winning row of the exact tier: the first usable
// trade-key match, else the first usable legal-key match. Rows arrive in
// dataset order, which makes remaining ties deterministic.
func bestExact(key string, rows []Account) (Match, bool) {
	var legal *Account
	for i := range rows {
		a := rows[i]
		if !a.Usable() {
			continue
		}
		if a.TradeKey == key {
			return matchFrom(a), true
		}
		if a.LegalKey == key && legal == nil {
			legal = &rows[i]
		}
	}
	if legal != nil {
		return matchFrom(*legal), true
	}
	return Match{}, false
}
