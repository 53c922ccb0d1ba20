// Package persist serializes the ledger to and from a blob store. Reads
// never fail the caller: an absent or corrupt payload degrades to the
// seeded sample dataset so the application always starts with a usable
// ledger.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"khata/internal/core"
)

// DefaultKey is the fixed blob key holding the serialized ledger.
const DefaultKey = "khata/transactions"

// Gateway is the persistence contract the ledger store writes through.
// It is an interface so another embedding can swap the medium without
// touching the store.
type Gateway interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, txs []core.Transaction) error
}

// BlobStore is the slice of the blob contract the gateway needs.
type BlobStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type BlobGateway struct {
	store BlobStore
	key   string
}

func NewBlobGateway(store BlobStore, key string) *BlobGateway {
	if key == "" {
		key = DefaultKey
	}
	return &BlobGateway{store: store, key: key}
}

// Load reads the ledger from the blob store. An absent key seeds the
// sample dataset and persists it immediately; a medium failure or corrupt
// payload falls back to the seed as well.
func (g *BlobGateway) Load(ctx context.Context) ([]core.Transaction, error) {
	raw, ok, err := g.store.Get(ctx, g.key)
	if err != nil {
		slog.WarnContext(ctx, "Blob store unavailable, falling back to sample data",
			"key", g.key, "error", err)
		return g.seed(ctx), nil
	}
	if !ok {
		slog.InfoContext(ctx, "No stored ledger found, seeding sample data", "key", g.key)
		return g.seed(ctx), nil
	}

	var txs []core.Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		slog.WarnContext(ctx, "Stored ledger is corrupt, falling back to sample data",
			"key", g.key, "error", err)
		return g.seed(ctx), nil
	}

	slog.InfoContext(ctx, "Ledger loaded", "key", g.key, "count", len(txs))
	return txs, nil
}

// Save serializes the full collection and overwrites the blob. There is
// no delta write: the stored value is always the whole ledger.
func (g *BlobGateway) Save(ctx context.Context, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	raw, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := g.store.Set(ctx, g.key, string(raw)); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	slog.DebugContext(ctx, "Ledger saved", "key", g.key, "count", len(txs))
	return nil
}

func (g *BlobGateway) seed(ctx context.Context) []core.Transaction {
	txs := SeedTransactions(core.Today())
	if err := g.Save(ctx, txs); err != nil {
		slog.WarnContext(ctx, "Could not persist sample data", "key", g.key, "error", err)
	}
	return txs
}
