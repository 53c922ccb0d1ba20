// Package ledger owns the ordered transaction collection and the
// mutation rules around it: validation gating, duplicate detection, sign
// normalization, edit mode and two-step deletion. Every accepted
// mutation is written through the persistence gateway before the
// operation returns.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"khata/internal/core"
	"khata/internal/persist"
)

var (
	// ErrDuplicate signals that an identical transaction already exists.
	ErrDuplicate = errors.New("duplicate transaction")
	// ErrNotFound signals an unknown transaction id or delete token.
	ErrNotFound = errors.New("transaction not found")
	// ErrWriteThrough signals that the mutation was applied in memory
	// but could not be persisted. Callers surface it as a warning, not
	// a failure.
	ErrWriteThrough = errors.New("ledger not persisted")
)

// DeleteIntent is a pending deletion awaiting external confirmation.
// The token is single-use and bound to one transaction id.
type DeleteIntent struct {
	Token string
	ID    string
}

// Store is the ledger. It is owned by the composition root and shared by
// handle; the mutex covers the rare case of overlapping requests, the
// real duplicate-submission guard is the check in Add.
type Store struct {
	mu        sync.Mutex
	txs       []core.Transaction
	gateway   persist.Gateway
	editingID string
	pending   map[string]string // delete token -> transaction id
}

// Open loads the ledger through the gateway and returns a ready store.
func Open(ctx context.Context, gw persist.Gateway) (*Store, error) {
	txs, err := gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return &Store{
		txs:     txs,
		gateway: gw,
		pending: make(map[string]string),
	}, nil
}

// Add validates the candidate, rejects exact duplicates, and appends a
// new transaction with a fresh id and the sign normalized from the
// category. The write-through happens before Add returns.
func (s *Store) Add(ctx context.Context, c core.Candidate) (core.Transaction, error) {
	if errs := core.ValidateCandidate(c, core.Today()); errs != nil {
		return core.Transaction{}, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := core.Transaction{
		ID:          uuid.NewString(),
		Description: c.Description,
		AmountCents: c.NormalizedAmount(),
		Category:    c.Category,
		Date:        c.Date,
	}

	for _, existing := range s.txs {
		if existing.Same(tx) {
			return core.Transaction{}, ErrDuplicate
		}
	}

	s.txs = append(s.txs, tx)
	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"category", tx.Category,
		"amount_cents", tx.AmountCents,
		"date", tx.Date.String())

	return tx, s.saveLocked(ctx)
}

// Update replaces the record with the given id in place, keeping its
// position and id. An unknown id leaves the collection untouched.
// A successful update clears the in-progress edit target.
func (s *Store) Update(ctx context.Context, id string, c core.Candidate) (core.Transaction, error) {
	if errs := core.ValidateCandidate(c, core.Today()); errs != nil {
		return core.Transaction{}, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return core.Transaction{}, ErrNotFound
	}

	tx := core.Transaction{
		ID:          id,
		Description: c.Description,
		AmountCents: c.NormalizedAmount(),
		Category:    c.Category,
		Date:        c.Date,
	}
	s.txs[i] = tx
	if s.editingID == id {
		s.editingID = ""
	}
	slog.InfoContext(ctx, "Transaction updated",
		"id", id,
		"category", tx.Category,
		"amount_cents", tx.AmountCents)

	return tx, s.saveLocked(ctx)
}

// RequestDelete returns a confirmation token for the given id without
// mutating anything. The deletion happens only when the token comes back
// through CommitDelete.
func (s *Store) RequestDelete(id string) (DeleteIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return DeleteIntent{}, ErrNotFound
	}
	intent := DeleteIntent{Token: uuid.NewString(), ID: id}
	s.pending[intent.Token] = id
	return intent, nil
}

// CommitDelete consumes a confirmation token and removes the matching
// record. The token is spent whether or not the record still exists.
func (s *Store) CommitDelete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.pending[token]
	if !ok {
		return ErrNotFound
	}
	delete(s.pending, token)

	i := s.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	s.txs = append(s.txs[:i], s.txs[i+1:]...)
	if s.editingID == id {
		s.editingID = ""
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)

	return s.saveLocked(ctx)
}

// BeginEdit marks the transaction as the target of the next submitted
// form. Only one edit target exists at a time; beginning a new edit
// replaces the previous one.
func (s *Store) BeginEdit(id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return core.Transaction{}, ErrNotFound
	}
	s.editingID = id
	return s.txs[i], nil
}

// CancelEdit clears the edit target, returning the store to create mode.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = ""
}

// EditingID returns the id currently targeted for replacement, if any.
func (s *Store) EditingID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID, s.editingID != ""
}

// List returns a copy of the current collection in insertion order.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

func (s *Store) indexLocked(id string) int {
	for i, tx := range s.txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

// saveLocked writes the collection through the gateway. A failed write
// keeps the in-memory mutation and reports ErrWriteThrough so the
// presentation layer can warn the user without undoing their action.
func (s *Store) saveLocked(ctx context.Context) error {
	if err := s.gateway.Save(ctx, s.txs); err != nil {
		slog.ErrorContext(ctx, "Write-through failed", "error", err, "count", len(s.txs))
		return fmt.Errorf("%w: %v", ErrWriteThrough, err)
	}
	return nil
}
