package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"khata/internal/blob/memory"
	"khata/internal/core"
	"khata/internal/persist"
)

// emptyStore returns a store backed by an in-memory blob pre-seeded with
// an empty ledger, so tests start from a clean, deterministic state.
func emptyStore(t *testing.T) (*Store, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	blobs := memory.New()
	if err := blobs.Set(ctx, persist.DefaultKey, "[]"); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	s, err := Open(ctx, persist.NewBlobGateway(blobs, persist.DefaultKey))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, blobs
}

func coffee() core.Candidate {
	return core.Candidate{
		Description: "Coffee",
		AmountCents: 5000,
		Category:    core.CategoryFood,
		Date:        core.Today().Add(-1),
	}
}

func TestAddNormalizesSign(t *testing.T) {
	ctx := context.Background()
	s, _ := emptyStore(t)

	cases := []struct {
		category core.Category
		positive bool
	}{
		{core.CategoryIncome, true},
		{core.CategoryFood, false},
		{core.CategoryOther, false},
	}
	for i, tc := range cases {
		c := coffee()
		c.Description = c.Description + string(tc.category)
		c.Category = tc.category
		tx, err := s.Add(ctx, c)
		if err != nil {
			t.Fatalf("case %d: add: %v", i, err)
		}
		if (tx.AmountCents > 0) != tc.positive {
			t.Fatalf("case %d: amount %d has wrong sign for %s", i, tx.AmountCents, tc.category)
		}
	}
	if got := len(s.List()); got != len(cases) {
		t.Fatalf("expected %d transactions, got %d", len(cases), got)
	}
}

func TestAddRejectsInvalidCandidates(t *testing.T) {
	ctx := context.Background()
	s, _ := emptyStore(t)

	cases := []func(*core.Candidate){
		func(c *core.Candidate) { c.Description = "" },
		func(c *core.Candidate) { c.AmountCents = -5 },
		func(c *core.Candidate) { c.Category = "" },
		func(c *core.Candidate) { c.Date = core.Today().Add(1) },
	}
	for i, mut := range cases {
		c := coffee()
		mut(&c)
		_, err := s.Add(ctx, c)
		var fieldErrs core.FieldErrors
		if !errors.As(err, &fieldErrs) {
			t.Fatalf("case %d: expected field errors, got %v", i, err)
		}
		if got := len(s.List()); got != 0 {
			t.Fatalf("case %d: rejected add mutated the collection (%d records)", i, got)
		}
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s, _ := emptyStore(t)

	if _, err := s.Add(ctx, coffee()); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := s.Add(ctx, coffee())
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if got := len(s.List()); got != 1 {
		t.Fatalf("expected exactly one stored record, got %d", got)
	}
}

func TestAddWritesThrough(t *testing.T) {
	ctx := context.Background()
	s, blobs := emptyStore(t)

	tx, err := s.Add(ctx, coffee())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	raw, ok, err := blobs.Get(ctx, persist.DefaultKey)
	if err != nil || !ok {
		t.Fatalf("blob missing after add: ok=%v err=%v", ok, err)
	}
	var stored []core.Transaction
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("stored payload corrupt: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != tx.ID {
		t.Fatalf("write-through mismatch: %+v", stored)
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	s, _ := emptyStore(t)
	if _, err := s.Add(ctx, coffee()); err != nil {
		t.Fatalf("add: %v", err)
	}
	before := s.List()

	_, err := s.Update(ctx, "no-such-id", coffee())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after := s.List()
	if len(before) != len(after) {
		t.Fatalf("collection length changed: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("record %d changed: %+v vs %+v", i, before[i], after[i])
		}
	}
}

func TestUpdateReplacesInPlaceAndClearsEdit(t *testing.T) {
	ctx := context.Background()
	s, _ := emptyStore(t)

	first, err := s.Add(ctx, coffee())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second := coffee()
	second.Description = "Lunch"
	if _, err := s.Add(ctx, second); err != nil {
		t.Fatalf("add second: %v", err)
	}

	if _, err := s.BeginEdit(first.ID); err != nil {
		t.Fatalf("begin edit: %v", err)
	}

	repl := core.Candidate{
		Description: "Salary",
		AmountCents: 750000,
		Category:    core.CategoryIncome,
		Date:        core.Today(),
	}
	updated, err := s.Update(ctx, first.ID, repl)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.AmountCents != 750000 {
		t.Fatalf("income must stay positive, got %d", updated.AmountCents)
	}

	txs := s.List()
	if txs[0].ID != first.ID || txs[0].Description != "Salary" {
		t.Fatalf("update must replace in place: %+v", txs[0])
	}
	if _, editing := s.EditingID(); editing {
		t.Fatalf("editing id must be cleared after update")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	s, _ := emptyStore(t)

	tx, err := s.Add(ctx, coffee())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	intent, err := s.RequestDelete(tx.ID)
	if err != nil {
		t.Fatalf("request delete: %v", err)
	}
	if len(s.List()) != 1 {
		t.Fatalf("requesting deletion must not mutate the ledger")
	}

	if err := s.CommitDelete(ctx, intent.Token); err != nil {
		t.Fatalf("commit delete: %v", err)
	}
	if len(s.List()) != 0 {
		t.Fatalf("record not removed")
	}

	// The token is single-use.
	if err := s.CommitDelete(ctx, intent.Token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on reused token, got %v", err)
	}
}

func TestRequestDeleteUnknownID(t *testing.T) {
	s, _ := emptyStore(t)
	if _, err := s.RequestDelete("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEditLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := emptyStore(t)

	tx, err := s.Add(ctx, coffee())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, editing := s.EditingID(); editing {
		t.Fatalf("fresh store must start in create mode")
	}
	got, err := s.BeginEdit(tx.ID)
	if err != nil {
		t.Fatalf("begin edit: %v", err)
	}
	if got.ID != tx.ID {
		t.Fatalf("begin edit returned wrong record: %+v", got)
	}
	if id, editing := s.EditingID(); !editing || id != tx.ID {
		t.Fatalf("editing id not set")
	}

	s.CancelEdit()
	if _, editing := s.EditingID(); editing {
		t.Fatalf("cancel must clear the editing id")
	}

	if _, err := s.BeginEdit("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type failingGateway struct{}

func (failingGateway) Load(context.Context) ([]core.Transaction, error) {
	return nil, nil
}
func (failingGateway) Save(context.Context, []core.Transaction) error {
	return errors.New("disk full")
}

func TestWriteThroughFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, failingGateway{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	tx, err := s.Add(ctx, coffee())
	if !errors.Is(err, ErrWriteThrough) {
		t.Fatalf("expected ErrWriteThrough, got %v", err)
	}
	if tx.ID == "" {
		t.Fatalf("transaction must still be returned")
	}
	if len(s.List()) != 1 {
		t.Fatalf("in-memory mutation must survive a failed write")
	}
}
