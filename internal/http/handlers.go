package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"khata/internal/core"
	"khata/internal/ledger"
	"khata/internal/query"
)

// transactionView is the read shape for a single ledger row. Cents stay
// machine-readable; display fields carry the localized rendering so the
// client never formats money or dates itself.
type transactionView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
	IsExpense   bool   `json:"is_expense"`
}

type transactionListResponse struct {
	Transactions []transactionView `json:"transactions"`
	EditingID    string            `json:"editing_id,omitempty"`
	Warning      string            `json:"warning,omitempty"`
}

type transactionResponse struct {
	Transaction transactionView `json:"transaction"`
	Warning     string          `json:"warning,omitempty"`
}

type deleteIntentResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
}

type summaryResponse struct {
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	BalanceCents int64  `json:"balance_cents"`
	Income       string `json:"income"`
	Expenses     string `json:"expenses"`
	Balance      string `json:"balance"`
}

type chartSlice struct {
	Category string `json:"category"`
	Cents    int64  `json:"cents"`
	Amount   string `json:"amount"`
}

type chartResponse struct {
	Slices []chartSlice `json:"slices"`
}

const writeThroughWarning = "transaction saved in memory but could not be persisted"

// displayDateFormat renders dates DD-MM-YYYY for humans; the wire and
// storage format stays YYYY-MM-DD.
const displayDateFormat = "02-01-2006"

func (s *Server) view(tx core.Transaction) transactionView {
	return transactionView{
		ID:          tx.ID,
		Description: tx.Description,
		AmountCents: tx.AmountCents,
		Amount:      core.FormatAmount(tx.AmountCents, s.currency),
		Category:    string(tx.Category),
		Date:        tx.Date.String(),
		DisplayDate: tx.Date.Format(displayDateFormat),
		IsExpense:   tx.IsExpense(),
	}
}

// handleTransactions serves the collection: GET lists (with optional
// filters), POST creates.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs := query.SortByDateDesc(query.Apply(s.store.List(), filter))

	views := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, s.view(tx))
	}

	resp := transactionListResponse{Transactions: views}
	if id, ok := s.store.EditingID(); ok {
		resp.EditingID = id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	candidate, err := parseTransactionRequest(r)
	if err != nil {
		var fieldErrs core.FieldErrors
		if errors.As(err, &fieldErrs) {
			writeFieldErrors(w, fieldErrs)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := s.store.Add(r.Context(), candidate)
	if err != nil && !errors.Is(err, ledger.ErrWriteThrough) {
		var fieldErrs core.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			writeFieldErrors(w, fieldErrs)
		case errors.Is(err, ledger.ErrDuplicate):
			writeError(w, http.StatusConflict, "an identical transaction already exists")
		default:
			slog.ErrorContext(r.Context(), "Failed to add transaction", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to add transaction")
		}
		return
	}

	s.invalidateViews()

	resp := transactionResponse{Transaction: s.view(tx)}
	if errors.Is(err, ledger.ErrWriteThrough) {
		slog.WarnContext(r.Context(), "Write-through failed", "transaction_id", tx.ID, "error", err)
		resp.Warning = writeThroughWarning
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleTransactionByID routes /api/transactions/{id} and its
// sub-actions {id}/edit and {id}/delete.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "transaction id required")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodPut:
		s.updateTransaction(w, r, id)
	case action == "" && r.Method == http.MethodDelete:
		s.commitDelete(w, r)
	case action == "edit" && r.Method == http.MethodPost:
		s.beginEdit(w, r, id)
	case action == "delete" && r.Method == http.MethodPost:
		s.requestDelete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	candidate, err := parseTransactionRequest(r)
	if err != nil {
		var fieldErrs core.FieldErrors
		if errors.As(err, &fieldErrs) {
			writeFieldErrors(w, fieldErrs)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := s.store.Update(r.Context(), id, candidate)
	if err != nil && !errors.Is(err, ledger.ErrWriteThrough) {
		var fieldErrs core.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			writeFieldErrors(w, fieldErrs)
		case errors.Is(err, ledger.ErrNotFound):
			writeError(w, http.StatusNotFound, "transaction not found")
		default:
			slog.ErrorContext(r.Context(), "Failed to update transaction", "transaction_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to update transaction")
		}
		return
	}

	s.invalidateViews()

	resp := transactionResponse{Transaction: s.view(tx)}
	if errors.Is(err, ledger.ErrWriteThrough) {
		slog.WarnContext(r.Context(), "Write-through failed", "transaction_id", id, "error", err)
		resp.Warning = writeThroughWarning
	}
	writeJSON(w, http.StatusOK, resp)
}

// requestDelete issues a single-use confirmation token; nothing is
// removed until the client commits with it.
func (s *Server) requestDelete(w http.ResponseWriter, r *http.Request, id string) {
	intent, err := s.store.RequestDelete(id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to request delete", "transaction_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to request delete")
		return
	}

	writeJSON(w, http.StatusOK, deleteIntentResponse{Token: intent.Token, ID: intent.ID})
}

func (s *Server) commitDelete(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "confirmation token required")
		return
	}

	err := s.store.CommitDelete(r.Context(), token)
	if err != nil && !errors.Is(err, ledger.ErrWriteThrough) {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no pending delete for token")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	s.invalidateViews()

	if errors.Is(err, ledger.ErrWriteThrough) {
		slog.WarnContext(r.Context(), "Write-through failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "warning": writeThroughWarning})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) beginEdit(w http.ResponseWriter, r *http.Request, id string) {
	tx, err := s.store.BeginEdit(id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to begin edit", "transaction_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to begin edit")
		return
	}

	writeJSON(w, http.StatusOK, transactionResponse{Transaction: s.view(tx)})
}

func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.store.CancelEdit()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

const viewCacheKey = "all"

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	summary, ok := s.summaryCache.Get(viewCacheKey)
	if !ok {
		summary = query.Summarize(s.store.List())
		s.summaryCache.Set(viewCacheKey, summary)
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		IncomeCents:  summary.IncomeCents,
		ExpenseCents: summary.ExpenseCents,
		BalanceCents: summary.BalanceCents,
		Income:       core.FormatAmount(summary.IncomeCents, s.currency),
		Expenses:     core.FormatAmount(summary.ExpenseCents, s.currency),
		Balance:      core.FormatAmount(summary.BalanceCents, s.currency),
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	breakdown, ok := s.chartCache.Get(viewCacheKey)
	if !ok {
		breakdown = query.CategoryBreakdown(s.store.List())
		s.chartCache.Set(viewCacheKey, breakdown)
	}

	slices := make([]chartSlice, 0, len(breakdown))
	for _, ca := range breakdown {
		slices = append(slices, chartSlice{
			Category: string(ca.Category),
			Cents:    ca.Cents,
			Amount:   core.FormatAmount(ca.Cents, s.currency),
		})
	}
	writeJSON(w, http.StatusOK, chartResponse{Slices: slices})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	out := make([]string, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		out = append(out, string(c))
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": out})
}
