package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"khata/internal/core"
	"khata/internal/query"
)

// transactionRequest is the wire shape accepted for create and update.
// Amount is a decimal string so the client never has to think in cents;
// the same field names work for JSON bodies and url-encoded forms.
type transactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

const maxBodySize = 1 << 20

// parseTransactionRequest reads a create/update body, JSON or form
// encoded, into a validated candidate. Parse failures on amount and
// date are folded into the same field-error map the validators use, so
// the client sees one uniform errors object.
func parseTransactionRequest(r *http.Request) (core.Candidate, error) {
	req, err := decodeTransactionRequest(r)
	if err != nil {
		return core.Candidate{}, err
	}

	parseErrs := core.FieldErrors{}

	var c core.Candidate
	c.Description = sanitizeInput(req.Description)
	c.Category = core.Category(strings.TrimSpace(req.Category))

	cents, err := core.ParseAmountToCents(req.Amount)
	if err != nil {
		parseErrs[core.FieldAmount] = "amount must be a positive number"
	} else {
		c.AmountCents = cents
	}

	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		parseErrs[core.FieldDate] = "date must be in YYYY-MM-DD format"
	} else {
		c.Date = date
	}

	if errs := core.ValidateCandidate(c, core.Today()); errs != nil {
		for field, msg := range errs {
			if _, taken := parseErrs[field]; !taken {
				parseErrs[field] = msg
			}
		}
	}
	if len(parseErrs) > 0 {
		return core.Candidate{}, parseErrs
	}

	return c, nil
}

func decodeTransactionRequest(r *http.Request) (transactionRequest, error) {
	var req transactionRequest

	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "application/json"):
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err != nil {
			return req, fmt.Errorf("failed to read request body: %w", err)
		}
		if err := json.Unmarshal(body, &req); err != nil {
			return req, fmt.Errorf("invalid JSON payload: %w", err)
		}
	case strings.Contains(contentType, "application/x-www-form-urlencoded"),
		strings.Contains(contentType, "multipart/form-data"):
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("failed to parse form: %w", err)
		}
		req.Description = r.FormValue("description")
		req.Amount = r.FormValue("amount")
		req.Category = r.FormValue("category")
		req.Date = r.FormValue("date")
	default:
		return req, fmt.Errorf("unsupported content type: %s", contentType)
	}

	return req, nil
}

// sanitizeInput trims whitespace and strips control characters that
// have no business in a description.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// parseFilter builds a query filter from list parameters. Absent
// parameters leave the corresponding dimension unconstrained; malformed
// dates are an error rather than silently ignored.
func parseFilter(r *http.Request) (query.Filter, error) {
	var f query.Filter

	q := r.URL.Query()
	if v := q.Get("category"); v != "" {
		f.Category = core.Category(v)
	}
	if v := q.Get("from"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q: %w", v, err)
		}
		f.From = d
	}
	if v := q.Get("to"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q: %w", v, err)
		}
		f.To = d
	}

	return f, nil
}
