package http

import (
	"net/http"
	"strings"

	"expensetracker/internal/core"
)

type expenseRequest struct {
	Amount      core.Money `json:"amount"`
	Vendor      string     `json:"vendor"`
	Description string     `json:"description,omitempty"`
	IncurredAt  string     `json:"incurred_at"`
}

func (req expenseRequest) toExpense() (core.Expense, error) {
	incurred, err := parseDate(req.IncurredAt)
	if err != nil {
		return core.Expense{}, &core.ValidationError{Field: "incurred_at", Reason: "must be a date (YYYY-MM-DD or RFC 3339)"}
	}
	return core.Expense{
		Amount:      req.Amount,
		Vendor:      strings.TrimSpace(req.Vendor),
		Description: strings.TrimSpace(req.Description),
		IncurredAt:  incurred,
	}, nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Missing token"})
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	expense, err := req.toExpense()
	if err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.expenses.Create(r.Context(), claims.UserID, expense)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Missing token"})
		return
	}

	var filter core.ExpenseFilter
	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		from, err := parseDate(v)
		if err != nil {
			respondError(w, r, &core.ValidationError{Field: "from", Reason: "must be a date"})
			return
		}
		filter.From = from
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		to, err := parseDate(v)
		if err != nil {
			respondError(w, r, &core.ValidationError{Field: "to", Reason: "must be a date"})
			return
		}
		filter.To = to
	}
	filter.Vendor = strings.TrimSpace(q.Get("vendor"))

	expenses, err := s.expenses.List(r.Context(), claims.UserID, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}

	respondJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Missing token"})
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	expense, err := s.expenses.Get(r.Context(), claims.UserID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Missing token"})
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	expense, err := req.toExpense()
	if err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.expenses.Update(r.Context(), claims.UserID, id, expense)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Missing token"})
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	deleted, err := s.expenses.Delete(r.Context(), claims.UserID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, deleted)
}
