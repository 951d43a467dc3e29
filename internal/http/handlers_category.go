package http

import (
	"net/http"

	"expensetracker/internal/core"
)

type categoryRequest struct {
	Name string `json:"name"`
	// Global categories are visible to everyone; only admins may create
	// or request them.
	Global bool `json:"global,omitempty"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Missing token"})
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	owner := &claims.UserID
	if req.Global {
		if claims.Role != core.RoleAdmin {
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "Admin access required"})
			return
		}
		owner = nil
	}

	created, err := s.categories.Create(r.Context(), owner, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Missing token"})
		return
	}

	categories, err := s.categories.List(r.Context(), &claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if categories == nil {
		categories = []core.Category{}
	}

	respondJSON(w, http.StatusOK, categories)
}

// categoryUpdateRequest carries the only mutable field. Scope cannot be
// changed after creation, so a "global" key here is an unknown field.
type categoryUpdateRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req categoryUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.categories.Update(r.Context(), id, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	deleted, err := s.categories.Delete(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, deleted)
}
