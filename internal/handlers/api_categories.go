// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

// Categories groups the category API handlers.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates a Categories handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// CategoryRequest is the request payload for creating or renaming a
// category. The name is stored exactly as submitted, whitespace included;
// duplicates are allowed.
type CategoryRequest struct {
	Name string `json:"name"`
}

// Bind implements render.Binder.
func (req *CategoryRequest) Bind(r *http.Request) error {
	if msg := validateCategoryName(req.Name); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// List handles GET /api/categories.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		slog.Error("category list failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	render.JSON(w, r, map[string]any{"categories": categories})
}

// Create handles POST /api/categories.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	req := &CategoryRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	created, err := h.categories.Create(req.Name)
	if err != nil {
		slog.Error("category create failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{"category": created})
}

// Update handles PUT /api/categories/{id}. Renaming a category does not
// touch articles that carry the old name.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrNotFound("Category not found"))
		return
	}

	req := &CategoryRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	updated, err := h.categories.Update(id, req.Name)
	if err != nil {
		slog.Error("category update failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}
	if updated == nil {
		render.Render(w, r, ErrNotFound("Category not found"))
		return
	}

	render.JSON(w, r, map[string]any{"category": updated})
}

// Delete handles DELETE /api/categories/{id}. A miss leaves the
// collection unchanged and reports 404.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrNotFound("Category not found"))
		return
	}

	deleted, err := h.categories.Delete(id)
	if err != nil {
		slog.Error("category delete failed", "error", err)
		render.Render(w, r, ErrInternal())
		return
	}
	if !deleted {
		render.Render(w, r, ErrNotFound("Category not found"))
		return
	}

	render.Render(w, r, &MsgResponse{Message: "Category deleted"})
}
