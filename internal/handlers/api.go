// Copyright (c) 2026 Newsdesk Media Lab <dev@newsdesk.press>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrResponse is the JSON error body returned by the API. The wire shape
// {"error": "..."} is what the panel's browser views already consume.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	Message        string `json:"error"`
}

// Render implements render.Renderer, setting the response status code.
func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrInvalidRequest returns a 400 response for malformed or invalid input.
func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusBadRequest, Message: err.Error()}
}

// ErrNotFound returns a 404 response with the given message.
func ErrNotFound(msg string) render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: msg}
}

// ErrInternal returns a 500 response with a generic message. The real
// error is logged by the caller, never leaked to the client.
func ErrInternal() render.Renderer {
	return &ErrResponse{HTTPStatusCode: http.StatusInternalServerError, Message: "Internal server error"}
}

// MsgResponse is the JSON body for delete confirmations, matching the
// panel's {"message": "..."} wire shape.
type MsgResponse struct {
	Message string `json:"message"`
}

// Render implements render.Renderer.
func (m *MsgResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
