// Package httpapi provides the REST HTTP adapter for the list surface.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hylla/wishlist/internal/adapters/server/common"
)

// maxRequestBodyBytes limits decoded JSON payload size for fail-closed request handling.
const maxRequestBodyBytes int64 = 1 << 20

// Handler serves the versioned API subrouter mounted under `/api/v1`.
type Handler struct {
	lists common.ListService
}

// APIError represents one structured API failure response.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

// ErrorEnvelope wraps one structured API error.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ListCollection is the GET `/lists` response body.
type ListCollection struct {
	Items []common.ListEnvelope `json:"items"`
}

// NewHandler constructs one HTTP API adapter over the list service.
func NewHandler(lists common.ListService) *Handler {
	return &Handler{lists: lists}
}

// route identifies the list resource a path addresses.
type route struct {
	listID string
	items  bool
	itemID string
}

// ServeHTTP routes one versioned API request to the matching handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.lists == nil {
		writeJSONError(w, http.StatusServiceUnavailable, APIError{
			Code:    "service_unavailable",
			Message: "list service is not configured",
		})
		return
	}
	rt, ok := resolveRoute(normalizePath(r.URL.Path))
	if !ok {
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: "endpoint not found",
		})
		return
	}
	r = r.WithContext(common.WithVisitor(r.Context(), r.Header.Get(common.VisitorHeader)))

	switch {
	case rt.listID == "":
		switch r.Method {
		case http.MethodGet:
			h.handleListLists(w, r)
		case http.MethodPost:
			h.handleCreateList(w, r)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	case rt.itemID != "":
		if r.Method != http.MethodDelete {
			writeMethodNotAllowed(w, http.MethodDelete)
			return
		}
		h.handleRemoveItem(w, r, rt.listID, rt.itemID)
	case rt.items:
		if r.Method != http.MethodPost {
			writeMethodNotAllowed(w, http.MethodPost)
			return
		}
		h.handleAddItem(w, r, rt.listID)
	default:
		switch r.Method {
		case http.MethodGet:
			h.handleGetList(w, r, rt.listID)
		case http.MethodPut:
			h.handleUpdateList(w, r, rt.listID)
		case http.MethodDelete:
			h.handleDeleteList(w, r, rt.listID)
		default:
			writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
		}
	}
}

// handleListLists serves GET `/lists?owner_id=`.
func (h *Handler) handleListLists(w http.ResponseWriter, r *http.Request) {
	ownerID := strings.TrimSpace(r.URL.Query().Get("owner_id"))
	if ownerID == "" {
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: "owner_id is required",
		})
		return
	}
	envelopes, err := h.lists.ListLists(r.Context(), ownerID)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListCollection{Items: envelopes})
}

// handleCreateList serves POST `/lists`.
func (h *Handler) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req common.CreateListRequest
	if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	list, err := h.lists.CreateList(r.Context(), req)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// handleGetList serves GET `/lists/{id}`.
func (h *Handler) handleGetList(w http.ResponseWriter, r *http.Request, listID string) {
	list, err := h.lists.GetList(r.Context(), listID)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleUpdateList serves PUT `/lists/{id}`.
func (h *Handler) handleUpdateList(w http.ResponseWriter, r *http.Request, listID string) {
	var req common.UpdateListRequest
	if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	req.ListID = listID
	list, err := h.lists.UpdateList(r.Context(), req)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleDeleteList serves DELETE `/lists/{id}`.
func (h *Handler) handleDeleteList(w http.ResponseWriter, r *http.Request, listID string) {
	if err := h.lists.DeleteList(r.Context(), listID); err != nil {
		writeErrorFrom(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddItem serves POST `/lists/{id}/items`.
func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request, listID string) {
	var req common.AddItemRequest
	if err := decodeJSONBody(r.Context(), w, r, &req); err != nil {
		writeErrorFrom(w, err)
		return
	}
	req.ListID = listID
	list, err := h.lists.AddItem(r.Context(), req)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// handleRemoveItem serves DELETE `/lists/{id}/items/{item_id}`.
func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request, listID, itemID string) {
	list, err := h.lists.RemoveItem(r.Context(), listID, itemID)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// resolveRoute parses `lists`, `lists/{id}`, `lists/{id}/items` and
// `lists/{id}/items/{item_id}`.
func resolveRoute(path string) (route, bool) {
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] != "lists" {
		return route{}, false
	}
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "" {
			return route{}, false
		}
	}
	switch len(parts) {
	case 1:
		return route{}, true
	case 2:
		return route{listID: parts[1]}, true
	case 3:
		if parts[2] != "items" {
			return route{}, false
		}
		return route{listID: parts[1], items: true}, true
	case 4:
		if parts[2] != "items" {
			return route{}, false
		}
		return route{listID: parts[1], items: true, itemID: parts[3]}, true
	default:
		return route{}, false
	}
}

// normalizePath canonicalizes one request path for route matching.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, "/")
	return path
}

// writeErrorFrom maps adapter errors into structured HTTP responses.
func writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: "unknown error",
		})
	case errors.Is(err, common.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, common.ErrForbidden):
		writeJSONError(w, http.StatusForbidden, APIError{
			Code:    "forbidden",
			Message: err.Error(),
			Hint:    "Only the owning visitor can change a list.",
		})
	case errors.Is(err, common.ErrConflict):
		writeJSONError(w, http.StatusConflict, APIError{
			Code:    "conflict",
			Message: err.Error(),
		})
	case errors.Is(err, common.ErrInvalidArgument):
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: err.Error(),
		})
	default:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: err.Error(),
		})
	}
}

// writeMethodNotAllowed writes a structured 405 response with `Allow` headers.
func writeMethodNotAllowed(w http.ResponseWriter, methods ...string) {
	if len(methods) > 0 {
		w.Header().Set("Allow", strings.Join(methods, ", "))
	}
	writeJSONError(w, http.StatusMethodNotAllowed, APIError{
		Code:    "method_not_allowed",
		Message: "method not allowed",
	})
}

// writeJSONError writes one structured error envelope.
func writeJSONError(w http.ResponseWriter, statusCode int, apiErr APIError) {
	writeJSON(w, statusCode, ErrorEnvelope{Error: apiErr})
}

// writeJSON writes one JSON response envelope.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":{"code":"encode_error","message":"%s"}}`, err.Error()), http.StatusInternalServerError)
	}
}

// decodeJSONBody decodes one required JSON request body with strict shape checks.
func decodeJSONBody(ctx context.Context, w http.ResponseWriter, r *http.Request, out any) error {
	reader := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer reader.Close()

	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decode request body: %w", errors.Join(common.ErrInvalidArgument, err))
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode request body: trailing content: %w", common.ErrInvalidArgument)
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("request canceled: %w", ctx.Err())
	default:
		return nil
	}
}
