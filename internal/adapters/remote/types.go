package remote

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hylla/wishlist/internal/domain"
)

// ListEnvelope wraps one list in a collection response.
type ListEnvelope struct {
	ID   string `json:"id"`
	Data struct {
		List domain.List `json:"list"`
	} `json:"data"`
}

// Envelope builds one envelope around list.
func Envelope(list domain.List) ListEnvelope {
	env := ListEnvelope{ID: list.ID}
	env.Data.List = list
	return env
}

// ProjectLists extracts the list payload from each envelope, preserving order.
func ProjectLists(envelopes []ListEnvelope) []domain.List {
	out := make([]domain.List, 0, len(envelopes))
	for _, env := range envelopes {
		out = append(out, env.Data.List)
	}
	return out
}

// listCollection is the GET /lists response body.
type listCollection struct {
	Items []ListEnvelope `json:"items"`
}

// CreateListInput holds the fields for a new list owned by the client's visitor.
type CreateListInput struct {
	Name        string
	Description string
	Public      bool
}

// UpdateListInput holds the replacement fields for one list.
type UpdateListInput struct {
	ListID      string
	Name        string
	Description string
	Public      bool
}

// APIError is a structured error response from the list API.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the list API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// errorEnvelope mirrors the server's error body.
type errorEnvelope struct {
	Error APIError `json:"error"`
}
