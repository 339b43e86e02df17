package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hylla/wishlist/internal/adapters/server/common"
	"github.com/hylla/wishlist/internal/app"
	"github.com/hylla/wishlist/internal/domain"
)

// stubListService provides deterministic list responses for handler tests.
type stubListService struct {
	lists       []domain.List
	list        domain.List
	err         error
	lastOwner   string
	lastVisitor string
	lastCreate  common.CreateListRequest
	lastUpdate  common.UpdateListRequest
	lastDelete  string
	lastAdd     common.AddItemRequest
	lastRemove  [2]string
}

func (s *stubListService) ListLists(ctx context.Context, ownerID string) ([]common.ListEnvelope, error) {
	s.lastOwner = ownerID
	s.lastVisitor, _ = app.VisitorFromContext(ctx)
	if s.err != nil {
		return nil, s.err
	}
	return common.Envelop(s.lists), nil
}

func (s *stubListService) GetList(_ context.Context, _ string) (domain.List, error) {
	return s.list, s.err
}

func (s *stubListService) CreateList(_ context.Context, req common.CreateListRequest) (domain.List, error) {
	s.lastCreate = req
	return s.list, s.err
}

func (s *stubListService) UpdateList(_ context.Context, req common.UpdateListRequest) (domain.List, error) {
	s.lastUpdate = req
	return s.list, s.err
}

func (s *stubListService) DeleteList(_ context.Context, listID string) error {
	s.lastDelete = listID
	return s.err
}

func (s *stubListService) AddItem(_ context.Context, req common.AddItemRequest) (domain.List, error) {
	s.lastAdd = req
	return s.list, s.err
}

func (s *stubListService) RemoveItem(_ context.Context, listID, itemID string) (domain.List, error) {
	s.lastRemove = [2]string{listID, itemID}
	return s.list, s.err
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.Header.Set(common.VisitorHeader, "v1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// TestHandlerListListsReturnsEnvelopes verifies collection responses wrap lists in envelopes.
func TestHandlerListListsReturnsEnvelopes(t *testing.T) {
	svc := &stubListService{lists: []domain.List{{ID: "1", Name: "Groceries"}, {ID: "2", Name: "Books"}}}
	rec := serve(t, NewHandler(svc), http.MethodGet, "/lists?owner_id=v1", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got ListCollection
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got.Items) != 2 || got.Items[1].ID != "2" || got.Items[1].Data.List.Name != "Books" {
		t.Fatalf("unexpected items %#v", got.Items)
	}
	if svc.lastOwner != "v1" || svc.lastVisitor != "v1" {
		t.Fatalf("owner/visitor = %q/%q, want v1/v1", svc.lastOwner, svc.lastVisitor)
	}
}

// TestHandlerListListsRequiresOwner verifies the owner filter is mandatory.
func TestHandlerListListsRequiresOwner(t *testing.T) {
	rec := serve(t, NewHandler(&stubListService{}), http.MethodGet, "/lists", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// TestHandlerMutationsRouteToService verifies each mutation route decodes its body and path ids.
func TestHandlerMutationsRouteToService(t *testing.T) {
	svc := &stubListService{list: domain.List{ID: "l1", Name: "Gifts"}}
	h := NewHandler(svc)

	if rec := serve(t, h, http.MethodPost, "/lists", `{"owner_id":"v1","name":"Gifts","public":true}`); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	if svc.lastCreate.Name != "Gifts" || !svc.lastCreate.Public {
		t.Fatalf("unexpected create request %#v", svc.lastCreate)
	}
	if rec := serve(t, h, http.MethodPut, "/lists/l1", `{"name":"Presents"}`); rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	if svc.lastUpdate.ListID != "l1" || svc.lastUpdate.Name != "Presents" {
		t.Fatalf("unexpected update request %#v", svc.lastUpdate)
	}
	if rec := serve(t, h, http.MethodPost, "/lists/l1/items", `{"product_id":"p1","quantity":2}`); rec.Code != http.StatusCreated {
		t.Fatalf("add item status = %d", rec.Code)
	}
	if svc.lastAdd.ListID != "l1" || svc.lastAdd.Quantity != 2 {
		t.Fatalf("unexpected add request %#v", svc.lastAdd)
	}
	if rec := serve(t, h, http.MethodDelete, "/lists/l1/items/i1", ""); rec.Code != http.StatusOK {
		t.Fatalf("remove item status = %d", rec.Code)
	}
	if svc.lastRemove != [2]string{"l1", "i1"} {
		t.Fatalf("unexpected remove args %v", svc.lastRemove)
	}
	if rec := serve(t, h, http.MethodDelete, "/lists/l1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if svc.lastDelete != "l1" {
		t.Fatalf("delete id = %q, want l1", svc.lastDelete)
	}
}

// TestHandlerErrorMapping verifies structured status mapping for service errors.
func TestHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not found", err: errors.Join(common.ErrNotFound, app.ErrNotFound), status: http.StatusNotFound, code: "not_found"},
		{name: "forbidden", err: common.ErrForbidden, status: http.StatusForbidden, code: "forbidden"},
		{name: "conflict", err: common.ErrConflict, status: http.StatusConflict, code: "conflict"},
		{name: "invalid", err: common.ErrInvalidArgument, status: http.StatusBadRequest, code: "invalid_request"},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, NewHandler(&stubListService{err: tc.err}), http.MethodGet, "/lists/l1", "")
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var env ErrorEnvelope
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if env.Error.Code != tc.code {
				t.Fatalf("code = %q, want %q", env.Error.Code, tc.code)
			}
		})
	}
}

// TestHandlerRejectsMalformedRequests verifies routing and decoding fail closed.
func TestHandlerRejectsMalformedRequests(t *testing.T) {
	h := NewHandler(&stubListService{})
	cases := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{name: "unknown path", method: http.MethodGet, target: "/carts", status: http.StatusNotFound},
		{name: "bad nested path", method: http.MethodGet, target: "/lists/l1/other", status: http.StatusNotFound},
		{name: "method", method: http.MethodPatch, target: "/lists/l1", status: http.StatusMethodNotAllowed},
		{name: "unknown field", method: http.MethodPost, target: "/lists", body: `{"nope":1}`, status: http.StatusBadRequest},
		{name: "trailing", method: http.MethodPost, target: "/lists", body: `{"name":"a"}{}`, status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, h, tc.method, tc.target, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}
