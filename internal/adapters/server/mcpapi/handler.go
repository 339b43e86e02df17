// Package mcpapi provides a stateless MCP streamable-HTTP adapter.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hylla/wishlist/internal/adapters/server/common"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds one stateless MCP adapter exposing the list tools.
func NewHandler(cfg Config, lists common.ListService) (*Handler, error) {
	if lists == nil {
		return nil, fmt.Errorf("list service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerListReadTools(mcpSrv, lists)
	registerListWriteTools(mcpSrv, lists)
	registerItemTools(mcpSrv, lists)

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "wishlist"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	if !strings.HasPrefix(cfg.EndpointPath, "/") {
		cfg.EndpointPath = "/" + cfg.EndpointPath
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// visitorOption declares the optional acting-visitor argument shared by every tool.
func visitorOption() mcp.ToolOption {
	return mcp.WithString("visitor_id", mcp.Description("Acting visitor; enforces ownership when set"))
}

// scopedContext applies the optional visitor_id argument to ctx.
func scopedContext(ctx context.Context, req mcp.CallToolRequest) context.Context {
	return common.WithVisitor(ctx, req.GetString("visitor_id", ""))
}

// jsonResult encodes one tool payload.
func jsonResult(tool string, payload any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", tool, err)
	}
	return result, nil
}

// registerListReadTools registers `wishlist.list_lists` and `wishlist.get_list`.
func registerListReadTools(srv *mcpserver.MCPServer, lists common.ListService) {
	srv.AddTool(
		mcp.NewTool(
			"wishlist.list_lists",
			mcp.WithDescription("List one visitor's wish lists in creation order."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Visitor owning the lists")),
			visitorOption(),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			envelopes, err := lists.ListLists(scopedContext(ctx, req), ownerID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			return jsonResult("list_lists", map[string]any{
				"items": envelopes,
			})
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"wishlist.get_list",
			mcp.WithDescription("Return one wish list with its items."),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("List identifier")),
			visitorOption(),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			listID, err := req.RequireString("list_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			list, err := lists.GetList(scopedContext(ctx, req), listID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			return jsonResult("get_list", list)
		},
	)
}

// registerListWriteTools registers create, update and delete list tools.
func registerListWriteTools(srv *mcpserver.MCPServer, lists common.ListService) {
	srv.AddTool(
		mcp.NewTool(
			"wishlist.create_list",
			mcp.WithDescription("Create a wish list for a visitor."),
			mcp.WithString("owner_id", mcp.Required(), mcp.Description("Visitor owning the list")),
			mcp.WithString("name", mcp.Required(), mcp.Description("List name")),
			mcp.WithString("description", mcp.Description("Markdown description")),
			mcp.WithBoolean("public", mcp.Description("Whether other visitors can see the list")),
			visitorOption(),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ownerID, err := req.RequireString("owner_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			name, err := req.RequireString("name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			list, err := lists.CreateList(scopedContext(ctx, req), common.CreateListRequest{
				OwnerID:     ownerID,
				Name:        name,
				Description: req.GetString("description", ""),
				Public:      req.GetBool("public", false),
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			return jsonResult("create_list", list)
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"wishlist.update_list",
			mcp.WithDescription("Rename a wish list and replace its description and visibility."),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("List identifier")),
			mcp.WithString("name", mcp.Required(), mcp.Description("List name")),
			mcp.WithString("description", mcp.Description("Markdown description")),
			mcp.WithBoolean("public", mcp.Description("Whether other visitors can see the list")),
			visitorOption(),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			listID, err := req.RequireString("list_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			name, err := req.RequireString("name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			list, err := lists.UpdateList(scopedContext(ctx, req), common.UpdateListRequest{
				ListID:      listID,
				Name:        name,
				Description: req.GetString("description", ""),
				Public:      req.GetBool("public", false),
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			return jsonResult("update_list", list)
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"wishlist.delete_list",
			mcp.WithDescription("Delete a wish list and its items."),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("List identifier")),
			visitorOption(),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			listID, err := req.RequireString("list_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := lists.DeleteList(scopedContext(ctx, req), listID); err != nil {
				return toolResultFromError(err), nil
			}
			return jsonResult("delete_list", map[string]any{
				"deleted": listID,
			})
		},
	)
}

// registerItemTools registers item add/remove tools.
func registerItemTools(srv *mcpserver.MCPServer, lists common.ListService) {
	srv.AddTool(
		mcp.NewTool(
			"wishlist.add_item",
			mcp.WithDescription("Save a product on a wish list."),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("List identifier")),
			mcp.WithString("product_id", mcp.Required(), mcp.Description("Product identifier")),
			mcp.WithString("sku", mcp.Description("SKU identifier")),
			mcp.WithString("name", mcp.Description("Product display name")),
			mcp.WithNumber("quantity", mcp.Description("Quantity, defaults to 1")),
			visitorOption(),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			listID, err := req.RequireString("list_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			productID, err := req.RequireString("product_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			list, err := lists.AddItem(scopedContext(ctx, req), common.AddItemRequest{
				ListID:    listID,
				ProductID: productID,
				SKU:       req.GetString("sku", ""),
				Name:      req.GetString("name", ""),
				Quantity:  req.GetInt("quantity", 0),
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			return jsonResult("add_item", list)
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"wishlist.remove_item",
			mcp.WithDescription("Remove one saved item from a wish list."),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("List identifier")),
			mcp.WithString("item_id", mcp.Required(), mcp.Description("Item identifier")),
			visitorOption(),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			listID, err := req.RequireString("list_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			itemID, err := req.RequireString("item_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			list, err := lists.RemoveItem(scopedContext(ctx, req), listID, itemID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			return jsonResult("remove_item", list)
		},
	)
}

// toolResultFromError maps service errors into MCP-visible tool errors.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, common.ErrInvalidArgument):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	case errors.Is(err, common.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	case errors.Is(err, common.ErrForbidden):
		return mcp.NewToolResultError("forbidden: " + err.Error())
	case errors.Is(err, common.ErrConflict):
		return mcp.NewToolResultError("conflict: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}
