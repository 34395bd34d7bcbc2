// MCP transport handler for the invoice gateway using the official MCP Go SDK.
// Exposes the checkout block payload, the order action filter and the
// availability rule as MCP tools.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"wc-invoice-gateway/internal/gateway"
	"wc-invoice-gateway/internal/model"
)

// === MCP Tool Input/Output Types ===

// MCPUser identifies the shopper, mirroring the Invoice-User header.
type MCPUser struct {
	ID    int      `json:"id,omitempty" jsonschema:"user ID, 0 for guests"`
	Roles []string `json:"roles,omitempty" jsonschema:"user role ids"`
}

func (u *MCPUser) toUser() model.User {
	if u == nil {
		return model.Guest()
	}
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return model.User{ID: u.ID, Roles: roles}
}

// GetPaymentMethodDataInput is the input schema for get_payment_method_data.
type GetPaymentMethodDataInput struct {
	Method string   `json:"method,omitempty" jsonschema:"payment method name, defaults to invoice"`
	User   *MCPUser `json:"user,omitempty" jsonschema:"current user, omitted for guests"`
}

// FilterOrderActionsInput is the input schema for filter_order_actions.
type FilterOrderActionsInput struct {
	Order   model.Order         `json:"order" jsonschema:"the order the actions belong to,required"`
	Actions []model.OrderAction `json:"actions" jsonschema:"actions offered for the order,required"`
}

// FilterOrderActionsOutput wraps the filtered actions.
type FilterOrderActionsOutput struct {
	Actions []model.OrderAction `json:"actions"`
}

// CheckAvailabilityInput is the input schema for check_availability.
type CheckAvailabilityInput struct {
	User                  *MCPUser `json:"user,omitempty" jsonschema:"current user, omitted for guests"`
	NeedsShipping         bool     `json:"needs_shipping" jsonschema:"false when every cart item is virtual"`
	ChosenShippingMethods []string `json:"chosen_shipping_methods,omitempty" jsonschema:"chosen shipping rate ids, e.g. flat_rate:3"`
}

// NewMCPServer creates an MCP server with the gateway tools registered.
// The server exposes the same operations as the REST API but via MCP protocol.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "wc-invoice-gateway",
			Version: "2.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "WooCommerce invoice payment gateway. " +
				"Use these tools to read the checkout payload, check whether invoice payment is offered, " +
				"and filter customer order actions.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_payment_method_data",
		Description: "Get the checkout block payload of a payment method for a user.",
	}, h.mcpGetPaymentMethodData)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_order_actions",
		Description: "Filter the My Account actions of an order. Pending invoice orders lose pay and cancel.",
	}, h.mcpFilterOrderActions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_availability",
		Description: "Check whether invoice payment is offered for a cart and user.",
	}, h.mcpCheckAvailability)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// === Tool Handlers ===

func (h *Handler) mcpGetPaymentMethodData(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetPaymentMethodDataInput,
) (*mcp.CallToolResult, *model.PaymentMethodData, error) {
	name := input.Method
	if name == "" {
		name = gateway.ID
	}

	method, ok := h.plugin.PaymentMethods().Get(name)
	if !ok {
		return nil, nil, h.mcpError(model.NewNotFoundError("payment method"))
	}

	data := method.Project(h.settings.Resolve(ctx), input.User.toUser())
	return nil, &data, nil
}

func (h *Handler) mcpFilterOrderActions(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input FilterOrderActionsInput,
) (*mcp.CallToolResult, *FilterOrderActionsOutput, error) {
	actions := h.plugin.OrderActions(ctx, input.Actions, input.Order)
	if actions == nil {
		actions = []model.OrderAction{}
	}
	return nil, &FilterOrderActionsOutput{Actions: actions}, nil
}

func (h *Handler) mcpCheckAvailability(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input CheckAvailabilityInput,
) (*mcp.CallToolResult, *AvailabilityResponse, error) {
	available := false
	if h.plugin.GatewayIncluded() {
		available = h.plugin.Gateway().IsAvailable(h.settings.Resolve(ctx), gateway.CheckoutContext{
			User:                  input.User.toUser(),
			NeedsShipping:         input.NeedsShipping,
			ChosenShippingMethods: input.ChosenShippingMethods,
		})
	}
	return nil, &AvailabilityResponse{Method: gateway.ID, Available: available}, nil
}

// mcpError converts gateway errors to MCP-friendly errors.
func (h *Handler) mcpError(err error) error {
	if apiErr, ok := model.AsAPIError(err); ok {
		return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", slog.Any("error", err))
	return fmt.Errorf("internal error")
}
