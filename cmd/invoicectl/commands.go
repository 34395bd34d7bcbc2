package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"wc-invoice-gateway/internal/gateway"
	"wc-invoice-gateway/internal/handler"
	"wc-invoice-gateway/internal/model"
)

// =============================================================================
// DATA COMMAND
// =============================================================================

func dataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "data [method]",
		Short: "Show the block checkout payload of a payment method",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "invoice"
			if len(args) == 1 {
				name = args[0]
			}

			var resp handler.PaymentMethodResponse
			if err := doRequest("GET", "/payment-methods/"+url.PathEscape(name), nil, &resp); err != nil {
				return fmt.Errorf("fetching payment method: %w", err)
			}

			if quiet {
				fmt.Println(resp.Active)
				return nil
			}
			printSuccess("Payment method %s", resp.Name)
			fmt.Printf("  Active:  %s\n", yesNo(resp.Active))
			fmt.Printf("  Scripts: %s\n", strings.Join(resp.ScriptHandles, ", "))
			d := resp.Data
			fmt.Printf("  Title:   %s%s%s\n", colorCyan, d.Title, colorReset)
			fmt.Printf("  Status:  %s\n", d.OrderStatus)
			fmt.Printf("  Roles:   %s\n", listOrAny(d.EnableForUserRoles))
			fmt.Printf("  Methods: %s\n", listOrAny(d.EnableForShippingMethods))
			fmt.Printf("  Virtual: %s\n", yesNo(d.EnableForVirtual))
			fmt.Printf("  You:     %s\n", listOrAny(d.CurrentUserRole))
			return nil
		},
	}
}

// =============================================================================
// AVAILABLE COMMAND
// =============================================================================

func availableCmd() *cobra.Command {
	var req handler.AvailabilityRequest

	cmd := &cobra.Command{
		Use:   "available",
		Short: "Check whether the gateway is offered for a cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp handler.AvailabilityResponse
			if err := doRequest("POST", "/checkout/availability", req, &resp); err != nil {
				return fmt.Errorf("checking availability: %w", err)
			}

			if quiet {
				fmt.Println(resp.Available)
				return nil
			}
			if resp.Available {
				printSuccess("%s is available", resp.Method)
			} else {
				printWarning("%s is not available", resp.Method)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&req.NeedsShipping, "needs-shipping", false, "Cart needs shipping")
	cmd.Flags().StringSliceVar(&req.ChosenShippingMethods, "method", nil, "Chosen shipping rate id, e.g. flat_rate:1 (repeatable)")
	return cmd
}

// =============================================================================
// PAY COMMAND
// =============================================================================

func payCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <order-id>",
		Short: "Place an order with the invoice gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			var result model.PaymentResult
			if err := doRequest("POST", fmt.Sprintf("/orders/%d/payment", id), nil, &result); err != nil {
				return fmt.Errorf("processing payment: %w", err)
			}

			if quiet {
				fmt.Println(result.Redirect)
				return nil
			}
			printSuccess("Payment %s", result.Result)
			fmt.Printf("  Redirect: %s%s%s\n", colorCyan, result.Redirect, colorReset)
			return nil
		},
	}
}

func instructionsCmd() *cobra.Command {
	var sentToAdmin bool

	cmd := &cobra.Command{
		Use:   "instructions <order-id>",
		Short: "Show the thank-you and email instructions of an invoice order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			path := fmt.Sprintf("/orders/%d/instructions", id)
			if sentToAdmin {
				path += "?sent_to_admin=true"
			}
			var resp gateway.Instructions
			if err := doRequest("GET", path, nil, &resp); err != nil {
				return fmt.Errorf("fetching instructions: %w", err)
			}

			if quiet {
				fmt.Println(resp.Email)
				return nil
			}
			fmt.Printf("  Thank you page: %s\n", resp.ThankYou)
			if resp.Email == "" {
				printWarning("Email carries no instructions for this order")
				return nil
			}
			fmt.Printf("  Email: %s\n", resp.Email)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sentToAdmin, "admin", false, "Show the admin copy of the email")
	return cmd
}

// =============================================================================
// ACTIONS COMMAND
// =============================================================================

func actionsCmd() *cobra.Command {
	var (
		order   model.Order
		status  string
		actions []string
	)

	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Filter the My Account actions of an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			order.Status = model.OrderStatus(status)
			req := handler.OrderActionsRequest{Order: order}
			for _, key := range actions {
				req.Actions = append(req.Actions, model.OrderAction{Key: key, Name: key})
			}

			var resp handler.OrderActionsResponse
			if err := doRequest("POST", "/orders/actions", req, &resp); err != nil {
				return fmt.Errorf("filtering actions: %w", err)
			}

			keys := make([]string, 0, len(resp.Actions))
			for _, a := range resp.Actions {
				keys = append(keys, a.Key)
			}
			if quiet {
				fmt.Println(strings.Join(keys, ","))
				return nil
			}
			printSuccess("%d action(s) remain", len(keys))
			for _, a := range resp.Actions {
				fmt.Printf("  - %s: %s\n", a.Key, a.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&order.ID, "order-id", 0, "Order id")
	cmd.Flags().StringVar(&status, "status", "on-hold", "Order status")
	cmd.Flags().StringVar(&order.PaymentMethod, "payment-method", "invoice", "Order payment method")
	cmd.Flags().StringSliceVar(&actions, "action", []string{"pay", "view", "cancel"}, "Action keys to filter")
	return cmd
}

// =============================================================================
// ADMIN COMMANDS
// =============================================================================

func noticesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notices",
		Short: "Show the admin notices the plugin raises",
		RunE: func(cmd *cobra.Command, args []string) error {
			var notices model.NoticeList
			if err := doRequest("GET", "/admin/notices", nil, &notices); err != nil {
				return fmt.Errorf("fetching notices: %w", err)
			}
			if len(notices.Items) == 0 {
				printSuccess("No notices")
				return nil
			}
			for _, n := range notices.Items {
				printWarning("[%s] %s", n.Type, n.Message)
				if n.LinkURL != "" {
					fmt.Printf("  %s: %s\n", n.LinkText, n.LinkURL)
				}
			}
			return nil
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]any
			if err := doRequest("GET", "/health", nil, &resp); err != nil {
				return err
			}
			if quiet {
				fmt.Println(resp["status"])
				return nil
			}
			printSuccess("Service %v", resp["status"])
			fmt.Printf("  WooCommerce:      %v\n", resp["woocommerce"])
			fmt.Printf("  Gateway included: %v\n", resp["gateway_included"])
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return colorGreen + "yes" + colorReset
	}
	return colorRed + "no" + colorReset
}

func listOrAny(items []string) string {
	if len(items) == 0 {
		return colorGray + "(any)" + colorReset
	}
	return strings.Join(items, ", ")
}
