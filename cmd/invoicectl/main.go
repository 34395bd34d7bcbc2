// invoicectl is a CLI tool for exercising the invoice gateway service.
// Each command performs a single operation, making it composable for scripts.
//
// Examples:
//
//	invoicectl data --user-id 7 --roles customer
//	invoicectl available --needs-shipping --method flat_rate:1
//	invoicectl pay 42
//	invoicectl actions --order-id 42 --status on-hold --payment-method invoice
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var Version = "dev"

var client = &http.Client{Timeout: 30 * time.Second}

// Global flags (apply to all commands)
var (
	serverURL string
	userID    int
	roles     []string
	lang      string
	quiet     bool
	noColor   bool
	verbose   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal("%v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "invoicectl",
		Short:         "invoicectl - invoice gateway test tool",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || os.Getenv("NO_COLOR") != "" {
				disableColors()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&serverURL, "server", envOr("INVOICE_GATEWAY_URL", "http://localhost:8080"), "Gateway service base URL")
	flags.IntVar(&userID, "user-id", 0, "Customer id sent in the Invoice-User header (0 = guest)")
	flags.StringSliceVar(&roles, "roles", nil, "Customer roles sent in the Invoice-User header")
	flags.StringVar(&lang, "lang", "", "Accept-Language for translated strings")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - only output the result")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose - show full request/response")

	root.AddCommand(dataCmd())
	root.AddCommand(availableCmd())
	root.AddCommand(payCmd())
	root.AddCommand(instructionsCmd())
	root.AddCommand(actionsCmd())
	root.AddCommand(noticesCmd())
	root.AddCommand(healthCmd())

	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s✗ %s%s\n", colorRed, fmt.Sprintf(format, args...), colorReset)
	os.Exit(1)
}
