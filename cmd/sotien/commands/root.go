// Package commands implements the sotien command line: offline parsing and
// split tools, plus thin clients for a running server.
package commands

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/sotien/pkg/logging"
)

var (
	serverURL string
	token     string
	logLevel  string
)

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sotien",
		Short:        "Split group expenses and parse Vietnamese transaction notes",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupWith(logLevel, "text")
		},
	}

	root.PersistentFlags().StringVar(&serverURL, "server", envOr("SOTIEN_SERVER", "http://localhost:8080"), "server base URL")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("SOTIEN_TOKEN"), "bearer token for authenticated servers")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		parseCmd(),
		classifyCmd(),
		segmentCmd(),
		splitCmd(),
		balancesCmd(),
		settleCmd(),
		tokenCmd(),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func httpClient() *http.Client {
	return http.DefaultClient
}
