package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/cadence/internal/constants"
	"github.com/celestiaorg/cadence/pkg/api/v1/client"
	"github.com/celestiaorg/cadence/pkg/api/v1/routes"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagTimeout       = "timeout"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
	// requestTimeout bounds every API call
	requestTimeout time.Duration
)

// initClient initializes the API client
func initClient() error {
	var err error
	opts := client.DefaultOptions() // Start with defaults
	opts.BaseURL = serverAddress    // Override BaseURL
	opts.Timeout = requestTimeout

	apiClient, err = client.NewClient(opts)
	return err
}

// NewRootCmd builds the command tree of the CLI
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cadence",
		Short: "Cadence CLI - A command line interface for the Cadence API",
		Long: `Cadence CLI is a command line tool for managing scheduled jobs through the Cadence API.
Schedules run a shell command or request a URL on a cron trigger.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Check if the server address flag was explicitly set by the user.
			if f := cmd.Flag(flagServerAddress); f == nil || !f.Changed {
				if envAddr := os.Getenv(constants.EnvServerAddress); envAddr != "" {
					serverAddress = envAddr
				}
			}

			// Now serverAddress has the correct precedence: Flag > Env Var > Default
			if serverAddress == "" {
				return fmt.Errorf("server address cannot be empty")
			}

			// A client injected beforehand is kept
			if apiClient != nil {
				return nil
			}
			return initClient()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL,
		fmt.Sprintf("Address of the Cadence API server (env: %s)", constants.EnvServerAddress))
	rootCmd.PersistentFlags().DurationVar(&requestTimeout, flagTimeout, client.DefaultTimeout, "Timeout of each API request")

	rootCmd.AddCommand(newSchedulesCmd())
	return rootCmd
}

// Execute builds the root command and runs it
func Execute() error {
	return NewRootCmd().Execute()
}

// printJSON writes v as indented JSON to the command output
func printJSON(w io.Writer, v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(prettyJSON))
	return err
}
