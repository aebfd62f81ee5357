package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/car1bo/snowattach/internal/config"
	"github.com/car1bo/snowattach/internal/display"
	"github.com/car1bo/snowattach/internal/log"
)

var (
	cfg *config.Config

	// Global flags.
	verbose    bool
	noColor    bool
	quiet      bool
	configPath string
	instance   string
)

var rootCmd = &cobra.Command{
	Use:   "snowattach",
	Short: "Export ServiceNow record attachments",
	Long: `Snowattach lists and downloads file attachments from a ServiceNow instance.

Credentials are resolved from flags, the environment (SERVICENOW_USERNAME,
SERVICENOW_PASSWORD), a .snowattach/.env file, or ~/.snowattach/config.yaml.

Quick Start:
  snowattach list incident 9d385017c611228701d22104cc95c371
  snowattach export 6e697dcb47a11200e0ef563dbb9a7126
  snowattach export --record incident:9d385017c611228701d22104cc95c371 --dest ./out

Use --dry-run on export to see what would be written without transferring.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file FIRST, before anything else
		// This ensures env vars are available for all subsequent operations
		if err := config.LoadDotEnvFromCwd(); err != nil {
			// Parsing errors are reported but don't prevent the command from running
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to load .snowattach/.env: %v\n", err)
		}

		// Configure logging from CLI flag
		log.Configure(log.Options{
			Verbose: verbose,
		})

		// Initialize color output from CLI flag (also respects NO_COLOR env)
		display.InitColors(noColor)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log.Debug("initialized", "verbose", verbose)

		return nil
	},
}

// Execute runs the root command with signal handling.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.snowattach/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&instance, "instance", "", "ServiceNow instance name or URL")
}
