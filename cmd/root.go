package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/sfctl/config"
	"github.com/s0up4200/sfctl/salesforce"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *salesforce.Client

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sfctl",
	Short: "A CLI for the Salesforce REST API",
	Long: `sfctl is a thin command-line wrapper around the Salesforce REST API.
It logs in with an OAuth2 password grant and exposes record CRUD, object
metadata, SOQL queries, and org discovery endpoints as subcommands.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build metadata for the version template.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", appVersion, appBuildTime)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(limitsCmd)
	rootCmd.AddCommand(objectsCmd)
	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(sobjectCmd)
	rootCmd.AddCommand(describeCmd)
}

// initializeApp loads configuration, builds the logger and client, and logs in
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create Salesforce client
	client, err = salesforce.NewClient(salesforce.Credentials{
		ClientID:      cfg.Salesforce.ClientID,
		ClientSecret:  cfg.Salesforce.ClientSecret,
		Username:      cfg.Salesforce.Username,
		Password:      cfg.Salesforce.Password,
		SecurityToken: cfg.Salesforce.SecurityToken,
	}, logger,
		salesforce.WithLoginURL(cfg.Salesforce.LoginURL),
		salesforce.WithAPIVersion(cfg.Salesforce.APIVersion),
		salesforce.WithConnectTimeout(cfg.HTTP.ConnectTimeout),
		salesforce.WithTimeout(cfg.HTTP.Timeout),
		salesforce.WithUserAgent("sfctl/"+appVersion),
	)
	if err != nil {
		return fmt.Errorf("failed to create Salesforce client: %w", err)
	}

	if _, err := client.Login(cmd.Context()); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only on a real terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// printResult writes an API result as indented JSON to stdout
func printResult(result salesforce.Result) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test login and connectivity",
	Long:  `Log in to Salesforce and list the API versions available on the instance.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s as %s...\n", cfg.Salesforce.LoginURL, cfg.Salesforce.Username)

	// Login already happened during initialization
	fmt.Println("✓ Login successful!")

	versions, err := client.APIVersions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get API versions: %w", err)
	}

	if list, ok := versions.([]any); ok {
		fmt.Printf("\nAvailable API versions: %d\n", len(list))
	}
	return printResult(versions)
}

// versionsCmd lists the API versions available on the instance
var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List available API versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.APIVersions(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(result)
	},
}

// limitsCmd shows the org's limits and consumption
var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show org limits",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.OrgLimits(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(result)
	},
}

// objectsCmd lists all sObject types
var objectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "List all sObject types",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.AllObjects(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(result)
	},
}

// resourcesCmd lists the resources under the versioned API root
var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List available API resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.AvailableResources(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(result)
	},
}
