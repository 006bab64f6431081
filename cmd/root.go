package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/solrkit/solrkit/config"
	"github.com/solrkit/solrkit/solr"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *solr.Client

	// Command flags
	queryExpr string
	preset    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "solrkit",
	Short: "A tool to query and inspect a Solr collection",
	Long: `solrkit is a CLI tool for querying a Solr search server: counting documents,
dumping search results as JSON lines, and aggregating facet counts, with
optional client-side filtering of the results.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&queryExpr, "query", "q", "", "Solr query string (default matches all documents)")
	rootCmd.PersistentFlags().StringVarP(&preset, "preset", "p", "", "use a named query preset from config")

	// Add subcommands
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(countCmd)
}

// initializeApp initializes the configuration and the Solr client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create Solr client
	client, err = solr.NewClient(cfg.Solr.URL, cfg.Solr.Endpoint, logger,
		solr.WithIDField(cfg.Solr.IDField),
		solr.WithPageSize(cfg.Solr.PageSize),
		solr.WithTimeout(time.Duration(cfg.Solr.Timeout)*time.Second),
		solr.WithRetries(cfg.Solr.Retries),
		solr.WithBackoff(cfg.Solr.Backoff),
	)
	if err != nil {
		return fmt.Errorf("failed to create Solr client: %w", err)
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

	// Console format; color only when stderr is a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// buildQuery determines the query to run
func buildQuery() (solr.Query, error) {
	// Priority: command line query > preset > match all
	if queryExpr != "" {
		return solr.Raw(queryExpr), nil
	}

	if preset != "" {
		if presetQuery, ok := cfg.Query.Presets[preset]; ok {
			return solr.Raw(presetQuery), nil
		}
		return solr.Query{}, fmt.Errorf("preset '%s' not found in config", preset)
	}

	return solr.MatchAll(), nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to Solr",
	Long:  `Test the connection to your Solr instance and display basic collection information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to Solr at %s/%s...\n", cfg.Solr.URL, cfg.Solr.Endpoint)

	ctx := context.Background()
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	total, err := client.Count(ctx, solr.MatchAll())
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}

	fmt.Printf("\nCollection statistics:\n")
	fmt.Printf("- Endpoint: %s\n", cfg.Solr.Endpoint)
	fmt.Printf("- Total documents: %d\n", total)

	if len(cfg.Query.Presets) > 0 {
		fmt.Printf("\nConfigured presets:\n")
		for name, q := range cfg.Query.Presets {
			fmt.Printf("  • %s: %s\n", name, q)
		}
	}

	return nil
}

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count documents matching the query",
	Long:  `Count the documents in the collection that match the given query.`,
	RunE:  runCount,
}

func runCount(cmd *cobra.Command, args []string) error {
	query, err := buildQuery()
	if err != nil {
		return err
	}

	logger.Debug().Str("query", query.String()).Msg("Counting documents")

	count, err := client.Count(context.Background(), query)
	if err != nil {
		return err
	}

	fmt.Println(count)
	return nil
}
