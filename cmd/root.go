package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/midwife-middleware/showbook/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	// Command flags
	apiKey        string
	outputPath    string
	maxPages      int
	quick         bool
	region        string
	cacheDir      string
	fetchOnly     bool
	fromCache     string
	listProviders bool
	allowOversize bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "showbook",
	Short: "Generate a PDF book of every show and movie on every streaming service",
	Long: `showbook fetches the complete streaming catalog of the major US
providers from TMDB, caches the snapshot as JSON, and renders a
paginated, print-ready 6"x9" PDF book.

Because a PDF is clearly the best format for this.`,
	SilenceUsage: true,
	RunE:         run,
}

// SetVersion sets the version information for the root command.
func SetVersion(version, buildTime string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
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

	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "TMDB API key (or set TMDB_API_KEY env var)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output PDF path (default: showbook.pdf)")
	rootCmd.Flags().IntVar(&maxPages, "max-pages", 0, "max result pages per query, 20 titles/page (default: 500 - everything)")
	rootCmd.Flags().BoolVar(&quick, "quick", false, "quick mode: only 5 pages per query (~100 titles each). For cowards")
	rootCmd.Flags().StringVar(&region, "region", "", "watch region code (default: US)")
	rootCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for catalog snapshot artifacts")
	rootCmd.Flags().BoolVar(&fetchOnly, "fetch-only", false, "fetch and cache the catalog without building the book")
	rootCmd.Flags().StringVar(&fromCache, "from-cache", "", "build from a cached snapshot file, no network")
	rootCmd.Flags().BoolVar(&listProviders, "list-providers", false, "list the tracked streaming providers and exit")
	rootCmd.Flags().BoolVar(&allowOversize, "allow-oversize", false, "warn instead of failing when the book exceeds the page limit")
}

// initializeApp loads configuration, applies flag overrides, and sets
// up the logger.
func initializeApp(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override config file values.
	if apiKey != "" {
		cfg.TMDB.APIKey = apiKey
	}
	if outputPath != "" {
		cfg.Output.Path = outputPath
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.TMDB.MaxPages = maxPages
	}
	if region != "" {
		cfg.TMDB.Region = strings.ToUpper(region)
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	if allowOversize {
		cfg.Book.AllowOversize = true
	}
	if quick {
		cfg.TMDB.MaxPages = quickMaxPages
	}

	if cfg.TMDB.MaxPages < 1 {
		return fmt.Errorf("max-pages must be at least 1")
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
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

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
