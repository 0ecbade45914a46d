package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/robinrj6/FFmpeg-batch/internal/watch"
	"github.com/robinrj6/FFmpeg-batch/pkg/catalog"
	"github.com/robinrj6/FFmpeg-batch/pkg/client"
	"github.com/robinrj6/FFmpeg-batch/pkg/logging"
	"github.com/robinrj6/FFmpeg-batch/pkg/retry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serviceURL  string
	catalogPath string
	cfgFile     string
	jsonOutput  bool
	logLevel    string
	pollRetries int

	appLogger *logging.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ffbatch",
	Short: "CLI for the FFmpeg batch processing service",
	Long: `ffbatch submits video processing jobs to a remote batch processor,
watches them until completion, and manages the local catalog of
processing profiles and workflows.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Help()
		return fmt.Errorf("no command specified")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ffbatch/config)")
	rootCmd.PersistentFlags().StringVar(&serviceURL, "url", "", "processor API URL (default from config or http://localhost:8000)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file (default from config or config/profiles.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output machine-readable JSON instead of tables")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default warn)")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".ffbatch/config" (without extension)
		configDir := filepath.Join(home, ".ffbatch")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// Bind specific environment variables
	viper.BindEnv("url", "FFBATCH_URL")
	viper.BindEnv("catalog", "FFBATCH_CATALOG")
	viper.BindEnv("log_level", "FFBATCH_LOG_LEVEL")

	// Flags win over config file and environment
	viper.ReadInConfig()
	if serviceURL == "" && viper.GetString("url") != "" {
		serviceURL = viper.GetString("url")
	}
	if catalogPath == "" && viper.GetString("catalog") != "" {
		catalogPath = viper.GetString("catalog")
	}
	if logLevel == "" && viper.GetString("log_level") != "" {
		logLevel = viper.GetString("log_level")
	}

	// Set defaults if still empty
	if serviceURL == "" {
		serviceURL = "http://localhost:8000"
	}
	if catalogPath == "" {
		catalogPath = "config/profiles.yaml"
	}
	if logLevel == "" {
		logLevel = "warn"
	}
}

// GetServiceURL returns the configured processor URL with trailing slashes removed
func GetServiceURL() string {
	return strings.TrimRight(serviceURL, "/")
}

// GetCatalogPath returns the configured catalog file path
func GetCatalogPath() string {
	return catalogPath
}

// IsJSONOutput returns true if JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// GetLogger returns the process logger, building it on first use. The
// instance is handed to every component explicitly.
func GetLogger() *logging.Logger {
	if appLogger == nil {
		appLogger = logging.NewLogger(logging.ParseLevel(logLevel), false)
	}
	return appLogger
}

// newAPIClient builds the processor API client from the resolved configuration
func newAPIClient() *client.Client {
	return client.New(GetServiceURL(), GetLogger())
}

// newCatalog opens the local catalog from the resolved configuration
func newCatalog() *catalog.Manager {
	return catalog.NewManager(GetCatalogPath(), GetLogger())
}

// watchInterrupts delivers Ctrl+C to the watch loop, which observes it
// between polls
func watchInterrupts() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	return ch
}

// pollRetryConfig maps the --poll-retries flag onto a retry budget. Zero
// keeps the default single-attempt polling.
func pollRetryConfig() retry.Config {
	if pollRetries <= 0 {
		return retry.Config{}
	}
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = pollRetries
	return cfg
}

// watchJob runs the watch loop for a submitted or named job. Interruption
// is a clean stop; only transport failures return an error.
func watchJob(c *client.Client, jobID string) error {
	w := watch.New(c, watch.Options{
		Interrupt: watchInterrupts(),
		Retry:     pollRetryConfig(),
		Logger:    GetLogger(),
	})
	_, err := w.Watch(jobID)
	return err
}

// printJSON renders any API response for machine consumption
func printJSON(v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
