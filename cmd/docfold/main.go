package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold-go"
	"github.com/docfold/docfold-go/internal/cliconfig"
)

var (
	cfgFile     string
	flagAPIKey  string
	flagBaseURL string
	version     = "dev"
	commit      = "unknown"
	buildTime   = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "docfold",
	Short: "Docfold - document generation client",
	Long:  `Command line client for the Docfold document-generation service: render templates to PDF or HTML, manage stored templates and post-process PDF documents.`,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Validate the configured API key",
	RunE:  runToken,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docfold version %s (sdk %s)\n", version, docfold.Version)
		if commit != "unknown" {
			fmt.Printf("  commit: %s\n", commit)
		}
		if buildTime != "unknown" {
			fmt.Printf("  built:  %s\n", buildTime)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL (overrides config)")

	rootCmd.AddCommand(tokenCmd, versionCmd)
}

func loadConfig() (*cliconfig.Config, error) {
	if cfgFile != "" {
		cfg, err := cliconfig.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	return cliconfig.Default(), nil
}

// newClient builds an API client from the config file and flag overrides.
func newClient() (*docfold.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if flagAPIKey != "" {
		cfg.APIKey = flagAPIKey
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required (set api_key in config, the %s environment variable, or --api-key)", cliconfig.EnvAPIKey)
	}

	opts := []docfold.Option{
		docfold.WithVersion(cfg.Version),
		docfold.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, docfold.WithBaseURL(cfg.BaseURL))
	}
	return docfold.NewClient(cfg.APIKey, opts...), nil
}

// writeOutput writes a produced document to path, or to stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.ValidateKey(cmd.Context()); err != nil {
		return fmt.Errorf("api key validation failed: %w", err)
	}
	fmt.Println("API key is valid")
	return nil
}
