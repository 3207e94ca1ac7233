// Package cmd defines the readpage command-line interface.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/readpage/internal/cache"
	"github.com/JakeFAU/readpage/internal/clock/system"
	"github.com/JakeFAU/readpage/internal/config"
	"github.com/JakeFAU/readpage/internal/convert"
	"github.com/JakeFAU/readpage/internal/fetch/direct"
	"github.com/JakeFAU/readpage/internal/fetch/headless"
	"github.com/JakeFAU/readpage/internal/fetch/readerapi"
	"github.com/JakeFAU/readpage/internal/fetch/social"
	"github.com/JakeFAU/readpage/internal/logging"
	"github.com/JakeFAU/readpage/internal/reader"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readpage",
		Short: "Fetch any URL as readable Markdown.",
		Long: `readpage retrieves web pages as readable Markdown for AI agents,
escalating through progressively heavier strategies (plain fetch, platform
APIs, a reader service, a headless browser) until one yields real content.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newReadCmd())
	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildService wires the full strategy chain from configuration. The returned
// browser manager must be shut down by the caller on exit.
func buildService(cfg config.Config, logger *zap.Logger) (*reader.Service, *headless.Browser) {
	converter := convert.NewMarkdown()
	validator := reader.NewContentValidator(cfg.Validator.MinLength, nil)
	clock := system.New()
	store := cache.New(cfg.CacheTTL(), clock)

	directFetcher := direct.New(direct.Config{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
	}, converter, validator, logger)

	socialFetcher := social.New(social.Config{
		Endpoint: cfg.Fetch.SocialEndpoint,
		Timeout:  time.Duration(cfg.Fetch.SocialTimeoutSec) * time.Second,
	}, logger)

	readerFetcher := readerapi.New(readerapi.Config{
		Endpoint: cfg.ReaderAPI.Endpoint,
		APIKey:   cfg.ReaderAPI.APIKey,
		Timeout:  time.Duration(cfg.ReaderAPI.TimeoutSeconds) * time.Second,
	}, validator, logger)

	var (
		browser          *headless.Browser
		headlessStrategy reader.Strategy
	)
	if cfg.Headless.Enabled {
		browser = headless.NewBrowser(cfg.Headless.UserAgent, logger)
		headlessStrategy = headless.New(headless.Config{
			NavTimeout:       time.Duration(cfg.Headless.NavTimeoutSec) * time.Second,
			SettleTime:       time.Duration(cfg.Headless.SettleSeconds) * time.Second,
			UserAgent:        cfg.Headless.UserAgent,
			BlockedDomains:   cfg.Headless.BlockedDomains,
			BlockedMediaExts: cfg.Headless.BlockedMediaExts,
			DomainQPS:        cfg.Headless.DomainQPS,
		}, browser, converter, logger)
	}

	svc := reader.NewService(directFetcher, socialFetcher, readerFetcher, headlessStrategy, store, logger)
	return svc, browser
}

func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}
