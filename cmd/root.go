package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/talentmatch/talentmatch/infrastructure/llm"
	"github.com/talentmatch/talentmatch/infrastructure/oracle"
	"github.com/talentmatch/talentmatch/internal/config"
	"github.com/talentmatch/talentmatch/internal/logger"
	"github.com/talentmatch/talentmatch/internal/ports"
)

const app = "talentmatch"

var (
	// Flags shared by every command.
	cfgFile   string
	debugFlag bool
	jsonFlag  bool

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentmatch scores candidate pools against job profiles through an LLM scoring oracle",
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is built-in defaults plus TALENTMATCH_* environment)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonFlag, "json", "j", false, "json format for logging")
}

// loadConfig reads the configuration and applies the logging flags on
// top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if debugFlag {
		cfg.Logging.Debug = true
	}
	if jsonFlag {
		cfg.Logging.JSON = true
	}
	return cfg, nil
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
}

// buildOracle assembles the LLM transport with its middleware chain and
// the scoring oracle on top of it. The chain runs outermost-first:
// tracing, metrics, logging, rate limit, optional retry, timeout.
func buildOracle(cfg *config.Config, log *zap.Logger, metrics ports.MetricsCollector) (*oracle.Client, error) {
	chain := []llm.Middleware{
		llm.Tracing(),
	}
	if metrics != nil {
		chain = append(chain, llm.Metrics(metrics))
	}
	chain = append(chain, llm.Logging(log))
	if cfg.Oracle.RequestsPerSecond > 0 {
		chain = append(chain, llm.RateLimit(rate.Limit(cfg.Oracle.RequestsPerSecond), 1))
	}
	if cfg.Oracle.MaxRetries > 0 {
		chain = append(chain, llm.Retry(cfg.Oracle.MaxRetries, time.Second, 30*time.Second))
	}
	if cfg.Oracle.RequestTimeout > 0 {
		chain = append(chain, llm.Timeout(cfg.Oracle.RequestTimeout))
	}

	client, err := llm.New(cfg.Oracle.Provider, llm.Config{
		APIKey:     cfg.Oracle.APIKey,
		Model:      cfg.Oracle.Model,
		Middleware: chain,
	})
	if err != nil {
		return nil, fmt.Errorf("build llm client: %w", err)
	}

	return oracle.NewClient(client, oracle.Config{
		Temperature: cfg.Oracle.Temperature,
		MaxTokens:   cfg.Oracle.MaxTokens,
	}, log)
}
