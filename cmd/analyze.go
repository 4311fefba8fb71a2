package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeInput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Detect job profiles in a tender text and print the analysis as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "text file with the tender; omit to pass the text as an argument")
}

func runAnalyze(ctx context.Context, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	text := strings.Join(args, " ")
	if analyzeInput != "" {
		raw, err := os.ReadFile(analyzeInput)
		if err != nil {
			return fmt.Errorf("read input %s: %w", analyzeInput, err)
		}
		text = string(raw)
	}

	oracleClient, err := buildOracle(cfg, log, nil)
	if err != nil {
		return err
	}

	analysis, err := oracleClient.AnalyzeTender(ctx, text)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(analysis)
}
