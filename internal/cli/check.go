package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/logger"
	"github.com/claimlens/claimlens/internal/pipeline"
)

var (
	checkURL     string
	checkImage   string
	checkOutput  string
	checkTimeout time.Duration
	llmProvider  string
	llmModel     string
	noCache      bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [claim text]",
	Short: "Verify a single claim, article URL or image",
	Long: `Check runs the full verification pipeline for one input:
- Extract the central factual claim
- Gather evidence from search providers and fact-checking sites
- Identify missing context and build a timeline
- Produce a verdict with a confidence score

Exactly one input is required: claim text as the argument, or one of
--url / --image.

Example:
  claimlens check "The Eiffel Tower was built in 1889"
  claimlens check --url https://example.com/article
  claimlens check --image https://example.com/screenshot.png
  claimlens check "..." --llm-provider ollama --llm-model llama3.2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkURL, "url", "", "article URL to fetch and verify")
	checkCmd.Flags().StringVar(&checkImage, "image", "", "image URL or data URL to verify")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "write the JSON result to a file instead of stdout")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall verification timeout")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable article cache (force fresh fetch)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.APIKey = "" // Re-resolve for the overridden provider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	resolveCredentials(cfg)
	if err := requireAPIKey(cfg); err != nil {
		return err
	}
	cfg.Cache.Enabled = !noCache

	in := pipeline.Input{URL: checkURL, ImageURL: checkImage}
	if len(args) == 1 {
		in.Text = args[0]
	}

	logLevel := cfg.Server.LogLevel
	if verbose {
		logLevel = "debug"
	}
	log, err := logger.NewLogger(cfg.Server.Env, logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	p, err := pipeline.NewPipeline(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	result, err := p.Check(ctx, in)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if checkOutput != "" {
		if err := os.WriteFile(checkOutput, append(out, '\n'), 0644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Result written to %s\n", checkOutput)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
