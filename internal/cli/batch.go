package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ppiankov/medgarble/internal/dialogue"
	"github.com/ppiankov/medgarble/internal/model"
	"github.com/ppiankov/medgarble/internal/pipeline"
	"github.com/ppiankov/medgarble/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency int
	outputDir   string
	baseSeed    int64
	runs        int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file|dir>",
	Short: "Garble many conversations (or many seeded runs) in parallel",
	Long: `Batch garbles conversations concurrently:
- Input is a conversation file, or a directory of .yaml/.yml files
- Every conversation gets a distinct seed derived from --base-seed
- With --runs N, the first conversation is garbled N times under N seeds,
  with aggregate error statistics across runs
- Each job owns its injector, so jobs stay individually reproducible

Example:
  medgarble batch conversations.yaml --base-seed 100
  medgarble batch conversations.yaml --runs 10 --base-seed 200
  medgarble batch ./dialogues/ --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchCmd,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./medgarble-reports", "output directory for reports")
	batchCmd.Flags().Int64Var(&baseSeed, "base-seed", 100, "base seed; job i runs with base-seed+i")
	batchCmd.Flags().IntVar(&runs, "runs", 1, "number of seeded runs of the first conversation")
	batchCmd.Flags().Float64VarP(&probability, "probability", "p", 0.18, "per-token error probability")
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx := context.Background()

	conversations, err := loadBatchInput(file)
	if err != nil {
		return err
	}

	cfg := model.DefaultConfig()
	cfg.Inject.ErrorProbability = probability
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Medgarble Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:     %s (%d conversations)\n", file, len(conversations))
	fmt.Fprintf(os.Stderr, "  Workers:        %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:     %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Base seed:      %d\n", baseSeed)
	fmt.Fprintf(os.Stderr, "  Probability:    %.2f\n", probability)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(cfg, concurrency)

	var results []*worker.GarbleResult
	if runs > 1 {
		seeds := make([]int64, runs)
		for i := range seeds {
			seeds[i] = baseSeed + int64(i)
		}
		results = processor.ProcessSeeds(ctx, conversations[0], seeds)
	} else {
		results = processor.ProcessConversations(ctx, conversations, baseSeed)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0
	totalErrors := 0
	totalCritical := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s (seed %d): %v\n", result.Title, result.Seed, result.Error)
			continue
		}

		successCount++
		totalErrors += result.Report.Summary.Total
		totalCritical += result.Report.Summary.Critical

		slug := fmt.Sprintf("%s-seed%d", sanitizeFilename(result.Title), result.Seed)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Title, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Title, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (seed %d): %d errors, %d critical\n",
			result.Title, result.Seed, result.Report.Summary.Total, result.Report.Summary.Critical)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Jobs:       %d (%d ok, %d failed)\n", len(results), successCount, failureCount)
	if successCount > 0 {
		fmt.Fprintf(os.Stderr, "  Errors:     %d total, %d critical (avg %.1f per run)\n",
			totalErrors, totalCritical, float64(totalErrors)/float64(successCount))
	}
	fmt.Fprintf(os.Stderr, "  Output:     %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// loadBatchInput loads conversations from a single file, or from every
// .yaml/.yml file in a directory.
func loadBatchInput(path string) ([]model.Conversation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		return dialogue.LoadFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var conversations []model.Conversation
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		loaded, err := dialogue.LoadFile(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		conversations = append(conversations, loaded...)
	}

	if len(conversations) == 0 {
		return nil, fmt.Errorf("no conversation files found in %s", path)
	}
	return conversations, nil
}

// sanitizeFilename makes a conversation title safe for use as a filename
func sanitizeFilename(s string) string {
	if s == "" {
		s = "conversation"
	}
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
