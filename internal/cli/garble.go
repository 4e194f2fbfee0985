package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/medgarble/internal/dialogue"
	"github.com/ppiankov/medgarble/internal/model"
	"github.com/ppiankov/medgarble/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	probability float64
	seedFlag    int64
	outJSON     string
	outMD       string
	asText      bool
)

// garbleCmd represents the garble command
var garbleCmd = &cobra.Command{
	Use:   "garble [file]",
	Short: "Inject translation errors into a conversation file or text",
	Long: `Garble reads a YAML conversation file (or plain text from stdin or
with --text) and injects subtle translation errors:
- Similar-sounding medical terms swapped
- Numbers misheard (fifteen vs fifty)
- Critical qualifiers omitted (not, never, without)
- Temporal terms inverted (before vs after)

Example:
  medgarble garble visit.yaml --seed 42
  medgarble garble visit.yaml --probability 0.3 --json report.json --md report.md
  echo "Take fifteen milligrams before breakfast." | medgarble garble --text --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGarble,
}

func init() {
	rootCmd.AddCommand(garbleCmd)

	garbleCmd.Flags().Float64VarP(&probability, "probability", "p", 0.15, "per-token error probability")
	garbleCmd.Flags().Int64Var(&seedFlag, "seed", 0, "random seed for reproducible runs (omit for a fresh run)")
	garbleCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	garbleCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	garbleCmd.Flags().BoolVar(&asText, "text", false, "treat input as plain text, not a conversation file")
}

func runGarble(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Inject.ErrorProbability = probability
	cfg.Output.Verbose = verbose

	seed := seedFromFlags(cmd)

	if asText || len(args) == 0 {
		text, err := readText(args)
		if err != nil {
			return err
		}

		p := pipeline.NewPipeline(cfg)
		report := p.GarbleText(text, seed)
		return p.RenderReport(report, outJSON, outMD, verbose)
	}

	conversations, err := dialogue.LoadFile(args[0])
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)
	for i, conv := range conversations {
		// All conversations share one pipeline, so a single top-level seed
		// reproduces the whole file deterministically.
		var convSeed *int64
		if seed != nil && i == 0 {
			convSeed = seed
		}
		report := p.GarbleConversation(conv, convSeed)
		if err := p.RenderReport(report, indexedPath(outJSON, i, len(conversations)), indexedPath(outMD, i, len(conversations)), verbose); err != nil {
			return err
		}
	}

	return nil
}

// seedFromFlags returns the seed only when the flag was set; an unset flag
// means a deliberately non-reproducible run.
func seedFromFlags(cmd *cobra.Command) *int64 {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	seed := seedFlag
	return &seed
}

func readText(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// indexedPath derives per-conversation output paths when a file holds more
// than one conversation ("report.json" -> "report-2.json").
func indexedPath(path string, index, total int) string {
	if path == "" || total <= 1 {
		return path
	}
	if dot := strings.LastIndex(path, "."); dot > 0 {
		return fmt.Sprintf("%s-%d%s", path[:dot], index+1, path[dot:])
	}
	return fmt.Sprintf("%s-%d", path, index+1)
}
