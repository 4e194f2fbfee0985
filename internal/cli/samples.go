package cli

import (
	"fmt"
	"strconv"

	"github.com/ppiankov/medgarble/internal/dialogue"
	"github.com/ppiankov/medgarble/internal/model"
	"github.com/ppiankov/medgarble/internal/pipeline"
	"github.com/spf13/cobra"
)

// samplesCmd represents the samples command
var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Work with the built-in sample conversations",
	Long: `Medgarble ships a small dataset of medical conversations (consultations,
pharmacy instructions, ER triage, follow-ups) for demos and testing.

Example:
  medgarble samples list
  medgarble samples show 2
  medgarble samples garble 2 --seed 42 --probability 0.25
  medgarble samples garble --all --seed 100`,
}

var samplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in sample conversations",
	Run: func(cmd *cobra.Command, args []string) {
		for i, title := range dialogue.Titles() {
			fmt.Printf("%d. %s\n", i+1, title)
		}
	},
}

var samplesShowCmd = &cobra.Command{
	Use:   "show <number|title>",
	Short: "Print a sample conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := findSample(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\n\n", conv.Title)
		for _, turn := range conv.Turns {
			fmt.Printf("%-12s: %s\n", turn.Speaker, turn.Text)
		}
		return nil
	},
}

var samplesGarbleAll bool

var samplesGarbleCmd = &cobra.Command{
	Use:   "garble [number|title]",
	Short: "Garble a sample conversation (or all of them)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSamplesGarble,
}

func init() {
	rootCmd.AddCommand(samplesCmd)
	samplesCmd.AddCommand(samplesListCmd)
	samplesCmd.AddCommand(samplesShowCmd)
	samplesCmd.AddCommand(samplesGarbleCmd)

	samplesGarbleCmd.Flags().Float64VarP(&probability, "probability", "p", 0.18, "per-token error probability")
	samplesGarbleCmd.Flags().Int64Var(&seedFlag, "seed", 0, "random seed for reproducible runs (omit for a fresh run)")
	samplesGarbleCmd.Flags().BoolVar(&samplesGarbleAll, "all", false, "garble every sample conversation")
}

func runSamplesGarble(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Inject.ErrorProbability = probability
	cfg.Output.Verbose = verbose

	seed := seedFromFlags(cmd)

	if samplesGarbleAll {
		p := pipeline.NewPipeline(cfg)
		for i, conv := range dialogue.Samples() {
			// One seed at the start reproduces the full demo end to end
			var convSeed *int64
			if seed != nil && i == 0 {
				convSeed = seed
			}
			report := p.GarbleConversation(conv, convSeed)
			if err := p.RenderReport(report, "", "", verbose); err != nil {
				return err
			}
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("specify a sample number/title or use --all (see 'medgarble samples list')")
	}

	conv, err := findSample(args[0])
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)
	report := p.GarbleConversation(conv, seed)
	return p.RenderReport(report, "", "", verbose)
}

// findSample resolves a 1-based number or an exact title
func findSample(ref string) (model.Conversation, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		samples := dialogue.Samples()
		if n < 1 || n > len(samples) {
			return model.Conversation{}, fmt.Errorf("sample number out of range: %d (have %d samples)", n, len(samples))
		}
		return samples[n-1], nil
	}

	conv, ok := dialogue.ByTitle(ref)
	if !ok {
		return model.Conversation{}, fmt.Errorf("unknown sample: %q (see 'medgarble samples list')", ref)
	}
	return conv, nil
}
