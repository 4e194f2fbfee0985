package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/medgarble/internal/cache"
	"github.com/ppiankov/medgarble/internal/llm"
	"github.com/ppiankov/medgarble/internal/model"
	"github.com/ppiankov/medgarble/internal/pipeline"
	"github.com/ppiankov/medgarble/internal/worker"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	genModel   string
	genTurns   int
	genCount   int
	genOut     string
	genNoCache bool
	genGarble  bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate fresh sample conversations with an LLM",
	Long: `Generate uses an LLM to write new medical conversations on a topic,
as input data for garbling. Generation only supplies sample dialogue;
it plays no part in error injection.

Generated dialogues are cached (memory + disk) so repeated runs on the
same topic and model do not re-pay for API calls. Requests are rate
limited.

Requires OPENAI_API_KEY in the environment.

Example:
  medgarble generate "insulin dosage adjustment"
  medgarble generate "post-operative wound care" --count 3 --out wound-care.yaml
  medgarble generate "anticoagulant interactions" --garble --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genModel, "model", "gpt-4o-mini", "LLM model name")
	generateCmd.Flags().IntVar(&genTurns, "turns", 8, "number of turns per conversation")
	generateCmd.Flags().IntVar(&genCount, "count", 1, "number of conversations to generate")
	generateCmd.Flags().StringVar(&genOut, "out", "", "write generated conversations to this YAML file")
	generateCmd.Flags().BoolVar(&genNoCache, "no-cache", false, "bypass the generation cache")
	generateCmd.Flags().BoolVar(&genGarble, "garble", false, "garble each generated conversation and print the report")
	generateCmd.Flags().Float64VarP(&probability, "probability", "p", 0.18, "per-token error probability (with --garble)")
	generateCmd.Flags().Int64Var(&seedFlag, "seed", 0, "random seed for the garble pass (with --garble)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic := args[0]
	ctx := context.Background()

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = "openai"
	cfg.LLM.Model = genModel
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return err
	}

	genCache, err := openGenerationCache(cfg)
	if err != nil {
		return err
	}

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)

	var conversations []model.Conversation
	for i := 0; i < genCount; i++ {
		title := topic
		if genCount > 1 {
			title = fmt.Sprintf("%s (%d)", topic, i+1)
		}

		conv, cached, err := generateOne(ctx, provider, genCache, limiter, title)
		if err != nil {
			return err
		}
		if verbose {
			source := "generated"
			if cached {
				source = "cache"
			}
			fmt.Fprintf(os.Stderr, "✓ %s: %d turns (%s)\n", conv.Title, len(conv.Turns), source)
		}
		conversations = append(conversations, conv)
	}

	if genOut != "" {
		if err := writeConversationsYAML(genOut, conversations); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d conversation(s): %s\n", len(conversations), genOut)
	}

	if genGarble {
		cfg.Inject.ErrorProbability = probability
		p := pipeline.NewPipeline(cfg)
		seed := seedFromFlags(cmd)
		for i, conv := range conversations {
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

	if genOut == "" {
		for _, conv := range conversations {
			fmt.Printf("%s\n\n", conv.Title)
			for _, turn := range conv.Turns {
				fmt.Printf("%-12s: %s\n", turn.Speaker, turn.Text)
			}
			fmt.Println()
		}
	}

	return nil
}

func generateOne(ctx context.Context, provider llm.Provider, genCache cache.Cache, limiter *worker.Limiter, title string) (model.Conversation, bool, error) {
	key := cache.GenerationKey(title, genModel)

	if genCache != nil && !genNoCache {
		if data, found := genCache.Get(key); found {
			var conv model.Conversation
			if err := json.Unmarshal(data, &conv); err == nil {
				return conv, true, nil
			}
			// Corrupt entry: drop it and regenerate
			_ = genCache.Delete(key)
		}
	}

	if err := limiter.Wait(ctx); err != nil {
		return model.Conversation{}, false, err
	}

	resp, err := provider.GenerateDialogue(ctx, llm.GenerateRequest{
		Topic: title,
		Turns: genTurns,
	})
	if err != nil {
		return model.Conversation{}, false, fmt.Errorf("generate dialogue: %w", err)
	}

	if genCache != nil && !genNoCache {
		if data, err := json.Marshal(resp.Conversation); err == nil {
			_ = genCache.Set(key, data, 0)
		}
	}

	return resp.Conversation, false, nil
}

// openGenerationCache builds the layered generation cache under
// ~/.medgarble/cache, or returns nil when caching is disabled.
func openGenerationCache(cfg *model.Config) (cache.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		dir = filepath.Join(home, ".medgarble", "cache")
	}

	diskTTL := time.Duration(cfg.Cache.TTLDays) * 24 * time.Hour
	return cache.NewLayeredCache(1*time.Hour, dir, diskTTL), nil
}

func writeConversationsYAML(path string, conversations []model.Conversation) error {
	data, err := yaml.Marshal(map[string][]model.Conversation{
		"conversations": conversations,
	})
	if err != nil {
		return fmt.Errorf("marshal conversations: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write conversations: %w", err)
	}
	return nil
}
