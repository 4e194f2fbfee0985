package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/medgarble/internal/model"
)

// Provider defines the interface for dialogue generation backends.
// Providers only supply fresh sample conversations for the injector to
// garble; they play no part in error injection itself.
type Provider interface {
	// Name returns the provider name
	Name() string

	// GenerateDialogue generates a medical conversation on a topic
	GenerateDialogue(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest describes the dialogue to generate
type GenerateRequest struct {
	// Topic is the clinical scenario, e.g. "insulin dosage adjustment"
	Topic string

	// Turns is the requested number of speaker turns (default 8)
	Turns int

	// Speakers are the two speaker labels (default Doctor, Patient)
	Speakers []string

	// Model overrides the configured model name
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// GenerateResponse contains the generated conversation
type GenerateResponse struct {
	Conversation model.Conversation
	Model        string
	TokensUsed   int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "gpt-4o-mini",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
	}
}

// BuildPrompt constructs the dialogue generation prompt. The output format
// is one "Speaker: text" line per turn so ParseDialogue can recover the
// turn structure without any markup.
func BuildPrompt(req GenerateRequest) string {
	turns := req.Turns
	if turns <= 0 {
		turns = 8
	}
	speakers := req.Speakers
	if len(speakers) < 2 {
		speakers = []string{"Doctor", "Patient"}
	}

	return fmt.Sprintf(`Write a realistic medical conversation about: %s

Rules:
1. Exactly %d turns, alternating between %s and %s.
2. Each turn on its own line, formatted as "Speaker: text" with no other markup.
3. Use concrete clinical details: medication names, spelled-out dosages (e.g. "fifteen milligrams"), timing instructions (before/after meals, morning/evening, daily/weekly), and qualifiers (not, never, always).
4. Plain conversational English. No stage directions, no numbering, no headings.`,
		req.Topic, turns, speakers[0], speakers[1])
}

// ParseDialogue parses "Speaker: text" lines into a conversation.
// Lines without a speaker prefix are appended to the previous turn.
func ParseDialogue(text, title string) (model.Conversation, error) {
	conv := model.Conversation{Title: title}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		speaker, rest, found := strings.Cut(line, ":")
		speaker = strings.TrimSpace(speaker)
		if found && speaker != "" && !strings.ContainsAny(speaker, " \t") {
			conv.Turns = append(conv.Turns, model.Turn{
				Speaker: speaker,
				Text:    strings.TrimSpace(rest),
			})
			continue
		}

		// Continuation of the previous turn
		if n := len(conv.Turns); n > 0 {
			conv.Turns[n-1].Text = strings.TrimSpace(conv.Turns[n-1].Text + " " + line)
		}
	}

	if len(conv.Turns) == 0 {
		return model.Conversation{}, fmt.Errorf("no dialogue turns found in response")
	}
	return conv, nil
}
