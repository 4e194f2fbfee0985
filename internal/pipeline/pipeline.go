package pipeline

import (
	"fmt"
	"time"

	"github.com/ppiankov/medgarble/internal/inject"
	"github.com/ppiankov/medgarble/internal/model"
)

// Pipeline wires the error injector to report rendering
type Pipeline struct {
	injector *inject.Injector
	renderer *Renderer
	config   *model.Config
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	return &Pipeline{
		injector: inject.NewInjector(cfg.Inject.ErrorProbability),
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
	}
}

// Injector exposes the underlying injector so callers can extend its rule
// tables before a run.
func (p *Pipeline) Injector() *inject.Injector {
	return p.injector
}

// GarbleText runs the injector over a single text. A nil seed means the
// generator continues from its current state (non-reproducible).
func (p *Pipeline) GarbleText(text string, seed *int64) *model.Report {
	var garbled string
	var records []model.ErrorRecord
	if seed != nil {
		garbled, records = p.injector.InjectSeeded(text, *seed)
	} else {
		garbled, records = p.injector.Inject(text)
	}

	original := model.Conversation{Turns: []model.Turn{{Text: text}}}
	modified := model.Conversation{Turns: []model.Turn{{Text: garbled}}}

	return p.buildReport("", original, modified, records, seed)
}

// GarbleConversation runs the injector over a whole conversation under at
// most one top-level seed.
func (p *Pipeline) GarbleConversation(conv model.Conversation, seed *int64) *model.Report {
	var turns []model.Turn
	var records []model.ErrorRecord
	if seed != nil {
		turns, records = p.injector.InjectConversationSeeded(conv.Turns, *seed)
	} else {
		turns, records = p.injector.InjectConversation(conv.Turns)
	}

	modified := model.Conversation{Title: conv.Title, Turns: turns}
	return p.buildReport(conv.Title, conv, modified, records, seed)
}

func (p *Pipeline) buildReport(title string, original, garbled model.Conversation, records []model.ErrorRecord, seed *int64) *model.Report {
	return &model.Report{
		Title:            title,
		GeneratedAt:      time.Now().UTC(),
		ErrorProbability: p.injector.ErrorProbability(),
		Seed:             seed,
		Original:         original,
		Garbled:          garbled,
		Errors:           records,
		Summary:          model.Summarize(records),
	}
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}
