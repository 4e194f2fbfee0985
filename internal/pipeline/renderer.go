package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/medgarble/internal/model"
)

// Renderer writes reports as JSON, Markdown, and terminal summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report with the original and
// garbled dialogue side by side and a table of injected errors.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	title := report.Title
	if title == "" {
		title = "Garbled Text"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Error probability: %.2f\n", report.ErrorProbability)
	if report.Seed != nil {
		fmt.Fprintf(&b, "- Seed: %d\n", *report.Seed)
	} else {
		fmt.Fprintf(&b, "- Seed: none (run is not reproducible)\n")
	}
	b.WriteString("\n")

	b.WriteString("## Original\n\n")
	writeTurns(&b, report.Original.Turns)

	b.WriteString("## With Translation Errors\n\n")
	writeTurns(&b, report.Garbled.Turns)

	fmt.Fprintf(&b, "## Errors (%d total, %d critical)\n\n", report.Summary.Total, report.Summary.Critical)
	if len(report.Errors) == 0 {
		b.WriteString("No errors were introduced in this run.\n\n")
	} else {
		b.WriteString("| # | Turn | Position | Original | Modified | Type | Severity |\n")
		b.WriteString("|---|------|----------|----------|----------|------|----------|\n")
		for i, rec := range report.Errors {
			turn := "-"
			if rec.TurnIndex != nil {
				turn = fmt.Sprintf("%d", *rec.TurnIndex)
			}
			modified := rec.Modified
			if modified == "" {
				modified = "(omitted)"
			}
			fmt.Fprintf(&b, "| %d | %s | %d | %s | %s | %s | %s |\n",
				i+1, turn, rec.Position, rec.Original, modified, rec.Type, rec.Type.Severity())
		}
		b.WriteString("\n")
		if report.Summary.Critical > 0 {
			fmt.Fprintf(&b, "⚠️ %d error(s) alter dosage or negation and could affect patient safety.\n\n", report.Summary.Critical)
		}
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by medgarble — synthetic translation errors for interpretation-quality testing. ")
		b.WriteString("The garbled dialogue is intentionally wrong; never use it for clinical purposes.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short run summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	title := report.Title
	if title == "" {
		title = "Garbled Text"
	}
	fmt.Printf("  %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()

	for _, turn := range report.Garbled.Turns {
		if turn.Speaker != "" {
			fmt.Printf("%-12s: %s\n", turn.Speaker, turn.Text)
		} else {
			fmt.Println(turn.Text)
		}
	}
	fmt.Println()

	if report.Summary.Total == 0 {
		fmt.Println("No errors were introduced in this run.")
		fmt.Println()
		return
	}

	fmt.Printf("Errors introduced: %d (%d critical)\n", report.Summary.Total, report.Summary.Critical)
	for _, errType := range []model.ErrorType{
		model.ErrorMedicalSubstitution,
		model.ErrorNumberSubstitution,
		model.ErrorQualifierOmission,
		model.ErrorTemporalConfusion,
	} {
		if count := report.Summary.ByType[errType]; count > 0 {
			fmt.Printf("  - %s: %d\n", errType, count)
		}
	}
	fmt.Println()
	for i, rec := range report.Errors {
		modified := rec.Modified
		if modified == "" {
			modified = "(omitted)"
		}
		location := fmt.Sprintf("position %d", rec.Position)
		if rec.TurnIndex != nil {
			location = fmt.Sprintf("turn %d, position %d", *rec.TurnIndex, rec.Position)
		}
		fmt.Printf("%d. [%-8s] '%s' → '%s' (%s, %s)\n",
			i+1, rec.Type.Severity(), rec.Original, modified, rec.Type, location)
	}
	fmt.Println()
}

func writeTurns(b *strings.Builder, turns []model.Turn) {
	for _, turn := range turns {
		if turn.Speaker != "" {
			fmt.Fprintf(b, "**%s:** %s\n\n", turn.Speaker, turn.Text)
		} else {
			fmt.Fprintf(b, "%s\n\n", turn.Text)
		}
	}
}
