// Package answer renders the evidence-only prompt and post-processes the
// model output into a single presentation-safe line.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/movelab/physiorag/internal/core/model"
	"github.com/movelab/physiorag/internal/llm"
	"github.com/movelab/physiorag/internal/logger"
)

type Generator struct {
	LLM llm.LLMClient
	log *logger.Logger
}

func NewGenerator(llmClient llm.LLMClient, log *logger.Logger) *Generator {
	return &Generator{
		LLM: llmClient,
		log: log.With("component", "generator"),
	}
}

// Generate answers the query from the evidence. It never fails: an
// unreachable model or an empty response degrades to a placeholder string
// describing the failure, matching the normalizer's policy of preferring
// partial output over aborting the query.
func (g *Generator) Generate(ctx context.Context, query string, items []model.EvidenceItem) string {
	prompt := buildPrompt(query, items)

	response, err := g.LLM.Generate(ctx, prompt)
	if err != nil {
		g.log.Warn("generation failed, returning degraded answer", "error", err)
		return flatten(fmt.Sprintf("The answer could not be generated (%v). Please retry.", err))
	}

	out := flatten(response)
	if out == "" {
		g.log.Warn("generation returned no usable text")
		return fmt.Sprintf("The model returned no usable text for: %q. Please retry.", query)
	}
	return out
}

func buildPrompt(query string, items []model.EvidenceItem) string {
	var b strings.Builder

	b.WriteString("You are a physical rehabilitation assistant. Answer the user's question using ONLY the evidence.\n")
	b.WriteString("If the evidence is insufficient, say what is missing and ask a single follow-up question.\n\n")

	b.WriteString("User question:\n")
	b.WriteString(query)
	b.WriteString("\n\nEvidence:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "[Evidence %d] %s\n\n", i+1, item.Text)
	}

	b.WriteString("Write a clear, safe, non-medical, educational answer.\n")
	b.WriteString("Include:\n")
	b.WriteString("- exercise name(s)\n")
	b.WriteString("- muscles/joints involved (if present in evidence)\n")
	b.WriteString("- 1-2 safety notes (generic, non-clinical)\n")

	return b.String()
}

// flatten collapses all line breaks into single spaces and trims the
// result. The UI consumes single-line answers.
func flatten(s string) string {
	lines := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
