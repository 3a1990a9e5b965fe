package twin

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/generation"
)

const finalAnswerMarker = "final answer"

// Answerer synthesizes a first-person answer from retrieved memories.
type Answerer struct {
	generator   generation.Generator
	persona     string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewAnswerer creates an answerer. logger may be nil.
func NewAnswerer(gen generation.Generator, persona string, maxTokens int, temperature float64, logger *zap.Logger) *Answerer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Answerer{
		generator:   gen,
		persona:     persona,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Answer builds the synthesis prompt from the persona, the memory context and
// the original question, runs generation, and extracts the final answer.
// Generation failures are returned to the caller.
func (a *Answerer) Answer(ctx context.Context, question, memories string) (string, error) {
	prompt := a.buildPrompt(question, memories)
	out, err := a.generator.Generate(ctx, prompt, generation.Options{
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
		Stop:        []string{"Question:"},
	})
	if err != nil {
		return "", fmt.Errorf("twin: answer generation: %w", err)
	}
	return extractFinalAnswer(out), nil
}

func (a *Answerer) buildPrompt(question, memories string) string {
	var sb strings.Builder
	sb.WriteString(a.persona)
	sb.WriteString("\n\nThese are your memories, most relevant first:\n\n")
	sb.WriteString(memories)
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nFirst think through which memories matter, then give your response ")
	sb.WriteString("on a new line starting with \"Final Answer:\". Speak in the first person.\n")
	return sb.String()
}

// extractFinalAnswer returns the text after the last case-insensitive
// "final answer" marker, or the whole trimmed output when no marker is
// present.
func extractFinalAnswer(out string) string {
	lower := strings.ToLower(out)
	idx := strings.LastIndex(lower, finalAnswerMarker)
	if idx < 0 {
		return strings.TrimSpace(out)
	}
	answer := out[idx+len(finalAnswerMarker):]
	answer = strings.TrimLeft(answer, ":* \t")
	return strings.TrimSpace(answer)
}
