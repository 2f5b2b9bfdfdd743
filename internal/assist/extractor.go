package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/loomworks/tasklight/internal/anthropic"
)

const (
	inputMinRunes = 2
	inputMaxRunes = 500
)

// Extractor converts free natural-language text into a TaskDraft.
type Extractor struct {
	llm    Completer
	logger *slog.Logger
}

func NewExtractor(llm Completer, logger *slog.Logger) *Extractor {
	return &Extractor{llm: llm, logger: logger}
}

// Extract validates and normalizes rawText, asks the completion service for
// a structured task, and applies the deterministic corrections. It is pure:
// nothing is persisted and nothing is cached.
func (e *Extractor) Extract(ctx context.Context, rawText string, now time.Time) (*TaskDraft, error) {
	input := normalizeInput(rawText)
	if input == "" {
		return nil, &ValidationError{Reason: "empty input"}
	}
	if n := utf8.RuneCountInString(input); n < inputMinRunes || n > inputMaxRunes {
		return nil, &ValidationError{Reason: fmt.Sprintf("input must be %d-%d characters, got %d", inputMinRunes, inputMaxRunes, n)}
	}

	system := fmt.Sprintf(extractSystemPrompt, now.Format("2006-01-02"), now.Format("15:04"))

	e.logger.Info("extracting task", "input_len", utf8.RuneCountInString(input))

	raw, err := e.llm.Complete(ctx, system, []anthropic.Message{{Role: "user", Content: input}}, 1024)
	if err != nil {
		return nil, upstreamFailure("completion failed", err)
	}

	var draft TaskDraft
	if err := decodeObject(raw, &draft); err != nil {
		e.logger.Error("unparseable extraction response", "error", err, "raw", raw)
		return nil, &UpstreamError{Reason: "unparseable response", Err: err}
	}

	finalizeDraft(&draft, input, now)

	e.logger.Info("extraction complete",
		"title", draft.Title,
		"priority", draft.Priority,
		"due_date", draft.DueDate,
	)
	return &draft, nil
}

// normalizeInput trims and collapses internal whitespace runs to single
// spaces.
func normalizeInput(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
