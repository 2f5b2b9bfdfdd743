package assist

import (
	"context"

	"github.com/loomworks/tasklight/internal/anthropic"
)

// Completer is the slice of the Anthropic client the pipelines depend on.
// Tests substitute a deterministic double.
type Completer interface {
	Complete(ctx context.Context, system string, messages []anthropic.Message, maxTokens int) (string, error)
}

// TaskDraft is the structured result of extracting a task from free text.
// It prefills the task form; the user confirms or edits before anything
// is persisted.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority"`
	Categories  []string `json:"category"`
	DueDate     string   `json:"due_date,omitempty"` // YYYY-MM-DD
	DueTime     string   `json:"due_time,omitempty"` // HH:MM, 24-hour
}

// TaskSummary is the minimal projection of a task sent to the analysis
// pipeline. Free-text descriptions deliberately never leave the service.
type TaskSummary struct {
	Title      string   `json:"title"`
	Priority   string   `json:"priority"`
	DueDate    string   `json:"due_date,omitempty"`
	DueTime    string   `json:"due_time,omitempty"`
	Completed  bool     `json:"completed"`
	Categories []string `json:"category,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
}

// Report is the narrative productivity report for one timeframe.
type Report struct {
	Summary         string   `json:"summary"`
	UrgentTasks     []string `json:"urgentTasks"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// Timeframe is the reporting window for analysis.
type Timeframe string

const (
	TimeframeToday Timeframe = "today"
	TimeframeWeek  Timeframe = "week"
)

func (t Timeframe) Valid() bool {
	return t == TimeframeToday || t == TimeframeWeek
}

// Label is the human-readable form used in prompts and canned responses.
func (t Timeframe) Label() string {
	if t == TimeframeWeek {
		return "this week"
	}
	return "today"
}
