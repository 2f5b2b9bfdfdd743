package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/loomworks/tasklight/internal/anthropic"
)

const maxUrgentTasks = 3

// Analyzer turns a set of task summaries into a narrative productivity
// report for one timeframe.
type Analyzer struct {
	llm    Completer
	logger *slog.Logger
}

func NewAnalyzer(llm Completer, logger *slog.Logger) *Analyzer {
	return &Analyzer{llm: llm, logger: logger}
}

// Analyze reports on tasks for the given timeframe. An empty task set
// short-circuits to a canned report without calling the completion service.
func (a *Analyzer) Analyze(ctx context.Context, tasks []TaskSummary, timeframe Timeframe, now time.Time) (*Report, error) {
	if !timeframe.Valid() {
		return nil, &ValidationError{Reason: fmt.Sprintf("timeframe must be %q or %q", TimeframeToday, TimeframeWeek)}
	}
	if len(tasks) == 0 {
		return emptyReport(timeframe), nil
	}

	payload, err := json.Marshal(tasks)
	if err != nil {
		return nil, &ValidationError{Reason: "tasks are not serializable"}
	}

	framing := framingToday
	if timeframe == TimeframeWeek {
		framing = framingWeek
	}
	system := fmt.Sprintf(analyzeSystemPrompt,
		timeframe.Label(),
		now.Format("2006-01-02"),
		now.Format("15:04"),
		framing,
	)

	a.logger.Info("analyzing tasks", "timeframe", timeframe, "count", len(tasks))

	raw, err := a.llm.Complete(ctx, system, []anthropic.Message{{Role: "user", Content: string(payload)}}, 2048)
	if err != nil {
		return nil, upstreamFailure("completion failed", err)
	}

	var report Report
	if err := decodeObject(raw, &report); err != nil {
		a.logger.Error("unparseable analysis response", "error", err, "raw", raw)
		return nil, &UpstreamError{Reason: "unparseable response", Err: err}
	}
	normalizeReport(&report)

	return &report, nil
}

// normalizeReport enforces the report shape after parsing instead of
// trusting the model's output.
func normalizeReport(r *Report) {
	if r.UrgentTasks == nil {
		r.UrgentTasks = []string{}
	}
	if len(r.UrgentTasks) > maxUrgentTasks {
		r.UrgentTasks = r.UrgentTasks[:maxUrgentTasks]
	}
	if r.Insights == nil {
		r.Insights = []string{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
}

func emptyReport(timeframe Timeframe) *Report {
	return &Report{
		Summary:     fmt.Sprintf("Nothing is scheduled for %s — a clean slate.", timeframe.Label()),
		UrgentTasks: []string{},
		Insights: []string{
			"An empty list is a good moment to decide what actually matters next.",
		},
		Recommendations: []string{
			"Add your first task for " + timeframe.Label() + " to start tracking progress.",
		},
	}
}
