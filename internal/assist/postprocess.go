package assist

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	titleMax      = 50
	titleTruncate = 47
	titleFromText = 30
	ellipsis      = "..."
)

// finalizeDraft applies the deterministic corrections that hold regardless
// of what the model returned. These are normalization, never errors.
func finalizeDraft(d *TaskDraft, input string, now time.Time) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		d.Title = truncateRunes(input, titleFromText)
	}
	d.Title, d.Description = ClampTitle(d.Title, d.Description)

	d.Priority = NormalizePriority(d.Priority)
	d.Categories = CleanLabels(d.Categories)

	if d.DueDate != "" {
		if _, err := time.Parse("2006-01-02", d.DueDate); err != nil {
			// Not a calendar date; drop it rather than persist garbage.
			d.DueDate = ""
		} else if today := now.Format("2006-01-02"); d.DueDate < today {
			// A past due date from extraction is treated as a resolution
			// error and corrected forward, never as an intentional backdate.
			// Date-only comparison; time of day is ignored.
			d.DueDate = today
		}
	}
	if d.DueTime != "" {
		if _, err := time.Parse("15:04", d.DueTime); err != nil {
			d.DueTime = ""
		}
	}
	if d.DueDate == "" {
		d.DueTime = ""
	}
}

// NormalizePriority maps any input to one of high, medium, low. Unrecognized
// values fall back to medium.
func NormalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high":
		return "high"
	case "low":
		return "low"
	default:
		return "medium"
	}
}

// ClampTitle enforces the 50-rune title limit. An overlong title is moved
// into the description (when the description is empty) before truncation so
// nothing the user or the model wrote is lost.
func ClampTitle(title, description string) (string, string) {
	if utf8.RuneCountInString(title) > titleMax {
		if strings.TrimSpace(description) == "" {
			description = title
		}
		title = truncateRunes(title, titleTruncate)
	}
	return title, description
}

// CleanLabels trims category labels and drops empties.
func CleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// truncateRunes cuts s to max runes, appending an ellipsis when it had more.
// Counts runes, not bytes: titles are frequently Korean.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + ellipsis
}

