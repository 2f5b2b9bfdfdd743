package assist

import (
	"encoding/json"
	"errors"
	"strings"
)

// sanitizers are tried in order against the raw completion text: the first
// attempt is the text as-is, each later entry cleans up a known upstream
// quirk. Extend the list rather than branching in the pipelines.
var sanitizers = []func(string) string{
	strings.TrimSpace,
	stripCodeFence,
}

// decodeObject parses completion output into v, running the sanitizer chain
// until one attempt yields a JSON object. Top-level non-objects ("null",
// arrays, bare strings) are rejected: they would unmarshal as a no-op and
// leave v zero, fabricating a result from an unusable response.
func decodeObject(raw string, v any) error {
	s := raw
	for _, sanitize := range sanitizers {
		s = sanitize(s)
		if !strings.HasPrefix(strings.TrimSpace(s), "{") {
			continue
		}
		if err := json.Unmarshal([]byte(s), v); err == nil {
			return nil
		}
	}
	return errors.New("response is not a JSON object after sanitizing")
}

// stripCodeFence removes a ```json ... ``` (or bare ```) wrapper that models
// sometimes add despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
