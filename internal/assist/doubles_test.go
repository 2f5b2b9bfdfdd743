package assist

import (
	"context"
	"io"
	"log/slog"

	"github.com/loomworks/tasklight/internal/anthropic"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCompleter is a deterministic Completer double that records every call.
type fakeCompleter struct {
	calls      int
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(_ context.Context, system string, messages []anthropic.Message, _ int) (string, error) {
	f.calls++
	f.lastSystem = system
	if len(messages) > 0 {
		f.lastUser = messages[len(messages)-1].Content
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}
