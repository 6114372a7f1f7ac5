// Package export hands a rendered bulk report to the system clipboard,
// falling back to printing it for manual copying.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"github.com/optimode/mailscreen/internal/logging"
)

// ErrUnavailable is returned by the system sink when no clipboard
// utility exists on this machine (for example a headless Linux host).
var ErrUnavailable = errors.New("export: clipboard unavailable")

// Sink receives exported text.
type Sink interface {
	WriteAll(text string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string) error

func (f SinkFunc) WriteAll(text string) error { return f(text) }

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// System is the operating system clipboard.
var System Sink = systemClipboard{}

// Copy writes text to sink. When the sink fails, the text is written to
// fallback instead so the user can copy it by hand; copied is false in
// that case. Empty text is a no-op.
func Copy(ctx context.Context, sink Sink, text string, fallback io.Writer) (copied bool, err error) {
	if text == "" {
		return false, nil
	}

	sinkErr := sink.WriteAll(text)
	if sinkErr == nil {
		return true, nil
	}

	log := logging.FromContext(ctx)
	log.Warn().Err(sinkErr).Msg("clipboard copy failed, falling back to manual copy")

	if _, err := fmt.Fprintf(fallback, "Clipboard copy failed. Please copy manually:\n\n%s\n", text); err != nil {
		return false, fmt.Errorf("export: write fallback: %w", err)
	}
	return false, nil
}
