package builder

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Notifier receives user-facing messages for rejected input. Front ends
// typically show these as blocking alerts.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNotifier sets the sink for user-facing messages.
func WithNotifier(notifier Notifier) Option {
	return func(s *Session) {
		if notifier != nil {
			s.notifier = notifier
		}
	}
}

// WithFormSetOptions forwards options to the session's FormSet.
func WithFormSetOptions(options ...FormSetOption) Option {
	return func(s *Session) {
		s.setOptions = append(s.setOptions, options...)
	}
}

// WithInitialState seeds the session from a previously captured snapshot.
func WithInitialState(snapshot model.FormSet) Option {
	return func(s *Session) {
		seed := snapshot.Clone()
		s.seed = &seed
	}
}

type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) Notify(ctx context.Context, message string) {
	n.logger.WarnContext(ctx, "input rejected", slog.String("message", message))
}
