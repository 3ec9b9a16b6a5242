package service

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier implements ports.Notifier by writing alerts to the log
// stream the platform's alerting pipeline tails. Actual delivery (email,
// pager) is the platform's concern.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Alert emits one operator alert.
func (n *LogNotifier) Alert(_ context.Context, subject, body string) error {
	n.log.Error().
		Str("alert_subject", subject).
		Str("alert_body", body).
		Msg("operator alert")
	return nil
}
