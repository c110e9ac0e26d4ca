// Package notify holds the reminder dispatchers. The actual delivery
// channel (SMS, email) lives outside this service; we either hand the
// message to an AMQP exchange for a downstream worker or, without a
// broker configured, just log it.
package notify

import (
	"context"
	"log/slog"

	"github.com/recouvro/recouvro/internal/ledger/domain"
)

// LogDispatcher records reminders in the log instead of delivering
// them. Used in dev and as the fallback when no broker is configured.
type LogDispatcher struct {
	Logger *slog.Logger
}

func (d *LogDispatcher) Send(ctx context.Context, client domain.Client, message string) error {
	d.Logger.InfoContext(ctx, "relance (no dispatcher configured)",
		"client_id", client.ID,
		"telephone", client.Telephone,
		"message", message,
	)
	return nil
}
