// Package audit holds event handlers that record committed money movements
// in the structured log.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vagnerwentz/bankapi/pkg/domain/events"
	"github.com/vagnerwentz/bankapi/pkg/eventbus"
)

// HandleTransactionRecorded logs every committed transaction.
func HandleTransactionRecorded(logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "HandleTransactionRecorded", "event_type", e.Type())

		var tr *events.TransactionRecorded
		switch ev := e.(type) {
		case *events.TransactionRecorded:
			tr = ev
		case events.TransactionRecorded:
			tr = &ev
		default:
			log.Error("unexpected event type", "event", e)
			return fmt.Errorf("audit: unexpected event %T", e)
		}

		attrs := []any{
			"transaction_id", tr.TransactionID,
			"kind", tr.Kind,
			"amount", tr.Amount,
			"occurred_at", tr.OccurredAt,
		}
		if tr.SourceNumber != nil {
			attrs = append(attrs, "source", *tr.SourceNumber)
		}
		if tr.ReceiverNumber != nil {
			attrs = append(attrs, "receiver", *tr.ReceiverNumber)
		}
		log.InfoContext(ctx, "transaction recorded", attrs...)
		return nil
	}
}
