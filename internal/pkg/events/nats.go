package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/event"
)

// NATSBus publishes domain events to NATS for the audit-log consumer.
//
// Subject convention: kintai.audit.<event_type>
//
// Publishing is non-fatal: a broker failure is logged and never propagated,
// so audit delivery problems never interrupt attendance operations.
type NATSBus struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewNATSBus connects to the broker at url.
func NewNATSBus(url string, logger *slog.Logger) (*NATSBus, error) {
	conn, err := nats.Connect(url, nats.Name("kintai-backend"))
	if err != nil {
		return nil, err
	}
	return &NATSBus{conn: conn, logger: logger}, nil
}

// Publish implements event.Bus.
func (b *NATSBus) Publish(ctx context.Context, ev event.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		b.logger.Warn("audit event marshal failed", "type", string(ev.Type), "error", err)
		return
	}

	subject := "kintai.audit." + string(ev.Type)
	if err := b.conn.Publish(subject, data); err != nil {
		b.logger.Warn("audit event publish failed", "subject", subject, "error", err)
		return
	}

	b.logger.Debug("audit event published", "subject", subject, "employee_id", ev.EmployeeID)
}

// Close drains the connection.
func (b *NATSBus) Close() {
	if b.conn != nil {
		_ = b.conn.Drain()
	}
}
