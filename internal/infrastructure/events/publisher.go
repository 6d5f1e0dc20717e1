// Package events publica las operaciones confirmadas para consumidores externos.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/jhoicas/warehouse/internal/application/warehouse"
	"github.com/jhoicas/warehouse/internal/domain/entity"
)

var (
	_ warehouse.EventPublisher = NoopPublisher{}
	_ warehouse.EventPublisher = (*NATSPublisher)(nil)
)

// NoopPublisher descarta los eventos (NATS deshabilitado).
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *entity.Operation) error { return nil }

// OperationEvent payload JSON publicado por cada operación.
type OperationEvent struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// Conn lo que el publicador usa de *nats.Conn.
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher publica en <prefix>.operations.<tipo en minúsculas>.
type NATSPublisher struct {
	conn   Conn
	prefix string
}

// NewNATSPublisher construye el publicador sobre una conexión existente.
func NewNATSPublisher(conn Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: strings.TrimSuffix(prefix, ".")}
}

// Connect abre la conexión a NATS con reconexión automática.
func Connect(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("conectar NATS: %w", err)
	}
	return nc, nil
}

// Subject devuelve el subject para un tipo de operación.
func (p *NATSPublisher) Subject(opType string) string {
	return p.prefix + ".operations." + strings.ToLower(opType)
}

func (p *NATSPublisher) Publish(_ context.Context, op *entity.Operation) error {
	data, err := json.Marshal(OperationEvent{ID: op.ID, Type: op.Type, Details: op.Details, CreatedAt: op.CreatedAt})
	if err != nil {
		return fmt.Errorf("serializar operación: %w", err)
	}
	if err := p.conn.Publish(p.Subject(op.Type), data); err != nil {
		return fmt.Errorf("publicar operación %d: %w", op.ID, err)
	}
	return nil
}
