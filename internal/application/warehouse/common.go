package warehouse

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// notifier agrupa lo que comparten los casos de uso que escriben:
// reloj, logger y publicación de eventos posterior al commit.
type notifier struct {
	events EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

func newNotifier(events EventPublisher, log *logger.Logger) notifier {
	if log == nil {
		log = logger.Nop()
	}
	return notifier{events: events, log: log, now: time.Now}
}

// committed registra la operación confirmada y la publica. Un fallo al publicar
// solo se registra: la operación ya está persistida.
func (n notifier) committed(ctx context.Context, op *entity.Operation) {
	n.log.Info().
		Int64("operation_id", op.ID).
		Str("type", op.Type).
		Str("details", op.Details).
		Msg("operación registrada")
	if n.events == nil {
		return
	}
	if err := n.events.Publish(ctx, op); err != nil {
		n.log.Error().Err(err).Int64("operation_id", op.ID).Msg("publicar evento de operación")
	}
}

// rejected registra un intento fallido; los rechazos de negocio van a warn.
func (n notifier) rejected(kind string, err error) {
	ev := n.log.Error()
	if IsRejection(err) {
		ev = n.log.Warn()
	}
	ev.Err(err).Str("type", kind).Msg("operación rechazada")
}
