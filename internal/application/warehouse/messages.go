package warehouse

import (
	"errors"
	"fmt"

	"github.com/jhoicas/warehouse/internal/domain"
)

// Mensajes mostrados al usuario tras una operación.
const (
	MsgBalanceAdjusted   = "Balance updated successfully."
	MsgSaleRecorded      = "Sale recorded successfully."
	MsgPurchaseRecorded  = "Purchase recorded successfully."
	MsgInsufficientFunds = "Insufficient balance for this purchase."
	MsgUnexpectedFailure = "The operation could not be completed."
)

// Message traduce el error de un caso de uso al texto que ve el usuario.
// product es el nombre tal como se envió en el formulario.
func Message(err error, product string) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrProductNotFound):
		return fmt.Sprintf("%s is not available in the inventory.", product)
	case errors.Is(err, domain.ErrInsufficientStock):
		return fmt.Sprintf("Insufficient quantity of %s in the inventory.", product)
	case errors.Is(err, domain.ErrInsufficientFunds):
		return MsgInsufficientFunds
	case errors.Is(err, domain.ErrInvalidInput):
		return "Invalid input."
	default:
		return MsgUnexpectedFailure
	}
}

// IsRejection indica si err es un rechazo de negocio (no un fallo de infraestructura).
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrProductNotFound) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrInsufficientFunds)
}
