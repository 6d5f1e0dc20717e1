package warehouse

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse/internal/domain"
	"github.com/jhoicas/warehouse/internal/domain/entity"
	"github.com/jhoicas/warehouse/internal/domain/repository"
)

// HistoryUseCase consulta el historial de operaciones (solo lectura).
type HistoryUseCase struct {
	operationRepo repository.OperationRepository
	balanceRepo   repository.BalanceRepository
	pdf           HistoryPDFGenerator
}

// NewHistoryUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewHistoryUseCase(operationRepo repository.OperationRepository, balanceRepo repository.BalanceRepository, pdf HistoryPDFGenerator) *HistoryUseCase {
	return &HistoryUseCase{operationRepo: operationRepo, balanceRepo: balanceRepo, pdf: pdf}
}

// ListOperations devuelve todas las operaciones en orden de inserción.
func (uc *HistoryUseCase) ListOperations(ctx context.Context) ([]*entity.Operation, error) {
	ops, err := uc.operationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if ops == nil {
		ops = []*entity.Operation{}
	}
	return ops, nil
}

// ExportPDF genera el historial completo en PDF junto con el saldo actual.
func (uc *HistoryUseCase) ExportPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("exportar historial: %w", domain.ErrNotFound)
	}
	ops, err := uc.ListOperations(ctx)
	if err != nil {
		return nil, err
	}
	balance, err := uc.balanceRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrBalanceNotInitialized
	}
	return uc.pdf.GenerateHistoryPDF(ctx, ops, balance)
}
