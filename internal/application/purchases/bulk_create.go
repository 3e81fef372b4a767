package purchases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/domain"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

// BulkCreate crea un cheque y todas sus líneas en una sola unidad de trabajo.
// Todas las líneas se validan antes de abrir la transacción; si cualquier sentencia
// falla no queda ninguna fila. Sin fecha se usa la de hoy.
func (uc *ReceiptUseCase) BulkCreate(ctx context.Context, in dto.BulkReceiptRequest) (int64, error) {
	date := in.Date
	if strings.TrimSpace(date) == "" {
		date = entity.FormatDate(uc.now())
	}
	receipt, err := entity.NewReceipt(date, in.Store)
	if err != nil {
		return 0, err
	}

	fields := make([]entity.LineItemFields, 0, len(in.Items))
	for i, it := range in.Items {
		f, err := entity.NewLineItemFields(it.Description, it.Quantity, it.Price, it.CategoryID)
		if err != nil {
			var vErr *domain.ValidationError
			if errors.As(err, &vErr) {
				return 0, domain.NewValidationError(fmt.Sprintf("items[%d].%s", i, vErr.Field), vErr.Message)
			}
			return 0, err
		}
		fields = append(fields, f)
	}

	err = uc.tx.Run(ctx, func(ctx context.Context, receipts repository.ReceiptRepository, items repository.LineItemRepository, categories repository.CategoryRepository) error {
		if err := receipts.Create(ctx, receipt); err != nil {
			return err
		}
		checked := make(map[int64]bool, len(fields))
		for _, f := range fields {
			if !checked[f.CategoryID] {
				if err := requireCategory(ctx, categories, f.CategoryID); err != nil {
					return err
				}
				checked[f.CategoryID] = true
			}
			li := &entity.LineItem{ReceiptID: receipt.ID}
			li.Apply(f)
			if err := items.Create(ctx, li); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return receipt.ID, nil
}
