package purchases

import (
	"context"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

// LineItemUseCase casos de uso de líneas de cheque.
type LineItemUseCase struct {
	tx TxRunner
}

// NewLineItemUseCase construye el caso de uso.
func NewLineItemUseCase(tx TxRunner) *LineItemUseCase {
	return &LineItemUseCase{tx: tx}
}

// Create agrega una línea al cheque receiptID. El cheque y la categoría se verifican
// dentro de la misma unidad de trabajo que el insert.
func (uc *LineItemUseCase) Create(ctx context.Context, receiptID int64, in dto.LineItemRequest) (int64, error) {
	item, err := entity.NewLineItem(receiptID, in.Description, in.Quantity, in.Price, in.CategoryID)
	if err != nil {
		return 0, err
	}
	err = uc.tx.Run(ctx, func(ctx context.Context, receipts repository.ReceiptRepository, items repository.LineItemRepository, categories repository.CategoryRepository) error {
		if _, err := receipts.GetByID(ctx, receiptID); err != nil {
			return err
		}
		if err := requireCategory(ctx, categories, item.CategoryID); err != nil {
			return err
		}
		return items.Create(ctx, item)
	})
	if err != nil {
		return 0, err
	}
	return item.ID, nil
}

// GetByID obtiene una línea por ID.
func (uc *LineItemUseCase) GetByID(ctx context.Context, id int64) (*dto.LineItemResponse, error) {
	var out dto.LineItemResponse
	err := uc.tx.View(ctx, func(ctx context.Context, _ repository.ReceiptRepository, items repository.LineItemRepository, _ repository.CategoryRepository) error {
		item, err := items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		out = toLineItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByReceipt lista las líneas de un cheque existente, por descripción.
func (uc *LineItemUseCase) ListByReceipt(ctx context.Context, receiptID int64) (*dto.LineItemListResponse, error) {
	var list []*entity.LineItem
	err := uc.tx.View(ctx, func(ctx context.Context, receipts repository.ReceiptRepository, items repository.LineItemRepository, _ repository.CategoryRepository) error {
		if _, err := receipts.GetByID(ctx, receiptID); err != nil {
			return err
		}
		var err error
		list, err = items.List(ctx, entity.LineItemFilter{ReceiptID: receiptID})
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.LineItemResponse, 0, len(list))
	for _, li := range list {
		out = append(out, toLineItemResponse(li))
	}
	return &dto.LineItemListResponse{Items: out}, nil
}

// Update reemplaza descripción, cantidad, precio y categoría. El cheque dueño no cambia.
func (uc *LineItemUseCase) Update(ctx context.Context, id int64, in dto.LineItemRequest) error {
	fields, err := entity.NewLineItemFields(in.Description, in.Quantity, in.Price, in.CategoryID)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(ctx context.Context, _ repository.ReceiptRepository, items repository.LineItemRepository, categories repository.CategoryRepository) error {
		item, err := items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := requireCategory(ctx, categories, fields.CategoryID); err != nil {
			return err
		}
		item.Apply(fields)
		return items.Update(ctx, item)
	})
}

// Delete elimina la línea y devuelve el ID de su cheque para volver a su detalle.
func (uc *LineItemUseCase) Delete(ctx context.Context, id int64) (int64, error) {
	var receiptID int64
	err := uc.tx.Run(ctx, func(ctx context.Context, _ repository.ReceiptRepository, items repository.LineItemRepository, _ repository.CategoryRepository) error {
		item, err := items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		receiptID = item.ReceiptID
		return items.Delete(ctx, id)
	})
	if err != nil {
		return 0, err
	}
	return receiptID, nil
}
