package purchases

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

// ReceiptUseCase casos de uso de cheques. Toda escritura pasa por la unidad de trabajo.
type ReceiptUseCase struct {
	tx  TxRunner
	now func() time.Time
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(tx TxRunner) *ReceiptUseCase {
	return &ReceiptUseCase{tx: tx, now: time.Now}
}

// Create valida y persiste un cheque sin líneas. Devuelve el ID generado.
func (uc *ReceiptUseCase) Create(ctx context.Context, in dto.ReceiptRequest) (int64, error) {
	receipt, err := entity.NewReceipt(in.Date, in.Store)
	if err != nil {
		return 0, err
	}
	err = uc.tx.Run(ctx, func(ctx context.Context, receipts repository.ReceiptRepository, _ repository.LineItemRepository, _ repository.CategoryRepository) error {
		return receipts.Create(ctx, receipt)
	})
	if err != nil {
		return 0, err
	}
	return receipt.ID, nil
}

// GetByID devuelve el cheque con sus líneas y el total exacto.
func (uc *ReceiptUseCase) GetByID(ctx context.Context, id int64) (*dto.ReceiptDetailResponse, error) {
	receipt, lines, total, err := loadReceipt(ctx, uc.tx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LineItemResponse, 0, len(lines))
	for _, li := range lines {
		resp = append(resp, toLineItemResponse(li))
	}
	return &dto.ReceiptDetailResponse{
		ReceiptResponse: toReceiptResponse(receipt),
		Items:           resp,
		Total:           money(total),
	}, nil
}

// loadReceipt lee el cheque y sus líneas en una sola conexión y suma el total.
func loadReceipt(ctx context.Context, tx TxRunner, id int64) (*entity.Receipt, []*entity.LineItem, decimal.Decimal, error) {
	var (
		receipt *entity.Receipt
		lines   []*entity.LineItem
	)
	err := tx.View(ctx, func(ctx context.Context, receipts repository.ReceiptRepository, items repository.LineItemRepository, _ repository.CategoryRepository) error {
		var err error
		receipt, err = receipts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		lines, err = items.List(ctx, entity.LineItemFilter{ReceiptID: id})
		return err
	})
	if err != nil {
		return nil, nil, decimal.Zero, err
	}
	total := decimal.Zero
	for _, li := range lines {
		total = total.Add(li.Total())
	}
	return receipt, lines, total, nil
}

// List lista cheques por fecha y tienda, opcionalmente dentro de [from, to].
func (uc *ReceiptUseCase) List(ctx context.Context, in dto.ReceiptFilterRequest) (*dto.ReceiptListResponse, error) {
	var filter entity.ReceiptFilter
	if strings.TrimSpace(in.From) != "" {
		from, err := entity.ParseDate("from", in.From)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if strings.TrimSpace(in.To) != "" {
		to, err := entity.ParseDate("to", in.To)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	var list []*entity.Receipt
	err := uc.tx.View(ctx, func(ctx context.Context, receipts repository.ReceiptRepository, _ repository.LineItemRepository, _ repository.CategoryRepository) error {
		var err error
		list, err = receipts.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toReceiptResponse(r))
	}
	return &dto.ReceiptListResponse{Items: items}, nil
}

// Update reemplaza fecha y tienda. Devuelve domain.ErrNotFound si el cheque no existe.
func (uc *ReceiptUseCase) Update(ctx context.Context, id int64, in dto.ReceiptRequest) error {
	receipt, err := entity.NewReceipt(in.Date, in.Store)
	if err != nil {
		return err
	}
	receipt.ID = id
	return uc.tx.Run(ctx, func(ctx context.Context, receipts repository.ReceiptRepository, _ repository.LineItemRepository, _ repository.CategoryRepository) error {
		return receipts.Update(ctx, receipt)
	})
}

// Delete elimina el cheque y todas sus líneas en la misma unidad de trabajo.
func (uc *ReceiptUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(ctx context.Context, receipts repository.ReceiptRepository, items repository.LineItemRepository, _ repository.CategoryRepository) error {
		if _, err := items.DeleteByReceipt(ctx, id); err != nil {
			return err
		}
		return receipts.Delete(ctx, id)
	})
}
