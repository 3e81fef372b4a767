package repository

import (
	"context"

	"github.com/jhoicas/apskaita-api/internal/domain/entity"
)

// LineItemRepository define el puerto de persistencia para LineItem (DIP).
// Update nunca modifica ReceiptID.
type LineItemRepository interface {
	Create(ctx context.Context, item *entity.LineItem) error
	GetByID(ctx context.Context, id int64) (*entity.LineItem, error)
	List(ctx context.Context, filter entity.LineItemFilter) ([]*entity.LineItem, error)
	Update(ctx context.Context, item *entity.LineItem) error
	Delete(ctx context.Context, id int64) error
	DeleteByReceipt(ctx context.Context, receiptID int64) (int64, error)
}
