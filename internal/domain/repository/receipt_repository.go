package repository

import (
	"context"

	"github.com/jhoicas/apskaita-api/internal/domain/entity"
)

// ReceiptRepository define el puerto de persistencia para Receipt (DIP).
// GetByID, Update y Delete devuelven domain.ErrNotFound si el cheque no existe.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id int64) (*entity.Receipt, error)
	List(ctx context.Context, filter entity.ReceiptFilter) ([]*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	Delete(ctx context.Context, id int64) error
}
