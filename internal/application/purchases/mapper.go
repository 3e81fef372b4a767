package purchases

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/domain"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

// requireCategory verifica dentro de la unidad de trabajo que la categoría exista.
// Una categoría inexistente es un error de validación del campo, no un 404 del recurso.
func requireCategory(ctx context.Context, categories repository.CategoryRepository, id int64) error {
	if _, err := categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("category_id", "la categoría no existe")
		}
		return err
	}
	return nil
}

func toReceiptResponse(r *entity.Receipt) dto.ReceiptResponse {
	return dto.ReceiptResponse{
		ID:    r.ID,
		Date:  entity.FormatDate(r.Date),
		Store: r.Store,
	}
}

func toLineItemResponse(li *entity.LineItem) dto.LineItemResponse {
	return dto.LineItemResponse{
		ID:           li.ID,
		ReceiptID:    li.ReceiptID,
		Description:  li.Description,
		Quantity:     li.Quantity.String(),
		Price:        li.Price.String(),
		CategoryID:   li.CategoryID,
		CategoryName: li.CategoryName,
		Total:        money(li.Total()),
	}
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name}
}

// money formatea montos con dos decimales sin pasar por float.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
