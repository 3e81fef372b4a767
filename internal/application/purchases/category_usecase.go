package purchases

import (
	"context"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	tx TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(tx TxRunner) *CategoryUseCase {
	return &CategoryUseCase{tx: tx}
}

// Create crea una nueva categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (int64, error) {
	category, err := entity.NewCategory(in.Name)
	if err != nil {
		return 0, err
	}
	err = uc.tx.Run(ctx, func(ctx context.Context, _ repository.ReceiptRepository, _ repository.LineItemRepository, categories repository.CategoryRepository) error {
		return categories.Create(ctx, category)
	})
	if err != nil {
		return 0, err
	}
	return category.ID, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	err := uc.tx.View(ctx, func(ctx context.Context, _ repository.ReceiptRepository, _ repository.LineItemRepository, categories repository.CategoryRepository) error {
		c, err := categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		out = toCategoryResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List lista las categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) (*dto.CategoryListResponse, error) {
	var list []*entity.Category
	err := uc.tx.View(ctx, func(ctx context.Context, _ repository.ReceiptRepository, _ repository.LineItemRepository, categories repository.CategoryRepository) error {
		var err error
		list, err = categories.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Update renombra una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) error {
	category, err := entity.NewCategory(in.Name)
	if err != nil {
		return err
	}
	category.ID = id
	return uc.tx.Run(ctx, func(ctx context.Context, _ repository.ReceiptRepository, _ repository.LineItemRepository, categories repository.CategoryRepository) error {
		return categories.Update(ctx, category)
	})
}

// Delete elimina la categoría sin tocar las líneas que la referencian.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(ctx context.Context, _ repository.ReceiptRepository, _ repository.LineItemRepository, categories repository.CategoryRepository) error {
		return categories.Delete(ctx, id)
	})
}
