package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/apskaita-api/internal/domain"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

var _ repository.LineItemRepository = (*LineItemRepo)(nil)

// LineItemRepo implementación de LineItemRepository (usable con pool, conexión o tx).
type LineItemRepo struct {
	q Querier
}

// NewLineItemRepository construye el adaptador. Pasar pool, conexión o tx (Querier).
func NewLineItemRepository(q Querier) *LineItemRepo {
	return &LineItemRepo{q: q}
}

const lineItemColumns = `
	li.id, li.receipt_id, li.description, li.quantity, li.price,
	li.category_id, COALESCE(c.name, '')`

// Create persiste la línea y asigna el ID generado.
func (r *LineItemRepo) Create(ctx context.Context, item *entity.LineItem) error {
	const query = `
		INSERT INTO line_items (receipt_id, description, quantity, price, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		item.ReceiptID, item.Description, item.Quantity, item.Price, item.CategoryID,
	).Scan(&item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert line item: receipt %d: %w", item.ReceiptID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert line item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID, con el nombre de su categoría.
func (r *LineItemRepo) GetByID(ctx context.Context, id int64) (*entity.LineItem, error) {
	query := `SELECT` + lineItemColumns + `
		FROM line_items li LEFT JOIN categories c ON c.id = li.category_id
		WHERE li.id = $1`
	item, err := scanLineItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("get line item", id)
		}
		return nil, fmt.Errorf("get line item: %w", err)
	}
	return item, nil
}

// List lista líneas ordenadas por descripción e id. Las categorías inexistentes dejan CategoryName vacío.
func (r *LineItemRepo) List(ctx context.Context, filter entity.LineItemFilter) ([]*entity.LineItem, error) {
	query := `SELECT` + lineItemColumns + `
		FROM line_items li LEFT JOIN categories c ON c.id = li.category_id`
	var conds []string
	var args []any
	if filter.ReceiptID > 0 {
		args = append(args, filter.ReceiptID)
		conds = append(conds, fmt.Sprintf("li.receipt_id = $%d", len(args)))
	}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("li.category_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY li.description, li.id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	list := []*entity.LineItem{}
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update reemplaza descripción, cantidad, precio y categoría. receipt_id nunca cambia.
func (r *LineItemRepo) Update(ctx context.Context, item *entity.LineItem) error {
	const query = `
		UPDATE line_items
		SET description = $2, quantity = $3, price = $4, category_id = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, item.ID, item.Description, item.Quantity, item.Price, item.CategoryID)
	if err != nil {
		return fmt.Errorf("update line item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("update line item", item.ID)
	}
	return nil
}

// Delete elimina una línea por ID.
func (r *LineItemRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM line_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete line item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("delete line item", id)
	}
	return nil
}

// DeleteByReceipt elimina todas las líneas de un cheque y devuelve cuántas borró.
func (r *LineItemRepo) DeleteByReceipt(ctx context.Context, receiptID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM line_items WHERE receipt_id = $1`, receiptID)
	if err != nil {
		return 0, fmt.Errorf("delete line items of receipt: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func scanLineItem(row pgx.Row) (*entity.LineItem, error) {
	var item entity.LineItem
	var categoryID *int64
	if err := row.Scan(
		&item.ID, &item.ReceiptID, &item.Description, &item.Quantity, &item.Price,
		&categoryID, &item.CategoryName,
	); err != nil {
		return nil, err
	}
	if categoryID != nil {
		item.CategoryID = *categoryID
	}
	return &item, nil
}
