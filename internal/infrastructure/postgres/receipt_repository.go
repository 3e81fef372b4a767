package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository (usable con pool, conexión o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool, conexión o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste el cheque y asigna el ID generado.
func (r *ReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	const query = `INSERT INTO receipts (date, store) VALUES ($1, $2) RETURNING id`
	if err := r.q.QueryRow(ctx, query, receipt.Date, receipt.Store).Scan(&receipt.ID); err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// GetByID obtiene un cheque por ID.
func (r *ReceiptRepo) GetByID(ctx context.Context, id int64) (*entity.Receipt, error) {
	const query = `SELECT id, date, store FROM receipts WHERE id = $1`
	var rc entity.Receipt
	err := r.q.QueryRow(ctx, query, id).Scan(&rc.ID, &rc.Date, &rc.Store)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("get receipt", id)
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &rc, nil
}

// List lista cheques ordenados por fecha, tienda e id.
func (r *ReceiptRepo) List(ctx context.Context, filter entity.ReceiptFilter) ([]*entity.Receipt, error) {
	query := `SELECT id, date, store FROM receipts`
	var conds []string
	var args []any
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date, store, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	list := []*entity.Receipt{}
	for rows.Next() {
		var rc entity.Receipt
		if err := rows.Scan(&rc.ID, &rc.Date, &rc.Store); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &rc)
	}
	return list, rows.Err()
}

// Update reemplaza fecha y tienda.
func (r *ReceiptRepo) Update(ctx context.Context, receipt *entity.Receipt) error {
	const query = `UPDATE receipts SET date = $2, store = $3 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, receipt.ID, receipt.Date, receipt.Store)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("update receipt", receipt.ID)
	}
	return nil
}

// Delete elimina solo la cabecera; las líneas se borran antes con LineItemRepo.DeleteByReceipt.
func (r *ReceiptRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("delete receipt", id)
	}
	return nil
}
