package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de gasto.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// TotalSpend suma cantidad × precio de las líneas cuyo cheque tiene fecha en [from, to].
// COALESCE devuelve cero si no hay filas en el período.
func (r *ReportRepo) TotalSpend(ctx context.Context, period entity.DateRange) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(li.quantity * li.price), 0) AS total
	FROM line_items li
	JOIN receipts   rc ON rc.id = li.receipt_id
	WHERE rc.date >= $1
	  AND rc.date <= $2`

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, period.From, period.To).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("report.TotalSpend: %w", err)
	}
	return total, nil
}

// SpendByCategory agrupa el gasto del período por categoría. El LEFT JOIN desde
// categories garantiza una fila por categoría, con total 0 y count 0 si no hubo compras.
// Las líneas cuya categoría ya no existe no aparecen aquí (sí cuentan en TotalSpend).
func (r *ReportRepo) SpendByCategory(ctx context.Context, period entity.DateRange) ([]entity.CategorySpend, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    COALESCE(s.total, 0)      AS total,
	    COALESCE(s.item_count, 0) AS item_count
	FROM categories c
	LEFT JOIN (
	    SELECT li.category_id,
	           SUM(li.quantity * li.price) AS total,
	           COUNT(*)                    AS item_count
	    FROM line_items li
	    JOIN receipts   rc ON rc.id = li.receipt_id
	    WHERE rc.date >= $1
	      AND rc.date <= $2
	    GROUP BY li.category_id
	) s ON s.category_id = c.id
	ORDER BY c.name, c.id`

	rows, err := r.q.Query(ctx, query, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("report.SpendByCategory: %w", err)
	}
	defer rows.Close()

	results := []entity.CategorySpend{}
	for rows.Next() {
		var row entity.CategorySpend
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("report.SpendByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report.SpendByCategory rows: %w", err)
	}
	return results, nil
}
