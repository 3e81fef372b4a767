package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/apskaita-api/internal/domain"
)

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// notFound envuelve domain.ErrNotFound con la operación y el id.
func notFound(op string, id int64) error {
	return fmt.Errorf("%s %d: %w", op, id, domain.ErrNotFound)
}
