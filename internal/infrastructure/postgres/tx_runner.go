package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/internal/domain"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

var _ purchases.TxRunner = (*TxRunner)(nil)

const rollbackTimeout = 5 * time.Second

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL sobre una conexión dedicada.
// Cada Run termina en exactamente un Commit o un Rollback y siempre libera la conexión.
type TxRunner struct {
	provider ConnProvider
	timeout  time.Duration
	log      *logger.Logger
}

// NewTxRunner construye el runner. timeout <= 0 deja solo el límite del contexto del llamador.
func NewTxRunner(provider ConnProvider, timeout time.Duration, log *logger.Logger) *TxRunner {
	if log == nil {
		log = logger.Nop()
	}
	return &TxRunner{provider: provider, timeout: timeout, log: log.Component("txrunner")}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// fn recibe el contexto acotado por el timeout de la unidad.
// Los errores de dominio de fn (NotFound, validación) se devuelven tal cual; el resto
// se envuelve en *domain.TransactionError.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ctx context.Context,
	receipts repository.ReceiptRepository,
	items repository.LineItemRepository,
	categories repository.CategoryRepository,
) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	conn, err := r.provider.Acquire(ctx)
	if err != nil {
		return err
	}
	defer r.provider.Release(conn)

	tx, err := conn.Begin(ctx)
	if err != nil {
		// Sin transacción abierta no hay nada que confirmar ni revertir.
		return &domain.TransactionError{Op: "begin", Err: err}
	}

	finished := false
	defer func() {
		if !finished { // panic dentro de fn
			r.rollback(ctx, tx)
		}
	}()

	if err := fn(ctx, NewReceiptRepository(tx), NewLineItemRepository(tx), NewCategoryRepository(tx)); err != nil {
		finished = true
		r.rollback(ctx, tx)
		if domain.IsRecoverable(err) {
			return err
		}
		return &domain.TransactionError{Op: "exec", Err: err}
	}

	finished = true
	if err := tx.Commit(ctx); err != nil {
		// pgx cierra la tx cuando el commit falla; no se emite un rollback adicional.
		return &domain.TransactionError{Op: "commit", Err: err}
	}
	return nil
}

// View ejecuta lecturas sobre una sola conexión, sin transacción, con el mismo timeout que Run.
func (r *TxRunner) View(ctx context.Context, fn func(
	ctx context.Context,
	receipts repository.ReceiptRepository,
	items repository.LineItemRepository,
	categories repository.CategoryRepository,
) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	conn, err := r.provider.Acquire(ctx)
	if err != nil {
		return err
	}
	defer r.provider.Release(conn)
	return fn(ctx, NewReceiptRepository(conn), NewLineItemRepository(conn), NewCategoryRepository(conn))
}

func (r *TxRunner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// rollback usa un contexto desacoplado de la cancelación del llamador: una petición
// cancelada o vencida igual debe revertir antes de devolver la conexión.
func (r *TxRunner) rollback(ctx context.Context, tx pgx.Tx) {
	rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()
	if err := tx.Rollback(rbCtx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.log.Warn().Err(err).Msg("rollback fallido")
	}
}
