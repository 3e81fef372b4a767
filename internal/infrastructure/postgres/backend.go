package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/apskaita-api/pkg/config"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

// Backend agrupa el pool y los adaptadores que consume la capa de aplicación.
type Backend struct {
	Pool     *pgxpool.Pool
	Provider *PoolProvider
	Tx       *TxRunner
	Reports  *ReportRepo
}

// Open abre el pool, crea el esquema si cfg.AutoSchema y arma la unidad de trabajo.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Backend, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoSchema {
		if err := EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema verificado")
	}
	provider := NewPoolProvider(pool)
	return &Backend{
		Pool:     pool,
		Provider: provider,
		Tx:       NewTxRunner(provider, cfg.TxTimeout, log),
		Reports:  NewReportRepository(pool),
	}, nil
}

// Ping verifica que la base responda.
func (b *Backend) Ping(ctx context.Context) error {
	return b.Provider.Ping(ctx)
}

// Close cierra el pool.
func (b *Backend) Close() {
	b.Pool.Close()
}
