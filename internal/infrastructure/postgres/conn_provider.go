package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/apskaita-api/internal/domain"
)

// Conn es la conexión dedicada que usa una unidad de trabajo. *pgxpool.Conn la implementa.
type Conn interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Release()
}

// ConnProvider entrega y recupera conexiones del pool.
type ConnProvider interface {
	Acquire(ctx context.Context) (Conn, error)
	Release(conn Conn)
}

var _ ConnProvider = (*PoolProvider)(nil)

// PoolProvider implementa ConnProvider sobre pgxpool.
type PoolProvider struct {
	pool *pgxpool.Pool
}

// NewPoolProvider construye el proveedor con el pool de la app.
func NewPoolProvider(pool *pgxpool.Pool) *PoolProvider {
	return &PoolProvider{pool: pool}
}

// Acquire toma una conexión del pool. Bloquea hasta que haya una libre o ctx expire.
func (p *PoolProvider) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, &domain.ConnectionError{Err: err}
	}
	return conn, nil
}

// Release devuelve la conexión al pool. Acepta nil y llamadas repetidas.
func (p *PoolProvider) Release(conn Conn) {
	if conn == nil {
		return
	}
	conn.Release()
}

// Ping verifica que la base responda (usado por /health).
func (p *PoolProvider) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return &domain.ConnectionError{Err: err}
	}
	return nil
}
