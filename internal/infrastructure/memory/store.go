// Package memory implementa los puertos de persistencia en memoria. Cada unidad de
// trabajo opera sobre una copia del estado y la publica solo si termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/internal/domain"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

var _ purchases.TxRunner = (*Store)(nil)

type state struct {
	receipts   map[int64]entity.Receipt
	items      map[int64]entity.LineItem
	categories map[int64]entity.Category

	lastReceiptID  int64
	lastItemID     int64
	lastCategoryID int64
}

func newState() *state {
	return &state{
		receipts:   map[int64]entity.Receipt{},
		items:      map[int64]entity.LineItem{},
		categories: map[int64]entity.Category{},
	}
}

func (s *state) clone() *state {
	c := &state{
		receipts:       make(map[int64]entity.Receipt, len(s.receipts)),
		items:          make(map[int64]entity.LineItem, len(s.items)),
		categories:     make(map[int64]entity.Category, len(s.categories)),
		lastReceiptID:  s.lastReceiptID,
		lastItemID:     s.lastItemID,
		lastCategoryID: s.lastCategoryID,
	}
	for k, v := range s.receipts {
		c.receipts[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	return c
}

// access abstrae cómo un repositorio llega al estado: con locks (Store) o directo (tx en curso).
type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// Store backend en memoria, seguro para uso concurrente.
type Store struct {
	mu sync.RWMutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// txState acceso directo a la copia de trabajo; el Store ya tiene el lock tomado.
type txState struct {
	st *state
}

func (t txState) read(fn func(st *state) error) error  { return fn(t.st) }
func (t txState) write(fn func(st *state) error) error { return fn(t.st) }

// Run serializa las unidades de trabajo: toma el lock de escritura, ejecuta fn sobre una
// copia y la publica solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	ctx context.Context,
	receipts repository.ReceiptRepository,
	items repository.LineItemRepository,
	categories repository.CategoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return &domain.ConnectionError{Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := txState{st: s.st.clone()}
	if err := fn(ctx, &receiptRepo{acc: work}, &lineItemRepo{acc: work}, &categoryRepo{acc: work}); err != nil {
		if domain.IsRecoverable(err) {
			return err
		}
		return &domain.TransactionError{Op: "exec", Err: err}
	}
	// Igual que un commit sobre una conexión cancelada: no se publica nada.
	if err := ctx.Err(); err != nil {
		return &domain.TransactionError{Op: "commit", Err: err}
	}
	s.st = work.st
	return nil
}

// View ejecuta lecturas bajo el lock de lectura.
func (s *Store) View(ctx context.Context, fn func(
	ctx context.Context,
	receipts repository.ReceiptRepository,
	items repository.LineItemRepository,
	categories repository.CategoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return &domain.ConnectionError{Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := txState{st: s.st}
	return fn(ctx, &receiptRepo{acc: view}, &lineItemRepo{acc: view}, &categoryRepo{acc: view})
}

// Reports devuelve el repositorio de reportes sobre este store.
func (s *Store) Reports() repository.ReportRepository {
	return &reportRepo{acc: s}
}

// Ping siempre responde; existe para que /health no distinga backends.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
