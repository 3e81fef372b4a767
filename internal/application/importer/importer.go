// Package importer carga cheques desde exportaciones tabulares (una fila por línea).
// Las filas se agrupan por fecha y tienda; cada grupo se crea como un cheque en su
// propia unidad de trabajo, de modo que un cheque inválido no bloquea a los demás.
package importer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

// Row una línea de cheque tal como viene del archivo.
type Row struct {
	Line        int // número de línea en el archivo, para los mensajes
	Date        string
	Store       string
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Category    string
}

// ReceiptResult resultado de un cheque importado.
type ReceiptResult struct {
	FirstLine int
	Date      string
	Store     string
	Items     int
	ID        int64
	Err       error
}

// Result resumen de la importación.
type Result struct {
	Receipts          []ReceiptResult
	CreatedCategories int
}

// Failed cuenta los cheques que no se pudieron crear.
func (r *Result) Failed() int {
	n := 0
	for _, rr := range r.Receipts {
		if rr.Err != nil {
			n++
		}
	}
	return n
}

// Importer crea categorías faltantes y cheques completos a partir de filas.
type Importer struct {
	receipts   *purchases.ReceiptUseCase
	categories *purchases.CategoryUseCase
	workers    int
	log        *logger.Logger
}

// New construye el importador. workers < 1 se trata como 1.
func New(receipts *purchases.ReceiptUseCase, categories *purchases.CategoryUseCase, workers int, log *logger.Logger) *Importer {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{receipts: receipts, categories: categories, workers: workers, log: log.Component("importer")}
}

type group struct {
	firstLine int
	req       dto.BulkReceiptRequest
	names     []string
}

// Import resuelve las categorías por nombre (sin distinguir mayúsculas) creando las que
// falten, y luego crea un cheque por cada par fecha/tienda. Solo devuelve error si falla
// la resolución de categorías; los errores por cheque quedan en el Result.
func (im *Importer) Import(ctx context.Context, rows []Row) (*Result, error) {
	res := &Result{}
	ids, created, err := im.resolveCategories(ctx, rows)
	if err != nil {
		return nil, err
	}
	res.CreatedCategories = created

	groups := groupRows(rows)
	res.Receipts = make([]ReceiptResult, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.workers)
	var mu sync.Mutex
	for i, grp := range groups {
		i, grp := i, grp
		for j, name := range grp.names {
			grp.req.Items[j].CategoryID = ids[foldName(name)]
		}
		g.Go(func() error {
			id, err := im.receipts.BulkCreate(gctx, grp.req)
			rr := ReceiptResult{
				FirstLine: grp.firstLine,
				Date:      grp.req.Date,
				Store:     grp.req.Store,
				Items:     len(grp.req.Items),
				ID:        id,
				Err:       err,
			}
			if err != nil {
				im.log.Warn().Err(err).Int("line", grp.firstLine).Str("store", grp.req.Store).Msg("cheque rechazado")
			}
			mu.Lock()
			res.Receipts[i] = rr
			mu.Unlock()
			return nil
		})
	}
	// Los workers siempre devuelven nil: el error de cada cheque queda en su ReceiptResult
	// y un cheque rechazado no cancela a los demás.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	im.log.Info().
		Int("receipts", len(res.Receipts)).
		Int("failed", res.Failed()).
		Int("categories_created", created).
		Msg("importación terminada")
	return res, nil
}

func (im *Importer) resolveCategories(ctx context.Context, rows []Row) (map[string]int64, int, error) {
	list, err := im.categories.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("import: listar categorías: %w", err)
	}
	ids := make(map[string]int64, len(list.Items))
	for _, c := range list.Items {
		key := foldName(c.Name)
		if _, ok := ids[key]; !ok {
			ids[key] = c.ID
		}
	}

	created := 0
	for _, r := range rows {
		key := foldName(r.Category)
		if key == "" {
			continue
		}
		if _, ok := ids[key]; ok {
			continue
		}
		id, err := im.categories.Create(ctx, dto.CategoryRequest{Name: strings.TrimSpace(r.Category)})
		if err != nil {
			return nil, 0, fmt.Errorf("import: línea %d: crear categoría %q: %w", r.Line, r.Category, err)
		}
		ids[key] = id
		created++
	}
	return ids, created, nil
}

// groupRows agrupa por fecha y tienda conservando el orden de aparición.
func groupRows(rows []Row) []*group {
	var groups []*group
	index := map[string]*group{}
	for _, r := range rows {
		key := strings.TrimSpace(r.Date) + "\x00" + strings.TrimSpace(r.Store)
		grp, ok := index[key]
		if !ok {
			grp = &group{
				firstLine: r.Line,
				req:       dto.BulkReceiptRequest{Date: strings.TrimSpace(r.Date), Store: strings.TrimSpace(r.Store)},
			}
			index[key] = grp
			groups = append(groups, grp)
		}
		grp.req.Items = append(grp.req.Items, dto.LineItemRequest{
			Description: r.Description,
			Quantity:    r.Quantity,
			Price:       r.Price,
		})
		grp.names = append(grp.names, r.Category)
	}
	return groups
}

// foldName clave de comparación de nombres; un Caser no se comparte entre goroutines.
func foldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
