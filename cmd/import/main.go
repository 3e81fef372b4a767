// import carga cheques desde una exportación CSV o XLSX (una fila por línea de cheque).
//
// Uso: go run ./cmd/import -file compras.csv [-charset windows-1257] [-workers 4]
//
// Columnas: date, store, description, quantity, price, category (o data, parduotuvė,
// pavadinimas, kiekis, kaina, tipas). Las categorías que no existan se crean.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/apskaita-api/internal/application/importer"
	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/internal/infrastructure/postgres"
	"github.com/jhoicas/apskaita-api/internal/infrastructure/tabular"
	"github.com/jhoicas/apskaita-api/pkg/config"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

func main() {
	file := flag.String("file", "", "archivo .csv o .xlsx a importar")
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8, windows-1257, iso-8859-13")
	workers := flag.Int("workers", 4, "cheques creados en paralelo")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "falta -file")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.Backend != config.StoragePostgres {
		fmt.Fprintln(os.Stderr, "la importación requiere STORAGE_BACKEND=postgres")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	rows, err := readRows(*file, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer %s: %v\n", *file, err)
		os.Exit(1)
	}

	ctx := context.Background()
	backend, err := postgres.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer backend.Close()

	im := importer.New(
		purchases.NewReceiptUseCase(backend.Tx),
		purchases.NewCategoryUseCase(backend.Tx),
		*workers,
		log,
	)
	res, err := im.Import(ctx, rows)
	if err != nil {
		log.Error().Err(err).Msg("importación abortada")
		backend.Close()
		os.Exit(1)
	}

	for _, r := range res.Receipts {
		if r.Err != nil {
			fmt.Printf("línea %d  %s %s: %v\n", r.FirstLine, r.Date, r.Store, r.Err)
		}
	}
	fmt.Printf("Importados %d de %d cheques (%d filas), %d categorías nuevas\n",
		len(res.Receipts)-res.Failed(), len(res.Receipts), len(rows), res.CreatedCategories)
	if res.Failed() > 0 {
		backend.Close()
		os.Exit(1)
	}
}

func readRows(path, charset string) ([]importer.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return tabular.ReadXLSX(f)
	default:
		return tabular.ReadCSV(f, charset)
	}
}
