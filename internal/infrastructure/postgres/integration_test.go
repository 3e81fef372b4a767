//go:build integration

package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/internal/domain"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
	"github.com/jhoicas/apskaita-api/pkg/config"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Ejecutar con: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/
var testBackend *Backend

func TestMain(m *testing.M) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		fmt.Println("TEST_DATABASE_URL no definido; se omiten las pruebas de integración")
		os.Exit(0)
	}

	ctx := context.Background()
	var err error
	testBackend, err = Open(ctx, config.DBConfig{
		DatabaseURL:      url,
		MaxConns:         4,
		StatementTimeout: 5 * time.Second,
		TxTimeout:        10 * time.Second,
		AutoSchema:       true,
	}, logger.Nop())
	if err != nil {
		panic("abrir base de pruebas: " + err.Error())
	}

	code := m.Run()
	testBackend.Close()
	os.Exit(code)
}

func setupTest(t *testing.T) context.Context {
	t.Helper()
	ctx := context.Background()
	_, err := testBackend.Pool.Exec(ctx, `TRUNCATE line_items, receipts, categories RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return ctx
}

func countRows(t *testing.T, ctx context.Context, table string) int {
	t.Helper()
	var n int
	require.NoError(t, testBackend.Pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n))
	return n
}

func date(s string) time.Time {
	d, err := entity.ParseDate("date", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIntegration_FlujoMaximaBread(t *testing.T) {
	ctx := setupTest(t)
	receipts := purchases.NewReceiptUseCase(testBackend.Tx)
	items := purchases.NewLineItemUseCase(testBackend.Tx)
	categories := purchases.NewCategoryUseCase(testBackend.Tx)

	food, err := categories.Create(ctx, dto.CategoryRequest{Name: "Food"})
	require.NoError(t, err)
	receiptID, err := receipts.Create(ctx, dto.ReceiptRequest{Date: "2024-01-05", Store: "Maxima"})
	require.NoError(t, err)
	itemID, err := items.Create(ctx, receiptID, dto.LineItemRequest{Description: "Bread", Quantity: dec("2"), Price: dec("1.50"), CategoryID: food})
	require.NoError(t, err)

	detail, err := receipts.GetByID(ctx, receiptID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", detail.Date)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Food", detail.Items[0].CategoryName)
	assert.Equal(t, "3.00", detail.Total)

	owner, err := items.Delete(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, receiptID, owner)

	detail, err = receipts.GetByID(ctx, receiptID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", detail.Total)

	_, err = items.GetByID(ctx, itemID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegration_PrecioNegativoSinEscritura(t *testing.T) {
	ctx := setupTest(t)
	receipts := purchases.NewReceiptUseCase(testBackend.Tx)
	items := purchases.NewLineItemUseCase(testBackend.Tx)
	categories := purchases.NewCategoryUseCase(testBackend.Tx)

	food, err := categories.Create(ctx, dto.CategoryRequest{Name: "Food"})
	require.NoError(t, err)
	receiptID, err := receipts.Create(ctx, dto.ReceiptRequest{Date: "2024-01-05", Store: "Maxima"})
	require.NoError(t, err)

	_, err = items.Create(ctx, receiptID, dto.LineItemRequest{Description: "Bread", Quantity: dec("1"), Price: dec("-5"), CategoryID: food})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, countRows(t, ctx, "line_items"))
}

func TestIntegration_BulkAtomico(t *testing.T) {
	ctx := setupTest(t)
	receipts := purchases.NewReceiptUseCase(testBackend.Tx)
	categories := purchases.NewCategoryUseCase(testBackend.Tx)
	food, err := categories.Create(ctx, dto.CategoryRequest{Name: "Food"})
	require.NoError(t, err)

	_, err = receipts.BulkCreate(ctx, dto.BulkReceiptRequest{
		Date:  "2024-01-05",
		Store: "Maxima",
		Items: []dto.LineItemRequest{
			{Description: "Bread", Quantity: dec("1"), Price: dec("1"), CategoryID: food},
			{Description: "Gin", Quantity: dec("1"), Price: dec("20"), CategoryID: food + 100},
		},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, countRows(t, ctx, "receipts"))
	assert.Zero(t, countRows(t, ctx, "line_items"))
}

func TestIntegration_SentenciaFallidaHaceRollback(t *testing.T) {
	ctx := setupTest(t)

	err := testBackend.Tx.Run(ctx, func(ctx context.Context, receipts repository.ReceiptRepository, items repository.LineItemRepository, _ repository.CategoryRepository) error {
		r := &entity.Receipt{Date: date("2024-01-05"), Store: "Rimi"}
		if err := receipts.Create(ctx, r); err != nil {
			return err
		}
		ok := &entity.LineItem{ReceiptID: r.ID, Description: "Milk", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1), CategoryID: 1}
		if err := items.Create(ctx, ok); err != nil {
			return err
		}
		// Cantidad cero saltándose la validación de entidad: la rechaza el CHECK de la tabla.
		bad := &entity.LineItem{ReceiptID: r.ID, Description: "Broken", Quantity: decimal.Zero, Price: decimal.NewFromInt(1), CategoryID: 1}
		return items.Create(ctx, bad)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransaction)
	assert.Zero(t, countRows(t, ctx, "receipts"))
	assert.Zero(t, countRows(t, ctx, "line_items"))
}

func TestIntegration_LineaConChequeInexistente(t *testing.T) {
	ctx := setupTest(t)
	err := testBackend.Tx.Run(ctx, func(ctx context.Context, _ repository.ReceiptRepository, items repository.LineItemRepository, _ repository.CategoryRepository) error {
		li := &entity.LineItem{ReceiptID: 999, Description: "Milk", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1), CategoryID: 1}
		return items.Create(ctx, li)
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegration_DeleteEnCascada(t *testing.T) {
	ctx := setupTest(t)
	receipts := purchases.NewReceiptUseCase(testBackend.Tx)
	categories := purchases.NewCategoryUseCase(testBackend.Tx)
	food, err := categories.Create(ctx, dto.CategoryRequest{Name: "Food"})
	require.NoError(t, err)
	keep, err := receipts.BulkCreate(ctx, dto.BulkReceiptRequest{Date: "2024-01-04", Store: "Iki", Items: []dto.LineItemRequest{
		{Description: "Tea", Quantity: dec("1"), Price: dec("2"), CategoryID: food},
	}})
	require.NoError(t, err)
	id, err := receipts.BulkCreate(ctx, dto.BulkReceiptRequest{Date: "2024-01-05", Store: "Maxima", Items: []dto.LineItemRequest{
		{Description: "Bread", Quantity: dec("1"), Price: dec("1"), CategoryID: food},
		{Description: "Milk", Quantity: dec("1"), Price: dec("1"), CategoryID: food},
	}})
	require.NoError(t, err)

	require.NoError(t, receipts.Delete(ctx, id))

	var n int
	require.NoError(t, testBackend.Pool.QueryRow(ctx, `SELECT count(*) FROM line_items WHERE receipt_id = $1`, id).Scan(&n))
	assert.Zero(t, n)
	assert.Equal(t, 1, countRows(t, ctx, "line_items"))
	_, err = receipts.GetByID(ctx, keep)
	assert.NoError(t, err)

	assert.ErrorIs(t, receipts.Delete(ctx, id), domain.ErrNotFound)
}

func TestIntegration_Reportes(t *testing.T) {
	ctx := setupTest(t)
	receipts := purchases.NewReceiptUseCase(testBackend.Tx)
	categories := purchases.NewCategoryUseCase(testBackend.Tx)
	food, err := categories.Create(ctx, dto.CategoryRequest{Name: "Food"})
	require.NoError(t, err)
	_, err = categories.Create(ctx, dto.CategoryRequest{Name: "Alcohol"})
	require.NoError(t, err)

	_, err = receipts.BulkCreate(ctx, dto.BulkReceiptRequest{Date: "2024-01-05", Store: "Maxima", Items: []dto.LineItemRequest{
		{Description: "Bread", Quantity: dec("2"), Price: dec("1.5"), CategoryID: food},
		{Description: "Candy", Quantity: dec("3"), Price: dec("0.1"), CategoryID: food},
	}})
	require.NoError(t, err)
	_, err = receipts.BulkCreate(ctx, dto.BulkReceiptRequest{Date: "2024-02-10", Store: "Rimi", Items: []dto.LineItemRequest{
		{Description: "Milk", Quantity: dec("1"), Price: dec("0.99"), CategoryID: food},
	}})
	require.NoError(t, err)

	reports := testBackend.Reports
	jan := entity.DateRange{From: date("2024-01-01"), To: date("2024-01-31")}

	total, err := reports.TotalSpend(ctx, jan)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("3.30")), "got %s", total)

	// Ampliar el rango nunca reduce el total.
	ranges := []entity.DateRange{
		{From: date("2024-01-05"), To: date("2024-01-05")},
		jan,
		{From: date("2024-01-01"), To: date("2024-02-29")},
		entity.OpenRange(),
	}
	prev := decimal.Zero
	for _, r := range ranges {
		got, err := reports.TotalSpend(ctx, r)
		require.NoError(t, err)
		assert.True(t, got.GreaterThanOrEqual(prev), "%s < %s", got, prev)
		prev = got
	}
	assert.True(t, prev.Equal(decimal.RequireFromString("4.29")), "got %s", prev)

	empty, err := reports.TotalSpend(ctx, entity.DateRange{From: date("2030-01-01"), To: date("2030-12-31")})
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	rows, err := reports.SpendByCategory(ctx, jan)
	require.NoError(t, err)
	require.Len(t, rows, 2, "una fila por categoría")
	assert.Equal(t, "Alcohol", rows[0].CategoryName)
	assert.True(t, rows[0].Total.IsZero())
	assert.Zero(t, rows[0].Count)
	assert.Equal(t, "Food", rows[1].CategoryName)
	assert.True(t, rows[1].Total.Equal(decimal.RequireFromString("3.3")))
	assert.Equal(t, int64(2), rows[1].Count)
}

func TestIntegration_CategoriaBorradaDejaHuerfanas(t *testing.T) {
	ctx := setupTest(t)
	receipts := purchases.NewReceiptUseCase(testBackend.Tx)
	categories := purchases.NewCategoryUseCase(testBackend.Tx)
	food, err := categories.Create(ctx, dto.CategoryRequest{Name: "Food"})
	require.NoError(t, err)
	id, err := receipts.BulkCreate(ctx, dto.BulkReceiptRequest{Date: "2024-01-05", Store: "Maxima", Items: []dto.LineItemRequest{
		{Description: "Bread", Quantity: dec("2"), Price: dec("1.5"), CategoryID: food},
	}})
	require.NoError(t, err)

	require.NoError(t, categories.Delete(ctx, food))

	detail, err := receipts.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, food, detail.Items[0].CategoryID)
	assert.Empty(t, detail.Items[0].CategoryName)

	total, err := testBackend.Reports.TotalSpend(ctx, entity.OpenRange())
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("3")))
	rows, err := testBackend.Reports.SpendByCategory(ctx, entity.OpenRange())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestIntegration_NumericSinRedondeo(t *testing.T) {
	ctx := setupTest(t)
	receipts := purchases.NewReceiptUseCase(testBackend.Tx)
	items := purchases.NewLineItemUseCase(testBackend.Tx)
	categories := purchases.NewCategoryUseCase(testBackend.Tx)

	metals, err := categories.Create(ctx, dto.CategoryRequest{Name: "Metals"})
	require.NoError(t, err)
	receiptID, err := receipts.Create(ctx, dto.ReceiptRequest{Date: "2024-01-05", Store: "Maxima"})
	require.NoError(t, err)
	itemID, err := items.Create(ctx, receiptID, dto.LineItemRequest{
		Description: "Gold", Quantity: dec("0.0005"), Price: dec("1234567890.123456789"), CategoryID: metals,
	})
	require.NoError(t, err)

	got, err := items.GetByID(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, "0.0005", got.Quantity)
	assert.Equal(t, "1234567890.123456789", got.Price)

	total, err := testBackend.Reports.TotalSpend(ctx, entity.OpenRange())
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("617283.9450617283945")), "got %s", total)
}
