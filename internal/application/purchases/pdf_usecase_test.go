package purchases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/internal/domain"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
)

type fakePDF struct {
	receipt *entity.Receipt
	items   []*entity.LineItem
	total   decimal.Decimal
	err     error
}

func (f *fakePDF) GenerateReceiptPDF(_ context.Context, receipt *entity.Receipt, items []*entity.LineItem, total decimal.Decimal) ([]byte, error) {
	f.receipt, f.items, f.total = receipt, items, total
	return []byte("%PDF"), f.err
}

func TestPDFUseCase_DownloadReceiptPDF(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	food := f.category(t, "Food")
	id, err := f.receipts.BulkCreate(ctx, dto.BulkReceiptRequest{
		Date:  "2024-01-05",
		Store: "Maxima",
		Items: []dto.LineItemRequest{
			{Description: "Milk", Quantity: dec("1"), Price: dec("0.99"), CategoryID: food},
			{Description: "Bread", Quantity: dec("2"), Price: dec("1.5"), CategoryID: food},
		},
	})
	require.NoError(t, err)

	gen := &fakePDF{}
	uc := purchases.NewPDFUseCase(f.store, gen)
	data, name, err := uc.DownloadReceiptPDF(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Equal(t, "cheque_1.pdf", name)
	assert.Equal(t, "Maxima", gen.receipt.Store)
	require.Len(t, gen.items, 2)
	assert.Equal(t, "Bread", gen.items[0].Description)
	assert.True(t, gen.total.Equal(decimal.RequireFromString("3.99")))
}

func TestPDFUseCase_NoExiste(t *testing.T) {
	f := newFixture()
	_, _, err := purchases.NewPDFUseCase(f.store, &fakePDF{}).DownloadReceiptPDF(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPDFUseCase_ErrorDelGenerador(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id, err := f.receipts.Create(ctx, dto.ReceiptRequest{Date: "2024-01-05", Store: "Rimi"})
	require.NoError(t, err)
	boom := errors.New("fuente")
	_, _, err = purchases.NewPDFUseCase(f.store, &fakePDF{err: boom}).DownloadReceiptPDF(ctx, id)
	assert.ErrorIs(t, err, boom)
}
