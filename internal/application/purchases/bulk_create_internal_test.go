package purchases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

// recordingTx registra los cheques creados sin persistir nada.
type recordingTx struct {
	created []*entity.Receipt
}

func (r *recordingTx) Run(ctx context.Context, fn func(context.Context, repository.ReceiptRepository, repository.LineItemRepository, repository.CategoryRepository) error) error {
	return fn(ctx, &recordingReceipts{tx: r}, nil, nil)
}

func (r *recordingTx) View(ctx context.Context, fn func(context.Context, repository.ReceiptRepository, repository.LineItemRepository, repository.CategoryRepository) error) error {
	return fn(ctx, &recordingReceipts{tx: r}, nil, nil)
}

type recordingReceipts struct {
	repository.ReceiptRepository
	tx *recordingTx
}

func (r *recordingReceipts) Create(_ context.Context, receipt *entity.Receipt) error {
	receipt.ID = int64(len(r.tx.created) + 1)
	r.tx.created = append(r.tx.created, receipt)
	return nil
}

func TestBulkCreate_SinFechaUsaHoy(t *testing.T) {
	tx := &recordingTx{}
	uc := NewReceiptUseCase(tx)
	uc.now = func() time.Time { return time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC) }

	id, err := uc.BulkCreate(context.Background(), dto.BulkReceiptRequest{Store: "Maxima"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.Len(t, tx.created, 1)
	assert.Equal(t, "2024-06-15", entity.FormatDate(tx.created[0].Date))
}
