package purchases

import (
	"context"
	"fmt"
)

// PDFUseCase genera la versión imprimible de un cheque.
type PDFUseCase struct {
	tx        TxRunner
	generator ReceiptPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(tx TxRunner, generator ReceiptPDFGenerator) *PDFUseCase {
	return &PDFUseCase{tx: tx, generator: generator}
}

// DownloadReceiptPDF devuelve el PDF del cheque y un nombre de archivo sugerido.
// Devuelve domain.ErrNotFound si el cheque no existe.
func (uc *PDFUseCase) DownloadReceiptPDF(ctx context.Context, id int64) (pdfBytes []byte, filename string, err error) {
	receipt, lines, total, err := loadReceipt(ctx, uc.tx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, receipt, lines, total)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("cheque_%d.pdf", receipt.ID), nil
}
