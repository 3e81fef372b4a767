package reporting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apskaita-api/internal/application/dto"
	"github.com/jhoicas/apskaita-api/internal/domain/entity"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
)

// ReportUseCase reportes de gasto por rango de fechas. Los montos se suman en decimal exacto.
type ReportUseCase struct {
	repo     repository.ReportRepository
	exporter Exporter
}

// NewReportUseCase construye el caso de uso. exporter puede ser nil si no se exporta.
func NewReportUseCase(repo repository.ReportRepository, exporter Exporter) *ReportUseCase {
	return &ReportUseCase{repo: repo, exporter: exporter}
}

// TotalSpend gasto total del período.
func (uc *ReportUseCase) TotalSpend(ctx context.Context, req dto.ReportRequest) (*dto.TotalSpendResponse, error) {
	period, err := ParsePeriod(req.From, req.To)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.TotalSpend(ctx, period)
	if err != nil {
		return nil, err
	}
	return &dto.TotalSpendResponse{Period: toPeriodDTO(period), Total: total.StringFixed(2)}, nil
}

// SpendByCategory una fila por categoría existente, con ceros si no hubo compras.
func (uc *ReportUseCase) SpendByCategory(ctx context.Context, req dto.ReportRequest) (*dto.CategoryReportResponse, error) {
	period, err := ParsePeriod(req.From, req.To)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.SpendByCategory(ctx, period)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryReportResponse{Period: toPeriodDTO(period), Rows: toCategorySpendDTOs(rows)}, nil
}

// Summary total y desglose por categoría. Las dos consultas son independientes y corren en paralelo.
func (uc *ReportUseCase) Summary(ctx context.Context, req dto.ReportRequest) (*dto.SummaryResponse, error) {
	period, err := ParsePeriod(req.From, req.To)
	if err != nil {
		return nil, err
	}
	total, rows, err := uc.fetch(ctx, period)
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		Period: toPeriodDTO(period),
		Total:  total.StringFixed(2),
		Rows:   toCategorySpendDTOs(rows),
	}, nil
}

// ExportXLSX genera el libro del reporte por categoría y un nombre de archivo sugerido.
func (uc *ReportUseCase) ExportXLSX(ctx context.Context, req dto.ReportRequest) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("report export: exporter no configurado")
	}
	period, err := ParsePeriod(req.From, req.To)
	if err != nil {
		return nil, "", err
	}
	total, rows, err := uc.fetch(ctx, period)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.CategoryReport(period, rows, total)
	if err != nil {
		return nil, "", fmt.Errorf("report export: %w", err)
	}
	name := fmt.Sprintf("report_%s_%s.xlsx", entity.FormatDate(period.From), entity.FormatDate(period.To))
	return data, name, nil
}

func (uc *ReportUseCase) fetch(ctx context.Context, period entity.DateRange) (decimal.Decimal, []entity.CategorySpend, error) {
	type totalResult struct {
		total decimal.Decimal
		err   error
	}
	type rowsResult struct {
		rows []entity.CategorySpend
		err  error
	}

	totalChan := make(chan totalResult, 1)
	rowsChan := make(chan rowsResult, 1)

	go func() {
		total, err := uc.repo.TotalSpend(ctx, period)
		totalChan <- totalResult{total, err}
	}()
	go func() {
		rows, err := uc.repo.SpendByCategory(ctx, period)
		rowsChan <- rowsResult{rows, err}
	}()

	tRes := <-totalChan
	rRes := <-rowsChan

	if tRes.err != nil {
		return decimal.Zero, nil, fmt.Errorf("report: total: %w", tRes.err)
	}
	if rRes.err != nil {
		return decimal.Zero, nil, fmt.Errorf("report: categorías: %w", rRes.err)
	}
	return tRes.total, rRes.rows, nil
}

func toPeriodDTO(p entity.DateRange) dto.PeriodDTO {
	return dto.PeriodDTO{From: entity.FormatDate(p.From), To: entity.FormatDate(p.To)}
}

func toCategorySpendDTOs(rows []entity.CategorySpend) []dto.CategorySpendDTO {
	out := make([]dto.CategorySpendDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategorySpendDTO{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Total:        r.Total.StringFixed(2),
			Count:        r.Count,
		})
	}
	return out
}
