package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ReportService serves the combined sales+purchases report. Purely a derived
// view: it relies on the ledger and total rules having kept the underlying
// rows consistent, and never mutates anything itself.
type ReportService interface {
	GetCombined(ctx context.Context, filter dto.ReportFilter) (*dto.ReportPageResponse, error)
	Export(ctx context.Context, filter dto.ReportFilter) ([]dto.TransactionRow, error)
	// ExportXLSX renders the unbounded export as a spreadsheet.
	ExportXLSX(ctx context.Context, filter dto.ReportFilter) ([]byte, error)
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func normalizeReportFilter(filter dto.ReportFilter) (dto.ReportFilter, error) {
	switch filter.Type {
	case "", dto.TxTypeAll:
		filter.Type = dto.TxTypeAll
	case dto.TxTypeSale, dto.TxTypePurchase:
	default:
		return filter, fmt.Errorf("%w: unknown transaction type %q", ErrConstraintViolation, filter.Type)
	}
	if filter.End.IsZero() {
		filter.End = time.Now()
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter, nil
}

func (s *reportService) GetCombined(ctx context.Context, filter dto.ReportFilter) (*dto.ReportPageResponse, error) {
	filter, err := normalizeReportFilter(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Page(ctx, filter)
	if err != nil {
		return nil, translateDBError(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, translateDBError(err)
	}

	return &dto.ReportPageResponse{
		Rows:   rows,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (s *reportService) Export(ctx context.Context, filter dto.ReportFilter) ([]dto.TransactionRow, error) {
	filter, err := normalizeReportFilter(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Export(ctx, filter)
	if err != nil {
		return nil, translateDBError(err)
	}
	return rows, nil
}

var xlsxHeaders = []string{"Date", "Type", "Product", "HSN", "Qty Change", "Unit Price", "Amount", "Reference"}

func (s *reportService) ExportXLSX(ctx context.Context, filter dto.ReportFilter) ([]byte, error) {
	rows, err := s.Export(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, row := range rows {
		values := []interface{}{
			row.TransactionDate.Format("2006-01-02"),
			row.TransactionType,
			row.ProductName,
			row.HSNCode,
			row.QuantityChange,
			row.UnitPrice.InexactFloat64(),
			row.Amount.InexactFloat64(),
			row.Reference,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
