package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
	pkgerrors "github.com/DangTDuy/ev-dealer-management-sub001/pkg/errors"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const typeSales = "sales"

var salesHeaders = []string{"date", "dealerId", "dealerName", "region", "salespersonName", "totalOrders", "totalRevenue"}

// Request describes one export job.
type Request struct {
	Type     string     `json:"type"`
	Format   string     `json:"format"`
	FromDate *time.Time `json:"from,omitempty"`
	ToDate   *time.Time `json:"to,omitempty"`
	DealerID string     `json:"dealerId,omitempty"`
}

// Result is a rendered export ready to stream to the client.
type Result struct {
	FileName    string
	ContentType string
	Content     []byte
	RowCount    int
}

// SalesReader supplies the dataset being exported.
type SalesReader interface {
	SalesSummariesInRange(ctx context.Context, filters summary.SalesFilters) ([]models.SalesSummary, error)
}

// Store persists export bookkeeping records.
type Store interface {
	CreateReportRequest(ctx context.Context, req *models.ReportRequest) error
	CreateReportExport(ctx context.Context, exp *models.ReportExport) error
}

// ServiceParams configure the export service.
type ServiceParams struct {
	Logger *logger.Logger
	Repo   SalesReader
	Store  Store
}

// Service renders the sales summary dataset as CSV or xlsx. Bookkeeping
// records are written best-effort: a persistence failure is logged and the
// export still streams.
type Service struct {
	logg  *logger.Logger
	repo  SalesReader
	store Store

	now func() time.Time
}

// NewService builds an export service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("summary reader required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	return &Service{
		logg:  params.Logger,
		repo:  params.Repo,
		store: params.Store,
		now:   time.Now,
	}, nil
}

// Generate renders the export described by req.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Type == "" {
		req.Type = typeSales
	}
	if req.Type != typeSales {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported export type").WithDetails(req.Type)
	}
	if req.Format == "" {
		req.Format = FormatCSV
	}
	if req.Format != FormatCSV && req.Format != FormatXLSX {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "format must be csv or xlsx")
	}

	rows, err := s.repo.SalesSummariesInRange(ctx, summary.SalesFilters{
		From:     req.FromDate,
		To:       req.ToDate,
		DealerID: req.DealerID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load export dataset")
	}

	now := s.now().UTC()
	result := &Result{
		FileName: fmt.Sprintf("report_%s_%s.%s", req.Type, now.Format("20060102150405"), req.Format),
		RowCount: len(rows),
	}
	switch req.Format {
	case FormatXLSX:
		result.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		result.Content, err = renderXLSX(rows)
	default:
		result.ContentType = "text/csv"
		result.Content, err = renderCSV(rows)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render export")
	}

	s.recordExport(ctx, req, result, now)
	return result, nil
}

func (s *Service) recordExport(ctx context.Context, req Request, result *Result, now time.Time) {
	record := &models.ReportRequest{
		ReportType:  req.Type,
		Format:      req.Format,
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		Status:      "completed",
		RequestedAt: now,
		CompletedAt: &now,
	}
	if err := s.store.CreateReportRequest(ctx, record); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("save report request: %v", err))
		return
	}
	exp := &models.ReportExport{
		RequestID: record.ID,
		FileName:  result.FileName,
		Format:    req.Format,
		SizeBytes: int64(len(result.Content)),
		RowCount:  result.RowCount,
		CreatedAt: now,
	}
	if err := s.store.CreateReportExport(ctx, exp); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("save report export: %v", err))
	}
}

func salesRecord(row models.SalesSummary) []string {
	return []string{
		row.Date.UTC().Format("2006-01-02"),
		row.DealerID,
		row.DealerName,
		row.Region,
		row.SalespersonName,
		fmt.Sprintf("%d", row.TotalOrders),
		row.TotalRevenue.StringFixed(2),
	}
}

func renderCSV(rows []models.SalesSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(salesHeaders); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(salesRecord(row)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows []models.SalesSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, err
	}
	for i, h := range salesHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, boldStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		record := salesRecord(row)
		for i, value := range record {
			col, _ := excelize.ColumnNumberToName(i + 1)
			cell := fmt.Sprintf("%s%d", col, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
