package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/mfk4us/bocc-client-panel/internal/models"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

// ExportHeader is the fixed column order shared by all three encoders.
var ExportHeader = []string{"email", "role", "workflow_name", "phone_number", "business_name", "customer_name", "status"}

// ExportFile is one encoded download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportService interface {
	Encode(format string, profiles []models.Profile) (*ExportFile, error)
	Archive(ctx context.Context, file *ExportFile) string
}

type exportService struct {
	storage StorageService
	bucket  string
	archive bool
}

func NewExportService(storage StorageService, bucket string, archive bool) ExportService {
	return &exportService{storage: storage, bucket: bucket, archive: archive}
}

func exportRow(p models.Profile) []string {
	return []string{p.Email, p.Role, p.WorkflowName, p.PhoneNumber, p.BusinessName, p.CustomerName, p.Status}
}

// Encode renders the given subset in the requested format. Each call derives
// its rows from scratch; formats share no buffer.
func (s *exportService) Encode(format string, profiles []models.Profile) (*ExportFile, error) {
	stamp := time.Now().Format("20060102-150405")
	switch format {
	case ExportFormatCSV:
		return &ExportFile{
			Name:        fmt.Sprintf("tenants-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        encodeCSV(profiles),
		}, nil
	case ExportFormatXLSX:
		data, err := encodeXLSX(profiles)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Name:        fmt.Sprintf("tenants-%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case ExportFormatPDF:
		data, err := encodePDF(profiles)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Name:        fmt.Sprintf("tenants-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// archiveLinkTTL bounds how long an archived copy stays fetchable by link.
const archiveLinkTTL = 24 * time.Hour

// Archive stores a copy of the export in object storage and returns a
// presigned link to it. Failures are logged, never surfaced: the caller
// already holds the file, so an empty link just means no archived copy.
func (s *exportService) Archive(ctx context.Context, file *ExportFile) string {
	if !s.archive || s.storage == nil {
		return ""
	}
	if err := s.storage.EnsureBucketExists(ctx, s.bucket); err != nil {
		log.Printf("export archive: bucket check failed: %v", err)
		return ""
	}
	if err := s.storage.Upload(ctx, s.bucket, file.Name, file.Data, file.ContentType); err != nil {
		log.Printf("export archive: upload of %s failed: %v", file.Name, err)
		return ""
	}
	url, err := s.storage.GetPresignedURL(s.bucket, file.Name, archiveLinkTTL)
	if err != nil {
		log.Printf("export archive: presign of %s failed: %v", file.Name, err)
		return ""
	}
	return url
}

// quoteField wraps a value in double quotes, doubling internal quotes. Every
// field is quoted unconditionally; the download format requires it even for
// values without separators.
func quoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func encodeCSV(profiles []models.Profile) []byte {
	var b strings.Builder

	writeLine := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteField(f))
		}
		b.WriteByte('\n')
	}

	writeLine(ExportHeader)
	for _, p := range profiles {
		writeLine(exportRow(p))
	}
	return []byte(b.String())
}

func encodeXLSX(profiles []models.Profile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Tenants"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, h := range ExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, p := range profiles {
		for col, v := range exportRow(p) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func encodePDF(profiles []models.Profile) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(33, 37, 41)
	pdf.Cell(0, 10, "Tenant Export")
	pdf.Ln(12)

	colWidths := []float64{60, 22, 45, 35, 45, 45, 20}

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(240, 240, 240)
		for i, h := range ExportHeader {
			pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		pdf.SetFillColor(255, 255, 255)
	}

	writeHeader()
	_, pageHeight := pdf.GetPageSize()
	for _, p := range profiles {
		// Repeat the header when a row would spill onto a fresh page
		if pdf.GetY()+8 > pageHeight-15 {
			pdf.AddPage()
			writeHeader()
		}
		for i, v := range exportRow(p) {
			pdf.CellFormat(colWidths[i], 8, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
