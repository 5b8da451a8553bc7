package services

import (
	"bytes"
	"fmt"
	"time"

	"server/internal/apperrors"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Visa Stats"

// ExportService renders the full record set as a single-sheet XLSX workbook.
// The workbook is built on demand for every request; there is no stored
// snapshot to go stale.
type ExportService struct {
	countryLabel string
	log          logger.Logger
}

func NewExportService(countryLabel string) *ExportService {
	return &ExportService{
		countryLabel: countryLabel,
		log:          logger.New("exportService"),
	}
}

// Filename suggests a download name embedding the given date, prefixed with
// the configured country label when one is set.
func (s *ExportService) Filename(now time.Time) string {
	name := fmt.Sprintf("visa_statistics_%s.xlsx", now.Format(DateFormat))
	if s.countryLabel != "" {
		name = s.countryLabel + "_" + name
	}
	return name
}

// GenerateWorkbook serializes the records into an XLSX document.
// The header row is ExportColumns; every record becomes one row in input
// order. Failures wrap apperrors.ErrExport.
func (s *ExportService) GenerateWorkbook(stats []VisaStat) (*bytes.Buffer, error) {
	log := s.log.Function("GenerateWorkbook")

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		log.Er("failed to create sheet", err)
		return nil, fmt.Errorf("%w: create sheet: %v", apperrors.ErrExport, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		log.Warn("failed to drop default sheet", "error", err)
	}

	for i, header := range ExportColumns() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: header cell: %v", apperrors.ErrExport, err)
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("%w: write header: %v", apperrors.ErrExport, err)
		}
	}

	for rowIdx, stat := range stats {
		for colIdx, value := range exportRowValues(stat) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("%w: data cell: %v", apperrors.ErrExport, err)
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("%w: write row: %v", apperrors.ErrExport, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Er("failed to serialize workbook", err)
		return nil, fmt.Errorf("%w: serialize workbook: %v", apperrors.ErrExport, err)
	}

	log.Info("generated export workbook", "records", len(stats))
	return buf, nil
}

// exportRowValues flattens one record in ExportColumns order. Absent optional
// numerics become empty cells, mirroring the CSV encoding.
func exportRowValues(stat VisaStat) []any {
	values := []any{
		stat.ID,
		stat.City,
		stat.VisaApplicationDate,
		stat.VisaIssueDate,
		stat.WaitingDays,
		stat.TravelPurpose,
		stat.PlannedTravelDate,
		stat.AdditionalDocRequest,
		stat.TicketsPurchased,
		stat.HotelsPurchased,
		stat.EmploymentCertificate,
	}

	if stat.FinancialGuarantee != nil {
		values = append(values, *stat.FinancialGuarantee)
	} else {
		values = append(values, "")
	}

	values = append(values, stat.Comments, stat.VisaCenter, stat.VisaStatus)

	if stat.VisaIssuedForDays != nil {
		values = append(values, *stat.VisaIssuedForDays)
	} else {
		values = append(values, "")
	}
	if stat.CorridorDays != nil {
		values = append(values, *stat.CorridorDays)
	} else {
		values = append(values, "")
	}

	return append(values, stat.PastVisasTrips, stat.Consul, stat.PlannedStayInCountry)
}
