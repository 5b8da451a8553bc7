// Package utils implements the flat-file adapters: semicolon-delimited CSV
// encoding and decoding of visa-stat records, plus date normalization.
package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"server/internal/apperrors"
	. "server/internal/models"
)

// Delimiter of the flat-file format, matching the historical backups.
const csvDelimiter = ';'

// DecodeCSV parses a whole semicolon-delimited export into records.
// The first row is the header. Any malformed row aborts the decode with
// apperrors.ErrParse; callers replace the store only after the entire file
// parsed, so a bad file never partially commits.
//
// Quirks carried over from the historical files:
//   - the first column is treated as city whenever its header merely
//     contains "city" (old exports ship a BOM-damaged header);
//   - booleans compare case-insensitively against "true";
//   - empty optional numerics decode to nil, never an error.
func DecodeCSV(r io.Reader) ([]VisaStat, error) {
	reader := csv.NewReader(r)
	reader.Comma = csvDelimiter

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", apperrors.ErrParse, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[normalizeHeader(name)] = i
	}

	var stats []VisaStat
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrParse, line, err)
		}

		stat, err := decodeRow(row, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrParse, line, err)
		}
		stats = append(stats, stat)
	}

	return stats, nil
}

// EncodeCSV writes records in CSVColumns order with a header row.
// The store-assigned id is deliberately excluded: re-importing a backup
// assigns fresh ids.
func EncodeCSV(w io.Writer, stats []VisaStat) error {
	writer := csv.NewWriter(w)
	writer.Comma = csvDelimiter

	if err := writer.Write(CSVColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, stat := range stats {
		if err := writer.Write(encodeRow(stat)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	if strings.Contains(name, "city") {
		return "city"
	}
	// Old backups used the country-specific column name.
	if name == "planned_stay_in_italy" {
		return "planned_stay_in_country"
	}
	return name
}

func decodeRow(row []string, columns map[string]int) (VisaStat, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	applicationDate, err := NormalizeDate(field("visa_application_date"))
	if err != nil {
		return VisaStat{}, fmt.Errorf("visa_application_date: %v", err)
	}
	issueDate, err := NormalizeDate(field("visa_issue_date"))
	if err != nil {
		return VisaStat{}, fmt.Errorf("visa_issue_date: %v", err)
	}
	plannedTravelDate, err := NormalizeDate(field("planned_travel_date"))
	if err != nil {
		return VisaStat{}, fmt.Errorf("planned_travel_date: %v", err)
	}

	waitingDays, err := strconv.Atoi(field("waiting_days"))
	if err != nil {
		return VisaStat{}, fmt.Errorf("waiting_days: %v", err)
	}

	financialGuarantee, err := optionalFloat(field("financial_guarantee"))
	if err != nil {
		return VisaStat{}, fmt.Errorf("financial_guarantee: %v", err)
	}
	visaIssuedForDays, err := optionalInt(field("visa_issued_for_days"))
	if err != nil {
		return VisaStat{}, fmt.Errorf("visa_issued_for_days: %v", err)
	}
	corridorDays, err := optionalInt(field("corridor_days"))
	if err != nil {
		return VisaStat{}, fmt.Errorf("corridor_days: %v", err)
	}

	return VisaStat{
		City:                  field("city"),
		VisaApplicationDate:   applicationDate,
		VisaIssueDate:         issueDate,
		WaitingDays:           waitingDays,
		TravelPurpose:         field("travel_purpose"),
		PlannedTravelDate:     plannedTravelDate,
		AdditionalDocRequest:  parseBool(field("additional_doc_request")),
		TicketsPurchased:      parseBool(field("tickets_purchased")),
		HotelsPurchased:       parseBool(field("hotels_purchased")),
		EmploymentCertificate: field("employment_certificate"),
		FinancialGuarantee:    financialGuarantee,
		Comments:              field("comments"),
		VisaCenter:            field("visa_center"),
		VisaStatus:            field("visa_status"),
		VisaIssuedForDays:     visaIssuedForDays,
		CorridorDays:          corridorDays,
		PastVisasTrips:        field("past_visas_trips"),
		Consul:                field("consul"),
		PlannedStayInCountry:  field("planned_stay_in_country"),
	}, nil
}

func encodeRow(stat VisaStat) []string {
	return []string{
		stat.City,
		stat.VisaApplicationDate,
		stat.VisaIssueDate,
		strconv.Itoa(stat.WaitingDays),
		stat.TravelPurpose,
		stat.PlannedTravelDate,
		formatBool(stat.AdditionalDocRequest),
		formatBool(stat.TicketsPurchased),
		formatBool(stat.HotelsPurchased),
		stat.EmploymentCertificate,
		formatOptionalFloat(stat.FinancialGuarantee),
		stat.Comments,
		stat.VisaCenter,
		stat.VisaStatus,
		formatOptionalInt(stat.VisaIssuedForDays),
		formatOptionalInt(stat.CorridorDays),
		stat.PastVisasTrips,
		stat.Consul,
		stat.PlannedStayInCountry,
	}
}

func parseBool(value string) bool {
	return strings.EqualFold(value, "true")
}

func formatBool(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

func optionalFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func optionalInt(value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func formatOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
