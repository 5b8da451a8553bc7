package utils

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"server/internal/apperrors"
	. "server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "canonical date passes through", input: "2024-01-15", expected: "2024-01-15"},
		{name: "legacy dotted date converted", input: "15.01.2024", expected: "2024-01-15"},
		{name: "empty stays empty", input: "", expected: ""},
		{name: "garbage rejected", input: "15/01/2024", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizeDate(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDecodeCSV_RoundTrip(t *testing.T) {
	guarantee := 300.0
	issuedFor := 90
	corridor := 180
	original := []VisaStat{
		{
			City:                  "Москва",
			VisaApplicationDate:   "2024-01-01",
			VisaIssueDate:         "2024-01-11",
			WaitingDays:           10,
			TravelPurpose:         "туризм",
			PlannedTravelDate:     "2024-03-01",
			AdditionalDocRequest:  true,
			TicketsPurchased:      true,
			HotelsPurchased:       false,
			EmploymentCertificate: "ИП",
			FinancialGuarantee:    &guarantee,
			Comments:              "быстро; без вопросов",
			VisaCenter:            "VMS",
			VisaStatus:            VisaStatusIssued,
			VisaIssuedForDays:     &issuedFor,
			CorridorDays:          &corridor,
			PastVisasTrips:        "шенген 2019",
			Consul:                "",
			PlannedStayInCountry:  "2 недели",
		},
		{
			City:                "Казань",
			VisaApplicationDate: "2024-02-05",
			VisaIssueDate:       "2024-03-01",
			WaitingDays:         25,
			VisaCenter:          "Альмавива",
			VisaStatus:          VisaStatusRefused,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, original))

	decoded, err := DecodeCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeCSV_BOMDamagedCityHeader(t *testing.T) {
	input := "\ufeffcity;visa_application_date;visa_issue_date;waiting_days;visa_center;visa_status\n" +
		"Москва;2024-01-01;2024-01-11;10;VMS;1\n"

	stats, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Москва", stats[0].City)
	assert.Equal(t, 10, stats[0].WaitingDays)
}

func TestDecodeCSV_EmptyFinancialGuaranteeIsNil(t *testing.T) {
	input := "city;visa_application_date;visa_issue_date;waiting_days;financial_guarantee;visa_status\n" +
		"Москва;2024-01-01;2024-01-11;10;;1\n"

	stats, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Nil(t, stats[0].FinancialGuarantee)
}

func TestDecodeCSV_BooleansAreCaseInsensitive(t *testing.T) {
	input := "city;visa_application_date;visa_issue_date;waiting_days;additional_doc_request;tickets_purchased;hotels_purchased\n" +
		"Москва;2024-01-01;2024-01-11;10;TRUE;True;yes\n"

	stats, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.True(t, stats[0].AdditionalDocRequest)
	assert.True(t, stats[0].TicketsPurchased)
	assert.False(t, stats[0].HotelsPurchased, `anything but "true" is false`)
}

func TestDecodeCSV_LegacyDottedDatesNormalized(t *testing.T) {
	input := "city;visa_application_date;visa_issue_date;waiting_days\n" +
		"Москва;01.02.2024;20.02.2024;19\n"

	stats, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "2024-02-01", stats[0].VisaApplicationDate)
	assert.Equal(t, "2024-02-20", stats[0].VisaIssueDate)
}

func TestDecodeCSV_LegacyCountryColumnName(t *testing.T) {
	input := "city;visa_application_date;visa_issue_date;waiting_days;planned_stay_in_italy\n" +
		"Москва;2024-01-01;2024-01-11;10;две недели\n"

	stats, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "две недели", stats[0].PlannedStayInCountry)
}

func TestDecodeCSV_MalformedRowFailsWholeDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name: "bad waiting_days",
			input: "city;visa_application_date;visa_issue_date;waiting_days\n" +
				"Москва;2024-01-01;2024-01-11;ten\n",
		},
		{
			name: "bad date",
			input: "city;visa_application_date;visa_issue_date;waiting_days\n" +
				"Москва;not-a-date;2024-01-11;10\n",
		},
		{
			name: "bad financial_guarantee",
			input: "city;visa_application_date;visa_issue_date;waiting_days;financial_guarantee\n" +
				"Москва;2024-01-01;2024-01-11;10;много\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := DecodeCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrParse))
			assert.Nil(t, stats)
		})
	}
}

func TestEncodeCSV_HeaderOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, nil))

	header := strings.TrimSpace(strings.Split(buf.String(), "\n")[0])
	assert.Equal(t, strings.Join(CSVColumns, ";"), header)
}
