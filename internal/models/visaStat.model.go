package models

// DateFormat is the canonical wire and storage format for every date in the
// system. Legacy dotted dates (02.01.2006) are accepted only at the bulk
// import boundary and normalized there.
const DateFormat = "2006-01-02"

// Visa status values as they travel over the wire.
const (
	VisaStatusIssued  = "1"
	VisaStatusRefused = "0"
)

// Cities is the fixed set offered by the submission form.
var Cities = []string{
	"Москва",
	"Краснодар",
	"Екатеринбург",
	"Нижний Новгород",
	"Ростов-на-Дону",
	"Новосибирск",
	"Казань",
	"Самара",
	"Санкт-Петербург",
}

// VisaCenters is the fixed set offered by the submission form.
var VisaCenters = []string{"VMS", "Альмавива"}

// VisaStat is one crowdsourced visa-application experience.
// Dates are stored as canonical-format TEXT; the schema mirrors
// migrations/0001_create_visa_stats.sql.
type VisaStat struct {
	ID                    int      `gorm:"primaryKey;autoIncrement"  json:"id"`
	City                  string   `gorm:"type:text"                 json:"city"`
	VisaApplicationDate   string   `gorm:"type:text"                 json:"visa_application_date"`
	VisaIssueDate         string   `gorm:"type:text"                 json:"visa_issue_date"`
	WaitingDays           int      `gorm:"type:integer"              json:"waiting_days"` // derived, never client-supplied
	TravelPurpose         string   `gorm:"type:text"                 json:"travel_purpose"`
	PlannedTravelDate     string   `gorm:"type:text"                 json:"planned_travel_date"`
	AdditionalDocRequest  bool     `gorm:"type:boolean"              json:"additional_doc_request"`
	TicketsPurchased      bool     `gorm:"type:boolean"              json:"tickets_purchased"`
	HotelsPurchased       bool     `gorm:"type:boolean"              json:"hotels_purchased"`
	EmploymentCertificate string   `gorm:"type:text"                 json:"employment_certificate"`
	FinancialGuarantee    *float64 `gorm:"type:real"                 json:"financial_guarantee"`
	Comments              string   `gorm:"type:text"                 json:"comments"`
	VisaCenter            string   `gorm:"type:text"                 json:"visa_center"`
	VisaStatus            string   `gorm:"type:text"                 json:"visa_status"` // "1" issued, "0" refused
	VisaIssuedForDays     *int     `gorm:"type:integer"              json:"visa_issued_for_days"`
	CorridorDays          *int     `gorm:"type:integer"              json:"corridor_days"`
	PastVisasTrips        string   `gorm:"type:text"                 json:"past_visas_trips"`
	Consul                string   `gorm:"type:text"                 json:"consul"`
	PlannedStayInCountry  string   `gorm:"type:text"                 json:"planned_stay_in_country"`
}

func (VisaStat) TableName() string {
	return "visa_stats"
}

// CSVColumns is the single source of truth for the flat-file field order.
// The CSV backup header, the bulk importer's positional mapping, and the
// XLSX sheet (prefixed with id) are all derived from it.
var CSVColumns = []string{
	"city",
	"visa_application_date",
	"visa_issue_date",
	"waiting_days",
	"travel_purpose",
	"planned_travel_date",
	"additional_doc_request",
	"tickets_purchased",
	"hotels_purchased",
	"employment_certificate",
	"financial_guarantee",
	"comments",
	"visa_center",
	"visa_status",
	"visa_issued_for_days",
	"corridor_days",
	"past_visas_trips",
	"consul",
	"planned_stay_in_country",
}

// ExportColumns is the XLSX header: the store-assigned id followed by the
// flat-file columns.
func ExportColumns() []string {
	return append([]string{"id"}, CSVColumns...)
}

// SubmitVisaStatRequest carries every user-supplied field of a submission.
// id and waiting_days are intentionally absent: the store assigns the first,
// the controller derives the second.
type SubmitVisaStatRequest struct {
	City                  string   `json:"city"`
	VisaApplicationDate   string   `json:"visa_application_date"`
	VisaIssueDate         string   `json:"visa_issue_date"`
	TravelPurpose         string   `json:"travel_purpose"`
	PlannedTravelDate     string   `json:"planned_travel_date"`
	AdditionalDocRequest  bool     `json:"additional_doc_request"`
	TicketsPurchased      bool     `json:"tickets_purchased"`
	HotelsPurchased       bool     `json:"hotels_purchased"`
	EmploymentCertificate string   `json:"employment_certificate"`
	FinancialGuarantee    *float64 `json:"financial_guarantee"`
	Comments              string   `json:"comments"`
	VisaCenter            string   `json:"visa_center"`
	VisaStatus            string   `json:"visa_status"`
	VisaIssuedForDays     *int     `json:"visa_issued_for_days"`
	CorridorDays          *int     `json:"corridor_days"`
	PastVisasTrips        string   `json:"past_visas_trips"`
	Consul                string   `json:"consul"`
	PlannedStayInCountry  string   `json:"planned_stay_in_country"`
}
