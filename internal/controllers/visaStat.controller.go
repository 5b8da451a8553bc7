package controllers

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"server/internal/apperrors"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
)

// WSManager pushes live updates to connected dashboard clients. Declared
// here to avoid an import cycle with the websockets package.
type WSManager interface {
	SendStatsUpdate(stat *VisaStat)
}

// StatsResponse is the payload of the summary endpoint: headline numbers
// plus the chart series for the filtered subset.
type StatsResponse struct {
	Summary services.Summary       `json:"summary"`
	Series  []services.SeriesPoint `json:"series"`
}

type VisaStatController struct {
	visaStatRepo  repositories.VisaStatRepository
	exportService *services.ExportService
	wsManager     WSManager
	log           logger.Logger
}

func NewVisaStatController(
	visaStatRepo repositories.VisaStatRepository,
	exportService *services.ExportService,
	wsManager WSManager,
) *VisaStatController {
	return &VisaStatController{
		visaStatRepo:  visaStatRepo,
		exportService: exportService,
		wsManager:     wsManager,
		log:           logger.New("visaStatController"),
	}
}

// Submit derives waiting_days from the two dates, persists the record and
// returns it with the store-assigned id. The derivation is not bounds
// checked: an issue date before the application date yields a negative
// waiting time and is stored as-is.
func (c *VisaStatController) Submit(ctx context.Context, req *SubmitVisaStatRequest) (*VisaStat, error) {
	log := c.log.Function("Submit")

	applicationDate, err := time.Parse(DateFormat, req.VisaApplicationDate)
	if err != nil {
		log.Er("failed to parse visa_application_date", err, "value", req.VisaApplicationDate)
		return nil, fmt.Errorf("%w: visa_application_date: %v", apperrors.ErrValidation, err)
	}

	issueDate, err := time.Parse(DateFormat, req.VisaIssueDate)
	if err != nil {
		log.Er("failed to parse visa_issue_date", err, "value", req.VisaIssueDate)
		return nil, fmt.Errorf("%w: visa_issue_date: %v", apperrors.ErrValidation, err)
	}

	plannedTravelDate := req.PlannedTravelDate
	if plannedTravelDate != "" {
		if _, err := time.Parse(DateFormat, plannedTravelDate); err != nil {
			log.Er("failed to parse planned_travel_date", err, "value", plannedTravelDate)
			return nil, fmt.Errorf("%w: planned_travel_date: %v", apperrors.ErrValidation, err)
		}
	}

	stat := &VisaStat{
		City:                  req.City,
		VisaApplicationDate:   applicationDate.Format(DateFormat),
		VisaIssueDate:         issueDate.Format(DateFormat),
		WaitingDays:           waitingDays(applicationDate, issueDate),
		TravelPurpose:         req.TravelPurpose,
		PlannedTravelDate:     plannedTravelDate,
		AdditionalDocRequest:  req.AdditionalDocRequest,
		TicketsPurchased:      req.TicketsPurchased,
		HotelsPurchased:       req.HotelsPurchased,
		EmploymentCertificate: req.EmploymentCertificate,
		FinancialGuarantee:    req.FinancialGuarantee,
		Comments:              req.Comments,
		VisaCenter:            req.VisaCenter,
		VisaStatus:            req.VisaStatus,
		VisaIssuedForDays:     req.VisaIssuedForDays,
		CorridorDays:          req.CorridorDays,
		PastVisasTrips:        req.PastVisasTrips,
		Consul:                req.Consul,
		PlannedStayInCountry:  req.PlannedStayInCountry,
	}

	if err := c.visaStatRepo.Create(ctx, stat); err != nil {
		return nil, err
	}

	if c.wsManager != nil {
		c.wsManager.SendStatsUpdate(stat)
	}

	log.Info("visa stat submitted", "id", stat.ID, "waitingDays", stat.WaitingDays)
	return stat, nil
}

// GetAll returns every record in insertion order.
func (c *VisaStatController) GetAll(ctx context.Context) ([]VisaStat, error) {
	return c.visaStatRepo.GetAll(ctx)
}

// GetStats filters the record set and computes the dashboard aggregates.
func (c *VisaStatController) GetStats(ctx context.Context, filter services.StatsFilter) (*StatsResponse, error) {
	stats, err := c.visaStatRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := services.Filter(stats, filter, time.Now())
	return &StatsResponse{
		Summary: services.Summarize(filtered),
		Series:  services.SeriesByDate(filtered),
	}, nil
}

// Export builds the XLSX snapshot of the full record set on demand and
// returns it with its suggested filename. The boolean reports whether there
// was anything to export.
func (c *VisaStatController) Export(ctx context.Context) (*bytes.Buffer, string, bool, error) {
	stats, err := c.visaStatRepo.GetAll(ctx)
	if err != nil {
		return nil, "", false, err
	}

	if len(stats) == 0 {
		return nil, "", false, nil
	}

	buf, err := c.exportService.GenerateWorkbook(stats)
	if err != nil {
		return nil, "", false, err
	}

	return buf, c.exportService.Filename(time.Now()), true, nil
}

// waitingDays is ceil((issue - application) / 24h). With date-only inputs
// the difference is always whole days; the ceil matters only if a time
// component ever sneaks in.
func waitingDays(applicationDate, issueDate time.Time) int {
	return int(math.Ceil(issueDate.Sub(applicationDate).Hours() / 24))
}
