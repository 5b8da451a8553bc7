package controllers

import (
	"context"
	"errors"
	"testing"

	"server/internal/apperrors"
	. "server/internal/models"
	"server/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVisaStatRepo is an in-memory VisaStatRepository for controller tests.
type fakeVisaStatRepo struct {
	stats     []VisaStat
	createErr error
	getErr    error
}

func (f *fakeVisaStatRepo) Create(ctx context.Context, stat *VisaStat) error {
	if f.createErr != nil {
		return f.createErr
	}
	stat.ID = len(f.stats) + 1
	f.stats = append(f.stats, *stat)
	return nil
}

func (f *fakeVisaStatRepo) GetAll(ctx context.Context) ([]VisaStat, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.stats, nil
}

func (f *fakeVisaStatRepo) ReplaceAll(ctx context.Context, stats []VisaStat) error {
	f.stats = stats
	return nil
}

// recordingWSManager captures broadcast records.
type recordingWSManager struct {
	sent []*VisaStat
}

func (r *recordingWSManager) SendStatsUpdate(stat *VisaStat) {
	r.sent = append(r.sent, stat)
}

func newTestController(repo *fakeVisaStatRepo, ws WSManager) *VisaStatController {
	return NewVisaStatController(repo, services.NewExportService(""), ws)
}

func submitRequest(applicationDate, issueDate string) *SubmitVisaStatRequest {
	return &SubmitVisaStatRequest{
		City:                "Москва",
		VisaApplicationDate: applicationDate,
		VisaIssueDate:       issueDate,
		VisaCenter:          "VMS",
		VisaStatus:          VisaStatusIssued,
	}
}

func TestSubmit_DerivesWaitingDays(t *testing.T) {
	repo := &fakeVisaStatRepo{}
	controller := newTestController(repo, nil)

	stat, err := controller.Submit(context.Background(), submitRequest("2024-01-01", "2024-01-11"))
	require.NoError(t, err)

	assert.Equal(t, 10, stat.WaitingDays)
	assert.Equal(t, 1, stat.ID)
	require.Len(t, repo.stats, 1)
	assert.Equal(t, 10, repo.stats[0].WaitingDays)
}

func TestSubmit_NegativeWaitingDaysStoredAsIs(t *testing.T) {
	repo := &fakeVisaStatRepo{}
	controller := newTestController(repo, nil)

	// Issue date before application date: not rejected, stored negative.
	stat, err := controller.Submit(context.Background(), submitRequest("2024-01-11", "2024-01-01"))
	require.NoError(t, err)

	assert.Equal(t, -10, stat.WaitingDays)
	require.Len(t, repo.stats, 1)
	assert.Equal(t, -10, repo.stats[0].WaitingDays)
}

func TestSubmit_SameDayIsZero(t *testing.T) {
	repo := &fakeVisaStatRepo{}
	controller := newTestController(repo, nil)

	stat, err := controller.Submit(context.Background(), submitRequest("2024-01-11", "2024-01-11"))
	require.NoError(t, err)
	assert.Equal(t, 0, stat.WaitingDays)
}

func TestSubmit_UnparsableDates(t *testing.T) {
	tests := []struct {
		name            string
		applicationDate string
		issueDate       string
	}{
		{name: "bad application date", applicationDate: "11.01.2024", issueDate: "2024-01-20"},
		{name: "bad issue date", applicationDate: "2024-01-11", issueDate: "soon"},
		{name: "empty application date", applicationDate: "", issueDate: "2024-01-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeVisaStatRepo{}
			controller := newTestController(repo, nil)

			_, err := controller.Submit(context.Background(), submitRequest(tt.applicationDate, tt.issueDate))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			assert.Empty(t, repo.stats, "nothing persisted on validation failure")
		})
	}
}

func TestSubmit_StorageErrorSurfaces(t *testing.T) {
	repo := &fakeVisaStatRepo{createErr: apperrors.ErrStorage}
	controller := newTestController(repo, nil)

	_, err := controller.Submit(context.Background(), submitRequest("2024-01-01", "2024-01-11"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStorage))
}

func TestSubmit_BroadcastsToWebsocketClients(t *testing.T) {
	repo := &fakeVisaStatRepo{}
	ws := &recordingWSManager{}
	controller := newTestController(repo, ws)

	stat, err := controller.Submit(context.Background(), submitRequest("2024-01-01", "2024-01-11"))
	require.NoError(t, err)

	require.Len(t, ws.sent, 1)
	assert.Equal(t, stat, ws.sent[0])
}

func TestGetStats_AppliesFilter(t *testing.T) {
	repo := &fakeVisaStatRepo{stats: []VisaStat{
		{City: "Москва", VisaCenter: "VMS", VisaApplicationDate: "2024-01-01", VisaIssueDate: "2024-01-15", WaitingDays: 14},
		{City: "Казань", VisaCenter: "VMS", VisaApplicationDate: "2024-01-02", VisaIssueDate: "2024-01-20", WaitingDays: 18},
	}}
	controller := newTestController(repo, nil)

	response, err := controller.GetStats(context.Background(), services.StatsFilter{City: "Москва"})
	require.NoError(t, err)

	assert.Equal(t, 1, response.Summary.TotalRecords)
	assert.Equal(t, 14.0, response.Summary.AverageWaitingDays)
	require.Len(t, response.Series, 1)
	assert.Equal(t, "2024-01-01", response.Series[0].Date)
}

func TestExport_EmptyStore(t *testing.T) {
	repo := &fakeVisaStatRepo{}
	controller := newTestController(repo, nil)

	buf, filename, ok, err := controller.Export(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, buf)
	assert.Empty(t, filename)
}

func TestExport_GeneratesWorkbook(t *testing.T) {
	repo := &fakeVisaStatRepo{stats: []VisaStat{
		{ID: 1, City: "Москва", VisaApplicationDate: "2024-01-01", VisaIssueDate: "2024-01-11", WaitingDays: 10},
	}}
	controller := newTestController(repo, nil)

	buf, filename, ok, err := controller.Export(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, buf)
	assert.NotZero(t, buf.Len())
	assert.Contains(t, filename, "visa_statistics_")
	assert.Contains(t, filename, ".xlsx")
}
