// Aggregation over visa-stat records. Everything here is a pure function of
// (records, filter) with no hidden state, so the same input always renders
// the same dashboard numbers.
package services

import (
	"sort"
	"time"

	. "server/internal/models"
)

// Time-window filter values as they arrive from the dashboard.
const (
	PeriodAll       = "all"
	PeriodLastMonth = "1month"
	PeriodSixMonths = "6months"
)

const lastWaitedCount = 10

// StatsFilter restricts a record set. Zero-value fields mean no restriction;
// active predicates combine with AND. The period window is evaluated against
// visa_issue_date.
type StatsFilter struct {
	City       string `json:"city"`
	VisaCenter string `json:"visa_center"`
	Period     string `json:"period"`
}

// Summary are the headline numbers over waiting_days. All zeros (and an
// empty LastTen) on empty input.
type Summary struct {
	AverageWaitingDays float64 `json:"average_waiting_days"`
	MaxWaitingDays     int     `json:"max_waiting_days"`
	MinWaitingDays     int     `json:"min_waiting_days"`
	LastTenWaitingDays []int   `json:"last_ten_waiting_days"`
	TotalRecords       int     `json:"total_records"`
}

// SeriesPoint is one date bucket of the waiting-time chart.
type SeriesPoint struct {
	Date               string  `json:"date"`
	AverageWaitingDays float64 `json:"average_waiting_days"`
}

// Filter returns the subset of stats matching every active predicate.
// Period filtering drops records whose issue date does not parse, since they
// cannot be placed inside or outside the window.
func Filter(stats []VisaStat, filter StatsFilter, now time.Time) []VisaStat {
	filtered := make([]VisaStat, 0, len(stats))

	var cutoff time.Time
	switch filter.Period {
	case PeriodLastMonth:
		cutoff = now.AddDate(0, -1, 0)
	case PeriodSixMonths:
		cutoff = now.AddDate(0, -6, 0)
	}

	for _, stat := range stats {
		if filter.City != "" && stat.City != filter.City {
			continue
		}
		if filter.VisaCenter != "" && stat.VisaCenter != filter.VisaCenter {
			continue
		}
		if !cutoff.IsZero() {
			issueDate, err := time.Parse(DateFormat, stat.VisaIssueDate)
			if err != nil || issueDate.Before(cutoff) {
				continue
			}
		}
		filtered = append(filtered, stat)
	}

	return filtered
}

// Summarize computes mean, max and min waiting days plus the waiting times
// of the last ten submissions in input order.
func Summarize(stats []VisaStat) Summary {
	summary := Summary{
		LastTenWaitingDays: []int{},
		TotalRecords:       len(stats),
	}

	if len(stats) == 0 {
		return summary
	}

	total := 0
	summary.MaxWaitingDays = stats[0].WaitingDays
	summary.MinWaitingDays = stats[0].WaitingDays
	for _, stat := range stats {
		total += stat.WaitingDays
		if stat.WaitingDays > summary.MaxWaitingDays {
			summary.MaxWaitingDays = stat.WaitingDays
		}
		if stat.WaitingDays < summary.MinWaitingDays {
			summary.MinWaitingDays = stat.WaitingDays
		}
	}
	summary.AverageWaitingDays = float64(total) / float64(len(stats))

	start := len(stats) - lastWaitedCount
	if start < 0 {
		start = 0
	}
	for _, stat := range stats[start:] {
		summary.LastTenWaitingDays = append(summary.LastTenWaitingDays, stat.WaitingDays)
	}

	return summary
}

// SeriesByDate groups records by visa_application_date and averages
// waiting_days per group, sorted ascending. Canonical-format dates sort
// lexicographically, so no parsing is needed for ordering.
func SeriesByDate(stats []VisaStat) []SeriesPoint {
	type bucket struct {
		total int
		count int
	}
	buckets := make(map[string]*bucket)

	for _, stat := range stats {
		b, ok := buckets[stat.VisaApplicationDate]
		if !ok {
			b = &bucket{}
			buckets[stat.VisaApplicationDate] = b
		}
		b.total += stat.WaitingDays
		b.count++
	}

	series := make([]SeriesPoint, 0, len(buckets))
	for date, b := range buckets {
		series = append(series, SeriesPoint{
			Date:               date,
			AverageWaitingDays: float64(b.total) / float64(b.count),
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series
}
