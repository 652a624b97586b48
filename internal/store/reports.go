package store

import (
	"context"
	"sync"

	"tally/internal/api"
	"tally/internal/cache"
	"tally/internal/core"
	"tally/internal/log"
)

// Reports memoizes monthly reports per year-month key. Entries never expire;
// they live until ClearCache. Unlike the entity stores, fetch errors
// propagate unmodified: callers need to tell "no data yet" from "fetch
// failed", and nothing is cached on failure.
type Reports struct {
	client *api.Client
	logger *log.Logger

	months *cache.Memo[core.MonthlyReport]
	totals *cache.Memo[core.MonthlyTotals]

	mu      sync.Mutex
	loading bool
}

func NewReports(client *api.Client, logger *log.Logger) *Reports {
	return &Reports{
		client: client,
		logger: logger.WithComponent(log.ComponentStore).With(log.FieldStore, "reports"),
		months: cache.NewMemo[core.MonthlyReport](),
		totals: cache.NewMemo[core.MonthlyTotals](),
	}
}

// Loading reports whether a fetch is in flight.
func (s *Reports) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// FetchMonth returns the report for a year-month key like "2024-01", from
// cache when present, otherwise from the server (and then caches it).
func (s *Reports) FetchMonth(ctx context.Context, yearMonth string) (core.MonthlyReport, error) {
	if cached, ok := s.months.Get(yearMonth); ok {
		return cached, nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	data, err := s.client.Get(ctx, "/reports/monthly/"+yearMonth, nil)
	if err != nil {
		return core.MonthlyReport{}, err
	}
	raw, err := decodePayload(data)
	if err != nil {
		return core.MonthlyReport{}, err
	}

	report := core.NormalizeMonthlyReport(raw)
	if report.Month == "" {
		report.Month = yearMonth
	}
	s.months.Put(yearMonth, report)
	s.logger.Debug("cached monthly report", log.FieldMonth, yearMonth)
	return report, nil
}

// FetchMonthTotals returns the totals-only report for a year-month key,
// memoized like FetchMonth.
func (s *Reports) FetchMonthTotals(ctx context.Context, yearMonth string) (core.MonthlyTotals, error) {
	if cached, ok := s.totals.Get(yearMonth); ok {
		return cached, nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	data, err := s.client.Get(ctx, "/reports/monthly/"+yearMonth+"/totals", nil)
	if err != nil {
		return core.MonthlyTotals{}, err
	}
	raw, err := decodePayload(data)
	if err != nil {
		return core.MonthlyTotals{}, err
	}

	totals := core.NormalizeMonthlyTotals(raw)
	if totals.Month == "" {
		totals.Month = yearMonth
	}
	s.totals.Put(yearMonth, totals)
	return totals, nil
}

// ClearCache empties both report caches.
func (s *Reports) ClearCache() {
	s.months.Clear()
	s.totals.Clear()
}

func (s *Reports) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
