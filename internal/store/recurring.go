package store

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"tally/internal/api"
	"tally/internal/core"
	"tally/internal/log"
)

// RecurringInput is the payload for creating a recurring rule.
type RecurringInput struct {
	Amount       string         `json:"amount"`
	Description  string         `json:"description"`
	Frequency    core.Frequency `json:"frequency"`
	IntervalN    int64          `json:"interval_n"`
	FirstDueDate string         `json:"first_due_date"`
	EndDate      string         `json:"end_date,omitempty"`
	TagIDs       []int64        `json:"tag_ids"`
}

// Recurring owns the in-memory recurring-rule collection.
type Recurring struct {
	client *api.Client
	logger *log.Logger

	mu      sync.Mutex
	list    []core.RecurringRule
	loading bool
}

func NewRecurring(client *api.Client, logger *log.Logger) *Recurring {
	return &Recurring{
		client: client,
		logger: logger.WithComponent(log.ComponentStore).With(log.FieldStore, "recurring"),
		list:   []core.RecurringRule{},
	}
}

// List returns a copy of the current collection in server order.
func (s *Recurring) List() []core.RecurringRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.RecurringRule(nil), s.list...)
}

// Loading reports whether a fetch is in flight.
func (s *Recurring) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Fetch replaces the list from the server. Failures are swallowed: the list
// resets to empty and the error is only logged.
func (s *Recurring) Fetch(ctx context.Context) {
	s.fetch(ctx, "/recurring", nil)
}

// FetchActive fetches only rules the server reports as active.
func (s *Recurring) FetchActive(ctx context.Context) {
	q := url.Values{}
	q.Set("active", "true")
	s.fetch(ctx, "/recurring", q)
}

// FetchDue fetches rules due on or before the given date. A zero date means
// today and sends no parameter.
func (s *Recurring) FetchDue(ctx context.Context, date time.Time) {
	var q url.Values
	if !date.IsZero() {
		q = url.Values{}
		q.Set("date", date.Format("2006-01-02"))
	}
	s.fetch(ctx, "/recurring/due", q)
}

func (s *Recurring) fetch(ctx context.Context, path string, q url.Values) {
	s.setLoading(true)
	defer s.setLoading(false)

	data, err := s.client.Get(ctx, path, q)
	if err != nil {
		s.logger.Error("fetch recurring rules", log.FieldError, err)
		s.setList(nil)
		return
	}
	raw, err := decodePayload(data)
	if err != nil {
		s.logger.Error("fetch recurring rules", log.FieldError, err)
		s.setList(nil)
		return
	}
	s.setList(core.NormalizeRecurrings(raw))
}

// Add creates a rule and re-syncs the list. Failures propagate; the list is
// left unchanged.
func (s *Recurring) Add(ctx context.Context, input RecurringInput) (core.RecurringRule, error) {
	data, err := s.client.Post(ctx, "/recurring", input)
	if err != nil {
		return core.RecurringRule{}, err
	}
	raw, err := decodePayload(data)
	if err != nil {
		return core.RecurringRule{}, err
	}
	created := core.NormalizeRecurring(core.UnwrapEntity(raw))
	s.Fetch(ctx)
	return created, nil
}

// Update sends the changed fields for a rule and re-syncs the list.
func (s *Recurring) Update(ctx context.Context, id int64, partial map[string]any) (core.RecurringRule, error) {
	data, err := s.client.Put(ctx, fmt.Sprintf("/recurring/%d", id), partial)
	if err != nil {
		return core.RecurringRule{}, err
	}
	raw, err := decodePayload(data)
	if err != nil {
		return core.RecurringRule{}, err
	}
	updated := core.NormalizeRecurring(core.UnwrapEntity(raw))
	s.Fetch(ctx)
	return updated, nil
}

// SetActive flips a rule's active flag via a partial update and re-syncs.
func (s *Recurring) SetActive(ctx context.Context, id int64, active bool) error {
	body := map[string]any{"active": active}
	if _, err := s.client.Patch(ctx, fmt.Sprintf("/recurring/%d", id), body); err != nil {
		return err
	}
	s.Fetch(ctx)
	return nil
}

// Toggle inverts the active flag of a rule in the local list. An id not in
// local state is a no-op.
func (s *Recurring) Toggle(ctx context.Context, id int64) error {
	rule, ok := s.find(id)
	if !ok {
		return nil
	}
	return s.SetActive(ctx, id, !rule.Active)
}

func (s *Recurring) find(id int64) (core.RecurringRule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.list {
		if r.ID == id {
			return r, true
		}
	}
	return core.RecurringRule{}, false
}

func (s *Recurring) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Recurring) setList(list []core.RecurringRule) {
	if list == nil {
		list = []core.RecurringRule{}
	}
	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
}
