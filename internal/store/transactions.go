package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"tally/internal/api"
	"tally/internal/core"
	"tally/internal/log"
)

// TagSource is the transaction store's read-only view of the tag collection,
// used to resolve tag_id references during normalization. An unfetched
// (empty) tag list is fine; resolution just finds no matches.
type TagSource interface {
	List() []core.Tag
}

// TransactionInput is the payload for creating a transaction.
type TransactionInput struct {
	Amount string  `json:"amount"`
	Note   string  `json:"note"`
	Date   string  `json:"t_date"`
	TagIDs []int64 `json:"tag_ids"`
}

// TransactionFilters is the mutable filter state FetchFiltered reuses across
// calls. From/To are YYYY-MM-DD dates applied server-side; TagIDs and Search
// are applied client-side after normalization.
type TransactionFilters struct {
	From   string
	To     string
	TagIDs []int64
	Search string
}

// Transactions owns the in-memory transaction collection.
type Transactions struct {
	client *api.Client
	tags   TagSource
	logger *log.Logger

	mu      sync.Mutex
	list    []core.Transaction
	loading bool
	filters TransactionFilters
}

func NewTransactions(client *api.Client, tags TagSource, logger *log.Logger) *Transactions {
	return &Transactions{
		client: client,
		tags:   tags,
		logger: logger.WithComponent(log.ComponentStore).With(log.FieldStore, "transactions"),
		list:   []core.Transaction{},
	}
}

// List returns a copy of the current collection in server order (or the
// client-filtered subset after FetchFiltered).
func (s *Transactions) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.list...)
}

// Loading reports whether a fetch is in flight.
func (s *Transactions) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetFilters replaces the stored filter state. It does not fetch; call
// FetchFiltered to apply.
func (s *Transactions) SetFilters(f TransactionFilters) {
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
}

// Filters returns the stored filter state.
func (s *Transactions) Filters() TransactionFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Fetch replaces the list from the server, unfiltered. Failures are
// swallowed: the list resets to empty and the error is only logged.
func (s *Transactions) Fetch(ctx context.Context) {
	s.fetch(ctx, TransactionFilters{})
}

// FetchFiltered fetches with the stored filters: the date range goes to the
// server as query parameters, tag membership and note search are applied
// locally to the normalized result.
func (s *Transactions) FetchFiltered(ctx context.Context) {
	s.fetch(ctx, s.Filters())
}

func (s *Transactions) fetch(ctx context.Context, f TransactionFilters) {
	s.setLoading(true)
	defer s.setLoading(false)

	q := url.Values{}
	if f.From != "" {
		q.Set("start_date", f.From)
	}
	if f.To != "" {
		q.Set("end_date", f.To)
	}

	data, err := s.client.Get(ctx, "/transactions", q)
	if err != nil {
		s.logger.Error("fetch transactions", log.FieldError, err)
		s.setList(nil)
		return
	}
	raw, err := decodePayload(data)
	if err != nil {
		s.logger.Error("fetch transactions", log.FieldError, err)
		s.setList(nil)
		return
	}

	list := core.NormalizeTransactions(raw, s.tags.List())
	s.setList(filterLocal(list, f))
}

// Add creates a transaction and re-syncs the list with the stored filters.
// Failures propagate; the list is left unchanged.
func (s *Transactions) Add(ctx context.Context, input TransactionInput) (core.Transaction, error) {
	data, err := s.client.Post(ctx, "/transactions", input)
	if err != nil {
		return core.Transaction{}, err
	}
	raw, err := decodePayload(data)
	if err != nil {
		return core.Transaction{}, err
	}
	created := core.NormalizeTransaction(core.UnwrapEntity(raw), s.tags.List())
	s.FetchFiltered(ctx)
	return created, nil
}

// Update applies a partial update and re-syncs the list.
func (s *Transactions) Update(ctx context.Context, id int64, partial map[string]any) (core.Transaction, error) {
	data, err := s.client.Patch(ctx, fmt.Sprintf("/transactions/%d", id), partial)
	if err != nil {
		return core.Transaction{}, err
	}
	raw, err := decodePayload(data)
	if err != nil {
		return core.Transaction{}, err
	}
	updated := core.NormalizeTransaction(core.UnwrapEntity(raw), s.tags.List())
	s.FetchFiltered(ctx)
	return updated, nil
}

// Remove deletes a transaction and re-syncs the list. Failures propagate;
// the list is left unchanged.
func (s *Transactions) Remove(ctx context.Context, id int64) error {
	if _, err := s.client.Delete(ctx, fmt.Sprintf("/transactions/%d", id)); err != nil {
		return err
	}
	s.FetchFiltered(ctx)
	return nil
}

// filterLocal applies the client-side half of the filter state: keep a
// transaction if its tag set intersects the requested ids and its note
// contains the search string case-insensitively.
func filterLocal(list []core.Transaction, f TransactionFilters) []core.Transaction {
	if len(f.TagIDs) == 0 && f.Search == "" {
		return list
	}
	search := strings.ToLower(f.Search)
	out := make([]core.Transaction, 0, len(list))
	for _, tx := range list {
		if len(f.TagIDs) > 0 && !intersects(tx, f.TagIDs) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(tx.Note), search) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func intersects(tx core.Transaction, ids []int64) bool {
	for _, id := range ids {
		if tx.HasTag(id) {
			return true
		}
	}
	return false
}

func (s *Transactions) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Transactions) setList(list []core.Transaction) {
	if list == nil {
		list = []core.Transaction{}
	}
	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
}
