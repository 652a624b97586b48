package store

import (
	"context"
	"fmt"
	"sync"

	"tally/internal/api"
	"tally/internal/core"
	"tally/internal/log"
)

// TagInput is the payload for creating or updating a tag.
type TagInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Tags owns the in-memory tag collection. The transaction store reads its
// list (without owning it) to resolve tag id references.
type Tags struct {
	client *api.Client
	logger *log.Logger

	mu      sync.Mutex
	list    []core.Tag
	loading bool
}

func NewTags(client *api.Client, logger *log.Logger) *Tags {
	return &Tags{
		client: client,
		logger: logger.WithComponent(log.ComponentStore).With(log.FieldStore, "tags"),
		list:   []core.Tag{},
	}
}

// List returns a copy of the current tag collection in server order.
func (s *Tags) List() []core.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Tag(nil), s.list...)
}

// Loading reports whether a fetch is in flight.
func (s *Tags) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Fetch replaces the list from the server. Failures are swallowed: the list
// resets to empty and the error is only logged.
func (s *Tags) Fetch(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	data, err := s.client.Get(ctx, "/tags", nil)
	if err != nil {
		s.logger.Error("fetch tags", log.FieldError, err)
		s.setList(nil)
		return
	}
	raw, err := decodePayload(data)
	if err != nil {
		s.logger.Error("fetch tags", log.FieldError, err)
		s.setList(nil)
		return
	}
	s.setList(core.NormalizeTags(raw))
}

// Add creates a tag and re-syncs the list. Failures are translated to domain
// errors and returned; the list is left unchanged.
func (s *Tags) Add(ctx context.Context, input TagInput) (core.Tag, error) {
	data, err := s.client.Post(ctx, "/tags", input)
	if err != nil {
		return core.Tag{}, translateTagError(err)
	}
	raw, err := decodePayload(data)
	if err != nil {
		return core.Tag{}, err
	}
	created := core.NormalizeTag(core.UnwrapEntity(raw))
	s.Fetch(ctx)
	return created, nil
}

// Update renames or recolors a tag and re-syncs the list.
func (s *Tags) Update(ctx context.Context, id int64, input TagInput) (core.Tag, error) {
	data, err := s.client.Patch(ctx, fmt.Sprintf("/tags/%d", id), input)
	if err != nil {
		return core.Tag{}, translateTagError(err)
	}
	raw, err := decodePayload(data)
	if err != nil {
		return core.Tag{}, err
	}
	updated := core.NormalizeTag(core.UnwrapEntity(raw))
	s.Fetch(ctx)
	return updated, nil
}

// Remove deletes a tag and re-syncs the list. A tag still attached to
// transactions yields ErrTagInUse and leaves the list unchanged.
func (s *Tags) Remove(ctx context.Context, id int64) error {
	if _, err := s.client.Delete(ctx, fmt.Sprintf("/tags/%d", id)); err != nil {
		return translateTagError(err)
	}
	s.Fetch(ctx)
	return nil
}

func (s *Tags) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Tags) setList(list []core.Tag) {
	if list == nil {
		list = []core.Tag{}
	}
	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
}
