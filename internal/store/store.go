// Package store implements the client-side data stores: one per entity
// collection (tags, transactions, recurring rules) plus the memoizing
// reports store. Each store owns its in-memory list and refreshes it from
// the remote API.
//
// Error handling is deliberately asymmetric: reads (Fetch) swallow failures
// and present an empty list so the UI stays up against a broken server;
// writes (Add/Update/Remove) always surface failures because the user must
// learn a write did not happen.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// MonthKey formats a time as the year-month key the reports API and cache
// use, e.g. "2024-01".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// decodePayload decodes a response body into loose JSON values for
// normalization. An empty body decodes to nil, which normalizes to empty.
func decodePayload(data []byte) (any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}
