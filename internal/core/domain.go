// Package core holds the canonical entity types exchanged with the budgeting
// API, money parsing and formatting, and the defensive normalization that
// turns loosely-typed server payloads into always-valid values.
package core

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	// Frequency is how often a recurring rule fires.
	Frequency string

	// Tag labels transactions. Name uniqueness is enforced server-side.
	Tag struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		Color     string `json:"color,omitempty"`
		CreatedAt string `json:"created_at"`
	}

	// Transaction is a single dated movement of money.
	//
	// AmountPence is the canonical amount in minor units; Amount preserves
	// the decimal string exactly as the server sent it, even when it did
	// not parse. Dates and timestamps stay as the server's strings.
	Transaction struct {
		ID          int64  `json:"id"`
		AmountPence int64  `json:"amount_pence"`
		Amount      string `json:"amount"`
		Note        string `json:"note"`
		Date        string `json:"t_date"`
		Tags        []Tag  `json:"tags"`
		CreatedAt   string `json:"created_at"`
		UpdatedAt   string `json:"updated_at"`
	}

	// RecurringRule describes a transaction the server materializes on a
	// schedule.
	RecurringRule struct {
		ID           int64     `json:"id"`
		Amount       string    `json:"amount"`
		Description  string    `json:"description"`
		Frequency    Frequency `json:"frequency"`
		IntervalN    int64     `json:"interval_n"`
		FirstDueDate string    `json:"first_due_date"`
		NextDueDate  string    `json:"next_due_date"`
		EndDate      string    `json:"end_date,omitempty"`
		Active       bool      `json:"active"`
		TagIDs       []int64   `json:"tag_ids"`
		CreatedAt    string    `json:"created_at"`
		UpdatedAt    string    `json:"updated_at"`
	}

	// TagTotals is a single tag's slice of a monthly report.
	TagTotals struct {
		TotalIn  string `json:"total_in"`
		TotalOut string `json:"total_out"`
	}

	// MonthlyReport aggregates a month's movements with a per-tag breakdown.
	// Totals are decimal strings as served; use the Pence accessors for
	// arithmetic-safe values.
	MonthlyReport struct {
		Month    string               `json:"month"`
		TotalIn  string               `json:"total_in"`
		TotalOut string               `json:"total_out"`
		ByTag    map[string]TagTotals `json:"by_tag"`
	}

	// MonthlyTotals is the totals-only variant of MonthlyReport.
	MonthlyTotals struct {
		Month    string `json:"month"`
		TotalIn  string `json:"total_in"`
		TotalOut string `json:"total_out"`
	}
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// HasTag reports whether the transaction carries the given tag id.
func (t Transaction) HasTag(id int64) bool {
	for _, tag := range t.Tags {
		if tag.ID == id {
			return true
		}
	}
	return false
}

// InPence returns the month's income total in pence; 0 if unparseable.
func (r MonthlyReport) InPence() int64 { return PenceOrZero(r.TotalIn) }

// OutPence returns the month's outgoing total in pence; 0 if unparseable.
func (r MonthlyReport) OutPence() int64 { return PenceOrZero(r.TotalOut) }

// NetPence returns income minus outgoings in pence.
func (r MonthlyReport) NetPence() int64 { return r.InPence() - r.OutPence() }

// InPence returns the income total in pence; 0 if unparseable.
func (t MonthlyTotals) InPence() int64 { return PenceOrZero(t.TotalIn) }

// OutPence returns the outgoing total in pence; 0 if unparseable.
func (t MonthlyTotals) OutPence() int64 { return PenceOrZero(t.TotalOut) }

// NetPence returns income minus outgoings in pence.
func (t MonthlyTotals) NetPence() int64 { return t.InPence() - t.OutPence() }
