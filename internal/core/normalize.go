// This file normalizes decoded JSON payloads from the budgeting API into
// canonical entities. The API is loose: list endpoints answer with either a
// bare array or {"data": [...]}, fields go missing, and elements may be null.
// Normalization never fails; malformed input collapses to zero values so the
// read path stays crash-free against a non-conforming server.
//
// Every function here is pure: the only inputs are the decoded payload and,
// where tag references need resolving, the current tag list.

package core

// UnwrapList resolves a list payload: a bare array, a {"data": array}
// wrapper, or anything else, which yields nil. Never fails.
func UnwrapList(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		if inner, ok := v["data"].([]any); ok {
			return inner
		}
	}
	return nil
}

// UnwrapEntity resolves an entity payload: a bare object or a {"data": object}
// wrapper. Anything else yields nil.
func UnwrapEntity(raw any) map[string]any {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if inner, ok := m["data"].(map[string]any); ok {
		return inner
	}
	return m
}

// NormalizeTag produces a canonical Tag from an arbitrary payload element.
func NormalizeTag(raw any) Tag {
	m, ok := raw.(map[string]any)
	if !ok {
		return Tag{}
	}
	return Tag{
		ID:        intField(m, "id"),
		Name:      strField(m, "name"),
		Color:     strField(m, "color"),
		CreatedAt: strField(m, "created_at"),
	}
}

// NormalizeTags normalizes a list payload of tags. Invalid elements become
// zero-value tags rather than being dropped, so list length is preserved.
func NormalizeTags(raw any) []Tag {
	items := UnwrapList(raw)
	out := make([]Tag, len(items))
	for i, item := range items {
		out[i] = NormalizeTag(item)
	}
	return out
}

// NormalizeTransaction produces a canonical Transaction from an arbitrary
// payload element, resolving tag references against the given tag list.
//
// The amount is reconciled from two fields: a non-zero integer amount_pence
// wins; otherwise the decimal string amount is parsed to pence, falling back
// to 0. The raw string is preserved verbatim either way.
func NormalizeTransaction(raw any, tags []Tag) Transaction {
	m, ok := raw.(map[string]any)
	if !ok {
		return Transaction{Tags: []Tag{}}
	}

	amount := strField(m, "amount")
	pence := intField(m, "amount_pence")
	if pence == 0 {
		pence = PenceOrZero(amount)
	}

	return Transaction{
		ID:          intField(m, "id"),
		AmountPence: pence,
		Amount:      amount,
		Note:        strField(m, "note"),
		Date:        strField(m, "t_date"),
		Tags:        resolveTransactionTags(m, tags),
		CreatedAt:   strField(m, "created_at"),
		UpdatedAt:   strField(m, "updated_at"),
	}
}

// NormalizeTransactions normalizes a list payload of transactions, preserving
// list length.
func NormalizeTransactions(raw any, tags []Tag) []Transaction {
	items := UnwrapList(raw)
	out := make([]Transaction, len(items))
	for i, item := range items {
		out[i] = NormalizeTransaction(item, tags)
	}
	return out
}

// NormalizeRecurring produces a canonical RecurringRule from an arbitrary
// payload element.
func NormalizeRecurring(raw any) RecurringRule {
	m, ok := raw.(map[string]any)
	if !ok {
		return RecurringRule{TagIDs: []int64{}}
	}
	return RecurringRule{
		ID:           intField(m, "id"),
		Amount:       strField(m, "amount"),
		Description:  strField(m, "description"),
		Frequency:    Frequency(strField(m, "frequency")),
		IntervalN:    intField(m, "interval_n"),
		FirstDueDate: strField(m, "first_due_date"),
		NextDueDate:  strField(m, "next_due_date"),
		EndDate:      strField(m, "end_date"),
		Active:       boolField(m, "active"),
		TagIDs:       intsField(m, "tag_ids"),
		CreatedAt:    strField(m, "created_at"),
		UpdatedAt:    strField(m, "updated_at"),
	}
}

// NormalizeRecurrings normalizes a list payload of recurring rules,
// preserving list length.
func NormalizeRecurrings(raw any) []RecurringRule {
	items := UnwrapList(raw)
	out := make([]RecurringRule, len(items))
	for i, item := range items {
		out[i] = NormalizeRecurring(item)
	}
	return out
}

// NormalizeMonthlyReport produces a canonical MonthlyReport from an arbitrary
// payload, entity-wrapped or bare.
func NormalizeMonthlyReport(raw any) MonthlyReport {
	m := UnwrapEntity(raw)
	report := MonthlyReport{ByTag: map[string]TagTotals{}}
	if m == nil {
		return report
	}
	report.Month = strField(m, "month")
	report.TotalIn = strField(m, "total_in")
	report.TotalOut = strField(m, "total_out")
	if byTag, ok := m["by_tag"].(map[string]any); ok {
		for name, v := range byTag {
			entry, ok := v.(map[string]any)
			if !ok {
				report.ByTag[name] = TagTotals{}
				continue
			}
			report.ByTag[name] = TagTotals{
				TotalIn:  strField(entry, "total_in"),
				TotalOut: strField(entry, "total_out"),
			}
		}
	}
	return report
}

// NormalizeMonthlyTotals produces canonical MonthlyTotals from an arbitrary
// payload, entity-wrapped or bare.
func NormalizeMonthlyTotals(raw any) MonthlyTotals {
	m := UnwrapEntity(raw)
	if m == nil {
		return MonthlyTotals{}
	}
	return MonthlyTotals{
		Month:    strField(m, "month"),
		TotalIn:  strField(m, "total_in"),
		TotalOut: strField(m, "total_out"),
	}
}

// resolveTransactionTags reconciles the two shapes tag references arrive in:
// an embedded "tags" array of tag objects, or a "tag_ids" array of ids to
// resolve against the current tag list. Embedded tags preserve array length
// (invalid elements become zero-value tags); id resolution drops ids with no
// match, preserving relative order. A non-array in either field yields an
// empty list.
func resolveTransactionTags(m map[string]any, tags []Tag) []Tag {
	if embedded, ok := m["tags"].([]any); ok {
		out := make([]Tag, len(embedded))
		for i, item := range embedded {
			out[i] = NormalizeTag(item)
		}
		return out
	}
	if ids, ok := m["tag_ids"].([]any); ok {
		out := make([]Tag, 0, len(ids))
		for _, item := range ids {
			id, ok := asInt(item)
			if !ok {
				continue
			}
			if tag, found := tagByID(tags, id); found {
				out = append(out, tag)
			}
		}
		return out
	}
	return []Tag{}
}

func tagByID(tags []Tag, id int64) (Tag, bool) {
	for _, t := range tags {
		if t.ID == id {
			return t, true
		}
	}
	return Tag{}, false
}

// strField extracts a string field; anything that is not a string yields "".
func strField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// intField extracts an integer field. JSON numbers decode as float64; other
// types yield 0.
func intField(m map[string]any, key string) int64 {
	v, _ := asInt(m[key])
	return v
}

// boolField extracts a boolean field; anything else yields false.
func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// intsField extracts an array of integers, dropping non-numeric elements.
// A non-array yields an empty list.
func intsField(m map[string]any, key string) []int64 {
	items, ok := m[key].([]any)
	if !ok {
		return []int64{}
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		if v, ok := asInt(item); ok {
			out = append(out, v)
		}
	}
	return out
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
