package models

import "time"

// PhotoFilter narrows a photo listing. Every field is optional and the
// present ones are combined with AND; the date range is inclusive.
type PhotoFilter struct {
	Highway  string
	Activity string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Empty reports whether the filter constrains nothing.
func (f PhotoFilter) Empty() bool {
	return f.Highway == "" && f.Activity == "" && f.DateFrom == nil && f.DateTo == nil
}

// Match reports whether p satisfies every present constraint of f.
func (f PhotoFilter) Match(p Photo) bool {
	if f.Highway != "" && p.Highway != f.Highway {
		return false
	}
	if f.Activity != "" && p.Activity != f.Activity {
		return false
	}
	if f.DateFrom != nil && p.Timestamp < f.DateFrom.UnixMilli() {
		return false
	}
	if f.DateTo != nil && p.Timestamp > f.DateTo.UnixMilli() {
		return false
	}
	return true
}
