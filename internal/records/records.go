// Package records holds what slips and invoices share: timestamps, history
// search, field validation errors and numeric checks.
package records

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the createdAt format: UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp renders t as a createdAt value.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Filter narrows a history list by free text and createdAt date range. From
// and To are inclusive YYYY-MM-DD dates, compared against the UTC date of
// createdAt.
type Filter struct {
	Query string
	From  string
	To    string
}

// Match reports whether a record with createdAt and the given searchable
// values passes the filter. The query matches case-insensitively as a
// substring of any value.
func (f Filter) Match(createdAt string, searchable ...string) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		found := false
		for _, v := range searchable {
			if strings.Contains(strings.ToLower(v), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.From == "" && f.To == "" {
		return true
	}
	day := createdDate(createdAt)
	if day == "" {
		return false
	}
	if f.From != "" && day < f.From {
		return false
	}
	if f.To != "" && day > f.To {
		return false
	}
	return true
}

func createdDate(createdAt string) string {
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		return t.UTC().Format(time.DateOnly)
	}
	if len(createdAt) >= 10 {
		if _, err := time.Parse(time.DateOnly, createdAt[:10]); err == nil {
			return createdAt[:10]
		}
	}
	return ""
}

// ValidationError lists per-field messages that block finalizing a record.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Errors collects field errors; Err returns nil when none were added.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	e[field] = msg
}

func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &ValidationError{Fields: e}
}

// IsNumber reports whether s is a finite decimal number after trimming.
// NaN, infinities, hex floats and digit separators are rejected.
func IsNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "_xX") {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsAmount is IsNumber that also accepts thousand separators in either the
// international (125,000) or Indian (1,25,000) grouping and a leading rupee
// sign.
func IsAmount(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return IsNumber(s)
}
