package study

import "github.com/rsimmons/yukawa/internal/domain"

// ReportEntry describes how one atom's interval changed. Elapsed is nil when
// the atom had no record before.
type ReportEntry struct {
	Elapsed      *int64          `json:"elapsed"`
	PrevInterval domain.Interval `json:"prev_interval"`
	NewInterval  domain.Interval `json:"new_interval"`
	Grade        domain.Grade    `json:"grade"`
}

// Report maps atom id to what recording did to it.
type Report map[string]ReportEntry
