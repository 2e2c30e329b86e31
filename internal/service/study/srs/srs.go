// Package srs implements the retention model: how urgent an atom is
// (dueness) and how its retention interval changes after a grade.
// Pure functions. No DB, no context, no logger.
package srs

import (
	"fmt"

	"github.com/rsimmons/yukawa/internal/domain"
)

// Params holds the tunable constants of the retention model. All values are
// in seconds except the multipliers.
type Params struct {
	MinOverdueInterval  int64
	RelOverdueThreshold int64
	InitAfterSuccess    int64
	InitAfterFailure    int64
	SuccessMultiplier   int64
	MaxMultiplier       int64
	MinInterval         int64
	FailureDivisor      int64
	FailurePolicy       domain.FailurePolicy
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		MinOverdueInterval:  600,
		RelOverdueThreshold: 3,
		InitAfterSuccess:    60,
		InitAfterFailure:    10,
		SuccessMultiplier:   2,
		MaxMultiplier:       5,
		MinInterval:         10,
		FailureDivisor:      2,
		FailurePolicy:       domain.FailurePolicyInterval,
	}
}

// Validate checks that the parameters produce a well-defined model.
func (p Params) Validate() error {
	var errs []domain.FieldError

	if p.MinOverdueInterval < 0 {
		errs = append(errs, domain.FieldError{Field: "min_overdue_interval", Message: "must be non-negative"})
	}
	if p.RelOverdueThreshold < 1 {
		errs = append(errs, domain.FieldError{Field: "rel_overdue_threshold", Message: "must be at least 1"})
	}
	if p.InitAfterSuccess <= 0 {
		errs = append(errs, domain.FieldError{Field: "init_after_success", Message: "must be positive"})
	}
	if p.InitAfterFailure <= 0 {
		errs = append(errs, domain.FieldError{Field: "init_after_failure", Message: "must be positive"})
	}
	if p.SuccessMultiplier < 1 {
		errs = append(errs, domain.FieldError{Field: "success_multiplier", Message: "must be at least 1"})
	}
	if p.MaxMultiplier < 1 {
		errs = append(errs, domain.FieldError{Field: "max_multiplier", Message: "must be at least 1"})
	}
	if p.MinInterval <= 0 {
		errs = append(errs, domain.FieldError{Field: "min_interval", Message: "must be positive"})
	}
	if p.FailureDivisor < 1 {
		errs = append(errs, domain.FieldError{Field: "failure_divisor", Message: "must be at least 1"})
	}
	if !p.FailurePolicy.IsValid() {
		errs = append(errs, domain.FieldError{Field: "failure_policy", Message: "must be interval or untrack"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DuenessOf classifies an interval given the seconds elapsed since the atom
// was last asked.
func DuenessOf(iv domain.Interval, elapsed int64, p Params) domain.Dueness {
	interval, ok := iv.Value()
	if !ok {
		return domain.DuenessUntracked
	}
	if interval == 0 {
		return domain.DuenessDue
	}
	// rel = elapsed / interval, compared without floating point.
	if elapsed > p.MinOverdueInterval && elapsed > p.RelOverdueThreshold*interval {
		return domain.DuenessOverdue
	}
	if elapsed >= interval {
		return domain.DuenessDue
	}
	return domain.DuenessNotDue
}

// Dueness classifies a retention record at time now (unix seconds).
func Dueness(rec domain.RetentionRecord, now int64, p Params) domain.Dueness {
	return DuenessOf(rec.Interval, now-rec.LastAsked, p)
}

// DuenessMap computes the dueness of every atom in the table.
func DuenessMap(table domain.RetentionTable, now int64, p Params) domain.DuenessMap {
	out := make(domain.DuenessMap, len(table))
	for id, rec := range table {
		out[id] = Dueness(rec, now, p)
	}
	return out
}

// UpdateInterval returns the interval that results from grading an atom whose
// previous interval was prior and which was last asked elapsed seconds ago.
func UpdateInterval(prior domain.Interval, elapsed int64, grade domain.Grade, p Params) (domain.Interval, error) {
	if !grade.IsValid() {
		return domain.Interval{}, fmt.Errorf("grade %q: %w", grade, domain.ErrInvalidState)
	}
	if elapsed < 0 {
		elapsed = 0
	}

	priorSec, tracked := prior.Value()
	if !tracked {
		switch grade {
		case domain.GradeIntroduced:
			return domain.PendingFirstReview(), nil
		case domain.GradeFailed:
			// Touched only as a rejected distractor; stays untracked.
			return domain.NotTracked(), nil
		default:
			return domain.Interval{}, fmt.Errorf("grade %q on untracked atom: %w", grade, domain.ErrInvalidState)
		}
	}

	if grade == domain.GradeIntroduced && DuenessOf(prior, elapsed, p) == domain.DuenessOverdue {
		return domain.PendingFirstReview(), nil
	}

	boost := grade.IsBoost()

	if priorSec == 0 {
		if boost {
			return domain.Seconds(p.InitAfterSuccess), nil
		}
		if p.FailurePolicy == domain.FailurePolicyUntrack {
			return domain.NotTracked(), nil
		}
		return domain.Seconds(p.InitAfterFailure), nil
	}

	if boost {
		return domain.Seconds(min(priorSec+elapsed*(p.SuccessMultiplier-1), priorSec*p.MaxMultiplier)), nil
	}
	return domain.Seconds(max(p.MinInterval, priorSec/p.FailureDivisor)), nil
}
