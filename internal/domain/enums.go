package domain

// Dueness is the derived retention urgency of an atom. It is never stored.
type Dueness string

const (
	DuenessUntracked Dueness = "untracked"
	DuenessDue       Dueness = "due"
	DuenessNotDue    Dueness = "not_due"
	DuenessOverdue   Dueness = "overdue"
)

func (d Dueness) String() string { return string(d) }

func (d Dueness) IsValid() bool {
	switch d {
	case DuenessUntracked, DuenessDue, DuenessNotDue, DuenessOverdue:
		return true
	}
	return false
}

// IsKnown reports whether the atom is introduced and not lapsed: it can be
// relied on by an activity that requires it.
func (d Dueness) IsKnown() bool {
	return d == DuenessDue || d == DuenessNotDue
}

// IsIntroducible reports whether the atom should (again) go through an
// introduction.
func (d Dueness) IsIntroducible() bool {
	return d == DuenessUntracked || d == DuenessOverdue
}

// DuenessMap holds the dueness of every atom with a retention record.
// Atoms without a record are untracked.
type DuenessMap map[string]Dueness

// Of returns the dueness of an atom, defaulting to untracked.
func (m DuenessMap) Of(atomID string) Dueness {
	if d, ok := m[atomID]; ok {
		return d
	}
	return DuenessUntracked
}

// Grade is the outcome reported for an atom after an activity.
type Grade string

const (
	GradeIntroduced Grade = "introduced"
	GradeExposed    Grade = "exposed"
	GradeForgot     Grade = "forgot"
	GradePassed     Grade = "passed"
	GradeFailed     Grade = "failed"
)

// GradePrecedence lists grades from weakest to strongest. When an atom is
// reported in several categories the strongest one is applied.
var GradePrecedence = []Grade{
	GradeIntroduced,
	GradeExposed,
	GradeForgot,
	GradePassed,
	GradeFailed,
}

func (g Grade) String() string { return string(g) }

func (g Grade) IsValid() bool {
	switch g {
	case GradeIntroduced, GradeExposed, GradeForgot, GradePassed, GradeFailed:
		return true
	}
	return false
}

// IsBoost reports whether the grade lengthens an interval.
func (g Grade) IsBoost() bool {
	return g == GradePassed || g == GradeExposed
}

// FailurePolicy decides what a non-boost grade does to an atom that was
// introduced but never reviewed.
type FailurePolicy string

const (
	// FailurePolicyInterval assigns the configured initial failure interval.
	FailurePolicyInterval FailurePolicy = "interval"
	// FailurePolicyUntrack drops the atom back to not-introduced.
	FailurePolicyUntrack FailurePolicy = "untrack"
)

func (p FailurePolicy) IsValid() bool {
	switch p {
	case FailurePolicyInterval, FailurePolicyUntrack:
		return true
	}
	return false
}
