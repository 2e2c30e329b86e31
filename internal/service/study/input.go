package study

import (
	"fmt"

	"github.com/rsimmons/yukawa/internal/domain"
)

const (
	maxLangLen     = 8
	maxGradedAtoms = 1000
)

// GradeBatch lists the atoms reported in each grade category after an
// activity.
type GradeBatch struct {
	Introduced []string
	Exposed    []string
	Forgot     []string
	Passed     []string
	Failed     []string
}

// byGrade returns the categories in domain.GradePrecedence order.
func (b GradeBatch) byGrade() []struct {
	Grade domain.Grade
	Atoms []string
} {
	return []struct {
		Grade domain.Grade
		Atoms []string
	}{
		{domain.GradeIntroduced, b.Introduced},
		{domain.GradeExposed, b.Exposed},
		{domain.GradeForgot, b.Forgot},
		{domain.GradePassed, b.Passed},
		{domain.GradeFailed, b.Failed},
	}
}

// Len returns the number of atom ids in the batch, counting repeats.
func (b GradeBatch) Len() int {
	return len(b.Introduced) + len(b.Exposed) + len(b.Forgot) + len(b.Passed) + len(b.Failed)
}

// Resolve assigns one grade per atom. An atom listed in several categories
// gets the strongest one. order lists atoms by first appearance.
func (b GradeBatch) Resolve() (grades map[string]domain.Grade, order []string) {
	grades = make(map[string]domain.Grade, b.Len())
	for _, cat := range b.byGrade() {
		for _, id := range cat.Atoms {
			if _, seen := grades[id]; !seen {
				order = append(order, id)
			}
			grades[id] = cat.Grade
		}
	}
	return grades, order
}

// PickActivityInput holds the parameters for picking the next activity.
type PickActivityInput struct {
	Lang string
}

// Validate checks all fields and collects all errors.
func (i *PickActivityInput) Validate() error {
	var errs []domain.FieldError
	errs = validateLang(errs, i.Lang)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RecordResultInput holds the graded outcome of an activity.
type RecordResultInput struct {
	Lang   string
	Grades GradeBatch
}

// Validate checks all fields and collects all errors.
func (i *RecordResultInput) Validate() error {
	var errs []domain.FieldError
	errs = validateLang(errs, i.Lang)

	if i.Grades.Len() > maxGradedAtoms {
		errs = append(errs, domain.FieldError{Field: "atoms", Message: fmt.Sprintf("at most %d atoms per result", maxGradedAtoms)})
	}
	for _, cat := range i.Grades.byGrade() {
		for j, id := range cat.Atoms {
			if id == "" {
				errs = append(errs, domain.FieldError{Field: fmt.Sprintf("atoms_%s[%d]", cat.Grade, j), Message: "required"})
			}
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateLang(errs []domain.FieldError, lang string) []domain.FieldError {
	if lang == "" {
		return append(errs, domain.FieldError{Field: "lang", Message: "required"})
	}
	if len(lang) > maxLangLen {
		return append(errs, domain.FieldError{Field: "lang", Message: fmt.Sprintf("max %d characters", maxLangLen)})
	}
	return errs
}
