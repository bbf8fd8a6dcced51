package domain

import (
	"fmt"
	"time"

	apperrors "worklog/internal/platform/errors"
)

type Category string

const (
	CategoryResearch     Category = "research"
	CategoryStudy        Category = "study"
	CategoryMaterialPrep Category = "material_prep"
	CategoryOther        Category = "other"
	CategoryBreak        Category = "break"
)

// WorkCategories are the categories a user may log time against; break is
// reserved for the session state machine.
func WorkCategories() []Category {
	return []Category{CategoryResearch, CategoryStudy, CategoryMaterialPrep, CategoryOther}
}

// ParseWorkCategory accepts the canonical token or the original Japanese
// label used by the chat commands.
func ParseWorkCategory(s string) (Category, error) {
	switch s {
	case string(CategoryResearch), "研究":
		return CategoryResearch, nil
	case string(CategoryStudy), "勉強":
		return CategoryStudy, nil
	case string(CategoryMaterialPrep), "資料作成":
		return CategoryMaterialPrep, nil
	case string(CategoryOther), "その他":
		return CategoryOther, nil
	default:
		return "", fmt.Errorf("%w: category must be one of research, study, material_prep, other", apperrors.ErrFormat)
	}
}

type Source string

const (
	SourceAuto   Source = "auto"
	SourceManual Source = "manual"
)

// Interval is a single categorized time span belonging to one user-date.
// End is zero while the interval is open; a closed interval always has
// End after Start.
type Interval struct {
	ID       string
	UserID   string
	Date     string // YYYY-MM-DD in the configured timezone
	Start    time.Time
	End      time.Time
	Category Category
	Source   Source
}

func (iv Interval) Closed() bool {
	return !iv.End.IsZero()
}

func (iv Interval) Duration() time.Duration {
	if !iv.Closed() {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two closed intervals intersect as half-open
// ranges: [a.Start, a.End) and [b.Start, b.End).
func Overlaps(a, b Interval) bool {
	if !a.Closed() || !b.Closed() {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

