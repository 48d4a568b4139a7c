package domain

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	apperrors "laprun/internal/platform/errors"
)

type SortField string

const (
	SortByID             SortField = "id"
	SortByTitle          SortField = "title"
	SortByDuration       SortField = "duration"
	SortByCategory       SortField = "category"
	SortByLapInterval    SortField = "lapInterval"
	SortByMaxOccurrences SortField = "maxOccurrences"
	SortByGrowthFactor   SortField = "growthFactor"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

type SortSpec struct {
	Field SortField
	Order SortOrder
}

// DefaultSort lists the newest tasks first.
var DefaultSort = SortSpec{Field: SortByID, Order: Descending}

func ParseSort(field, order string) (SortSpec, error) {
	spec := DefaultSort
	if field != "" {
		switch f := SortField(field); f {
		case SortByID, SortByTitle, SortByDuration, SortByCategory, SortByLapInterval, SortByMaxOccurrences, SortByGrowthFactor:
			spec.Field = f
		default:
			return SortSpec{}, fmt.Errorf("%w: unknown sort field %q", apperrors.ErrInvalidInput, field)
		}
	}
	if order != "" {
		switch o := SortOrder(order); o {
		case Ascending, Descending:
			spec.Order = o
		default:
			return SortSpec{}, fmt.Errorf("%w: unknown sort order %q", apperrors.ErrInvalidInput, order)
		}
	}
	return spec, nil
}

// Toggle mirrors clicking a column header: the same field flips from asc to
// desc, anything else starts ascending.
func (s SortSpec) Toggle(field SortField) SortSpec {
	if s.Field == field && s.Order == Ascending {
		return SortSpec{Field: field, Order: Descending}
	}
	return SortSpec{Field: field, Order: Ascending}
}

// Sort returns a sorted copy. Equal keys keep their input order.
func Sort(tasks []Task, spec SortSpec) []Task {
	out := append([]Task(nil), tasks...)
	sign := 1
	if spec.Order == Descending {
		sign = -1
	}
	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		return sign*compare(col, spec.Field, out[i], out[j]) < 0
	})
	return out
}

func compare(col *collate.Collator, field SortField, a, b Task) int {
	switch field {
	case SortByTitle:
		return col.CompareString(a.Title, b.Title)
	case SortByDuration:
		return a.Duration - b.Duration
	case SortByCategory:
		return col.CompareString(CategoryByID(a.CategoryID).Name, CategoryByID(b.CategoryID).Name)
	case SortByLapInterval:
		return a.LapInterval - b.LapInterval
	case SortByMaxOccurrences:
		return a.MaxOccurrences - b.MaxOccurrences
	case SortByGrowthFactor:
		return a.GrowthFactor - b.GrowthFactor
	default:
		return a.ID - b.ID
	}
}
