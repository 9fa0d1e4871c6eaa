package pattern

import (
	"errors"

	"github.com/omkar806/receipt-data-ingestor-gmail/pkg/models/domain"
)

// ErrEmptyAggregate is returned when a caller asks for normalization
// bounds, or a score, against an aggregate with no spending entries.
var ErrEmptyAggregate = errors.New("purchase aggregate is empty")

// Aggregate holds per-brand and per-category cumulative spend totals plus
// the min/max across each mapping's values, used for score normalization.
// The bounds are meaningless when the aggregate is empty; check Empty()
// before using them.
type Aggregate struct {
	BrandSpending    map[string]float64
	CategorySpending map[string]float64

	MinBrand    float64
	MaxBrand    float64
	MinCategory float64
	MaxCategory float64
}

// Analyze folds a receipt collection into spend aggregates. Receipts with
// an empty merchant domain or category label are accumulated under the
// empty-string key; filtering is the caller's concern. An empty input
// yields an empty aggregate, never a panic.
//
// Category bounds are derived from the category mapping's own values.
func Analyze(receipts []domain.Receipt) Aggregate {
	agg := Aggregate{
		BrandSpending:    make(map[string]float64),
		CategorySpending: make(map[string]float64),
	}

	for _, r := range receipts {
		agg.BrandSpending[r.MerchantDomain] += r.TotalCost
		agg.CategorySpending[r.CategoryLabel] += r.TotalCost
	}

	if len(agg.BrandSpending) > 0 {
		agg.MinBrand, agg.MaxBrand = minMax(agg.BrandSpending)
		agg.MinCategory, agg.MaxCategory = minMax(agg.CategorySpending)
	}

	return agg
}

// Empty reports whether the aggregate carries no spending data at all.
func (a Aggregate) Empty() bool {
	return len(a.BrandSpending) == 0
}

// BrandBounds returns the min/max brand spend, or ErrEmptyAggregate.
func (a Aggregate) BrandBounds() (float64, float64, error) {
	if a.Empty() {
		return 0, 0, ErrEmptyAggregate
	}
	return a.MinBrand, a.MaxBrand, nil
}

// CategoryBounds returns the min/max category spend, or ErrEmptyAggregate.
func (a Aggregate) CategoryBounds() (float64, float64, error) {
	if len(a.CategorySpending) == 0 {
		return 0, 0, ErrEmptyAggregate
	}
	return a.MinCategory, a.MaxCategory, nil
}

func minMax(values map[string]float64) (float64, float64) {
	first := true
	var lo, hi float64
	for _, v := range values {
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
