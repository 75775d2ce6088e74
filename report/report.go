// Package report computes sales summaries over a purchases dataset.
//
// A purchases dataset holds one row per sale with a grouping column (by
// default "country"), a gross sale amount, and a discount to subtract for
// the net amount. The operations mirror the usual sequence of ledger
// questions: total sales, sales per country, net sales per country, and net
// sales per country with outlier rows removed, where an outlier is a sale
// exceeding a multiple of the median amount (globally or within its own
// country).
package report

import (
	"fmt"

	"github.com/ledgerstat/ledgerstat/dataset"
)

// DefaultOutlierMultiplier is the median multiple above which a sale is
// treated as an outlier.
const DefaultOutlierMultiplier = 10.0

// Spec names the dataset columns a report reads and configures the outlier
// threshold. The zero value is usable; empty fields take defaults.
type Spec struct {
	GroupColumn       string  // grouping key, default "country"
	AmountColumn      string  // gross sale amount, default "amount"
	DiscountColumn    string  // discount to subtract, default "discount"
	OutlierMultiplier float64 // median multiple, default 10
}

func (s Spec) withDefaults() Spec {
	if s.GroupColumn == "" {
		s.GroupColumn = "country"
	}
	if s.AmountColumn == "" {
		s.AmountColumn = "amount"
	}
	if s.DiscountColumn == "" {
		s.DiscountColumn = "discount"
	}
	if s.OutlierMultiplier <= 0 {
		s.OutlierMultiplier = DefaultOutlierMultiplier
	}
	return s
}

// net is the amount-minus-discount expression.
func (s Spec) net() dataset.Value {
	return dataset.Sub(dataset.Col(s.AmountColumn), dataset.Col(s.DiscountColumn))
}

// TotalAmount sums the gross sale amount over the whole dataset.
func TotalAmount(ds dataset.Dataset, spec Spec) (float64, error) {
	spec = spec.withDefaults()
	return ds.SumOf(dataset.Col(spec.AmountColumn))
}

// TotalsByGroup sums the gross sale amount per group. Result rows hold the
// group column and a "total" column, sorted by group.
func TotalsByGroup(ds dataset.Dataset, spec Spec) (dataset.Dataset, error) {
	spec = spec.withDefaults()
	return groupTotals(ds, spec, dataset.Col(spec.AmountColumn))
}

// NetTotalsByGroup sums amount minus discount per group.
func NetTotalsByGroup(ds dataset.Dataset, spec Spec) (dataset.Dataset, error) {
	spec = spec.withDefaults()
	return groupTotals(ds, spec, spec.net())
}

// NetTotalsExcludingOutliers drops rows whose amount exceeds the configured
// multiple of the median amount over the whole dataset, then computes
// NetTotalsByGroup on the rest.
func NetTotalsExcludingOutliers(ds dataset.Dataset, spec Spec) (dataset.Dataset, error) {
	spec = spec.withDefaults()

	median, err := ds.MedianOf(dataset.Col(spec.AmountColumn))
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("median of %s: %w", spec.AmountColumn, err)
	}

	kept, err := ds.Filter(dataset.Compare{
		Left:  dataset.Col(spec.AmountColumn),
		Op:    dataset.Le,
		Right: dataset.Lit(median * spec.OutlierMultiplier),
	})
	if err != nil {
		return dataset.Dataset{}, err
	}

	return groupTotals(kept, spec, spec.net())
}

// NetTotalsExcludingGroupOutliers drops rows whose amount exceeds the
// configured multiple of the median amount within their own group, then
// computes NetTotalsByGroup on the rest.
func NetTotalsExcludingGroupOutliers(ds dataset.Dataset, spec Spec) (dataset.Dataset, error) {
	spec = spec.withDefaults()

	grouped, err := ds.GroupBy(spec.GroupColumn)
	if err != nil {
		return dataset.Dataset{}, err
	}

	kept, err := grouped.FilterEach(func(group dataset.Dataset) (dataset.Predicate, error) {
		median, err := group.MedianOf(dataset.Col(spec.AmountColumn))
		if err != nil {
			return nil, fmt.Errorf("median of %s: %w", spec.AmountColumn, err)
		}
		return dataset.Compare{
			Left:  dataset.Col(spec.AmountColumn),
			Op:    dataset.Le,
			Right: dataset.Lit(median * spec.OutlierMultiplier),
		}, nil
	})
	if err != nil {
		return dataset.Dataset{}, err
	}

	return groupTotals(kept, spec, spec.net())
}

// NetTotalsExcludingGroupOutliersAssign is the single-pass variant of
// NetTotalsExcludingGroupOutliers: the per-group median is broadcast onto
// every row as a computed column, rows are filtered against it, and the
// survivors are regrouped. Both variants yield identical totals.
func NetTotalsExcludingGroupOutliersAssign(ds dataset.Dataset, spec Spec) (dataset.Dataset, error) {
	spec = spec.withDefaults()

	grouped, err := ds.GroupBy(spec.GroupColumn)
	if err != nil {
		return dataset.Dataset{}, err
	}

	medianColumn := spec.GroupColumn + "_median"
	withMedian, err := grouped.Transform(medianColumn, dataset.Median(dataset.Col(spec.AmountColumn), ""))
	if err != nil {
		return dataset.Dataset{}, err
	}

	kept, err := withMedian.Filter(dataset.Compare{
		Left:  dataset.Col(spec.AmountColumn),
		Op:    dataset.Le,
		Right: dataset.Mul(dataset.Col(medianColumn), dataset.Lit(spec.OutlierMultiplier)),
	})
	if err != nil {
		return dataset.Dataset{}, err
	}

	return groupTotals(kept, spec, spec.net())
}

// groupTotals groups by the spec's group column and sums the given
// expression into a "total" column, sorted by group for stable output.
func groupTotals(ds dataset.Dataset, spec Spec, expr dataset.Value) (dataset.Dataset, error) {
	grouped, err := ds.GroupBy(spec.GroupColumn)
	if err != nil {
		return dataset.Dataset{}, err
	}

	totals, err := grouped.Aggregate(dataset.Sum(expr, "total"))
	if err != nil {
		return dataset.Dataset{}, err
	}

	return totals.SortBy(spec.GroupColumn, false), nil
}
