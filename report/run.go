package report

import (
	"fmt"

	"github.com/ledgerstat/ledgerstat/dataset"
)

// Kind selects a report operation.
type Kind string

const (
	KindTotal            Kind = "total"              // single grand total of amount
	KindByGroup          Kind = "by-group"           // amount totals per group
	KindNet              Kind = "net"                // net totals per group
	KindNetOutliers      Kind = "net-outliers"       // net totals, global-median outliers removed
	KindNetGroupOutliers Kind = "net-group-outliers" // net totals, per-group-median outliers removed
)

// Kinds lists the supported report kinds in display order.
func Kinds() []Kind {
	return []Kind{KindTotal, KindByGroup, KindNet, KindNetOutliers, KindNetGroupOutliers}
}

// Run executes the named report and returns its result rows. The grand
// total report yields a single row with a "total" column.
func Run(kind Kind, ds dataset.Dataset, spec Spec) (dataset.Dataset, error) {
	switch kind {
	case KindTotal:
		total, err := TotalAmount(ds, spec)
		if err != nil {
			return dataset.Dataset{}, err
		}
		return dataset.New([]dataset.Row{{"total": total}}), nil
	case KindByGroup:
		return TotalsByGroup(ds, spec)
	case KindNet:
		return NetTotalsByGroup(ds, spec)
	case KindNetOutliers:
		return NetTotalsExcludingOutliers(ds, spec)
	case KindNetGroupOutliers:
		return NetTotalsExcludingGroupOutliers(ds, spec)
	default:
		return dataset.Dataset{}, fmt.Errorf("unknown report kind: %s", kind)
	}
}
