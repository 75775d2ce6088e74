package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// AggFunc identifies an aggregate function.
type AggFunc int

const (
	AggCount AggFunc = iota
	AggSum
	AggAvg
	AggMin
	AggMax
	AggMedian
)

func (f AggFunc) String() string {
	switch f {
	case AggCount:
		return "count"
	case AggSum:
		return "sum"
	case AggAvg:
		return "avg"
	case AggMin:
		return "min"
	case AggMax:
		return "max"
	case AggMedian:
		return "median"
	default:
		return fmt.Sprintf("AggFunc(%d)", int(f))
	}
}

// Aggregation pairs an aggregate function with its argument expression and
// the output column name. Arg is nil only for Count, which then counts rows.
type Aggregation struct {
	Func AggFunc
	Arg  Value
	As   string
}

// Count counts rows in a group.
func Count(as string) Aggregation {
	return Aggregation{Func: AggCount, As: as}
}

// CountOf counts non-null values of an expression in a group.
func CountOf(arg Value, as string) Aggregation {
	return Aggregation{Func: AggCount, Arg: arg, As: as}
}

// Sum sums an expression over a group.
func Sum(arg Value, as string) Aggregation {
	return Aggregation{Func: AggSum, Arg: arg, As: as}
}

// Avg averages an expression over a group.
func Avg(arg Value, as string) Aggregation {
	return Aggregation{Func: AggAvg, Arg: arg, As: as}
}

// Min takes the smallest value of an expression over a group.
func Min(arg Value, as string) Aggregation {
	return Aggregation{Func: AggMin, Arg: arg, As: as}
}

// Max takes the largest value of an expression over a group.
func Max(arg Value, as string) Aggregation {
	return Aggregation{Func: AggMax, Arg: arg, As: as}
}

// Median takes the median of an expression over a group. Even-length inputs
// average the two middle values.
func Median(arg Value, as string) Aggregation {
	return Aggregation{Func: AggMedian, Arg: arg, As: as}
}

// group holds the rows of one partition along with their original indices.
type group struct {
	values  Row   // values of the grouping columns
	rows    []Row // rows in the group, in dataset order
	indices []int // original row positions, parallel to rows
}

// Grouped is a Dataset partitioned by one or more grouping columns.
// Every source row belongs to exactly one group; groups keep first-seen
// order and rows keep dataset order within each group.
type Grouped struct {
	keys   []string
	source Dataset
	groups []*group
}

// GroupBy partitions the Dataset by the given columns. A grouping column
// missing from any row is an error.
func (d Dataset) GroupBy(columns ...string) (*Grouped, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("group by: at least one column required")
	}

	byKey := make(map[string]*group)
	order := make([]*group, 0)

	for i, row := range d.rows {
		key, groupValues, err := groupKey(row, columns)
		if err != nil {
			return nil, err
		}

		g, exists := byKey[key]
		if !exists {
			g = &group{values: groupValues}
			byKey[key] = g
			order = append(order, g)
		}
		g.rows = append(g.rows, row)
		g.indices = append(g.indices, i)
	}

	return &Grouped{keys: columns, source: d, groups: order}, nil
}

// groupKey computes a hash key for a group based on the grouping columns
func groupKey(row Row, columns []string) (string, Row, error) {
	var keyBuilder strings.Builder
	groupValues := make(Row, len(columns))

	for i, col := range columns {
		value, exists := row[col]
		if !exists {
			return "", nil, fmt.Errorf("group by column %q not found in row", col)
		}

		if i > 0 {
			keyBuilder.WriteString("\x00||\x00") // Use unlikely separator to avoid collisions
		}
		// Include column name in key to prevent cross-column collisions
		keyBuilder.WriteString(col)
		keyBuilder.WriteString("\x00:\x00")
		keyBuilder.WriteString(fmt.Sprintf("%#v", value)) // Use %#v for better type differentiation
		groupValues[col] = value
	}

	return keyBuilder.String(), groupValues, nil
}

// Groups returns each partition as its own Dataset, in first-seen order.
func (g *Grouped) Groups() []Dataset {
	out := make([]Dataset, len(g.groups))
	for i, grp := range g.groups {
		out[i] = Dataset{rows: grp.rows}
	}
	return out
}

// Aggregate reduces each group to a single row holding the grouping column
// values plus one column per aggregation. Groups appear in first-seen order.
func (g *Grouped) Aggregate(aggs ...Aggregation) (Dataset, error) {
	if len(aggs) == 0 {
		return Dataset{}, fmt.Errorf("aggregate: at least one aggregation required")
	}

	result := make([]Row, 0, len(g.groups))
	for _, grp := range g.groups {
		row := make(Row, len(g.keys)+len(aggs))
		for col, val := range grp.values {
			row[col] = val
		}

		for _, agg := range aggs {
			value, err := evaluateAggregate(agg, grp.rows)
			if err != nil {
				return Dataset{}, err
			}
			row[outputName(agg)] = value
		}

		result = append(result, row)
	}

	return Dataset{rows: result}, nil
}

// Transform computes the aggregate per group and broadcasts it back to every
// row of the group as a new column. Row order of the source Dataset is
// preserved; source rows are copied, not mutated.
func (g *Grouped) Transform(name string, agg Aggregation) (Dataset, error) {
	if name == "" {
		return Dataset{}, fmt.Errorf("transform: column name must not be empty")
	}

	result := make([]Row, g.source.Len())
	for _, grp := range g.groups {
		value, err := evaluateAggregate(agg, grp.rows)
		if err != nil {
			return Dataset{}, err
		}

		for i, row := range grp.rows {
			newRow := make(Row, len(row)+1)
			for col, val := range row {
				newRow[col] = val
			}
			newRow[name] = value
			result[grp.indices[i]] = newRow
		}
	}

	return Dataset{rows: result}, nil
}

// FilterEach filters every group with a predicate built from that group's
// own rows, then reassembles the survivors in original dataset order. This
// is the grouped form of filters like "amount at most ten times the median
// amount within the same country".
func (g *Grouped) FilterEach(build func(group Dataset) (Predicate, error)) (Dataset, error) {
	kept := make([]int, 0, g.source.Len())
	for _, grp := range g.groups {
		pred, err := build(Dataset{rows: grp.rows})
		if err != nil {
			return Dataset{}, err
		}
		if pred == nil {
			kept = append(kept, grp.indices...)
			continue
		}

		for i, row := range grp.rows {
			match, err := pred.Evaluate(row)
			if err != nil {
				return Dataset{}, err
			}
			if match {
				kept = append(kept, grp.indices[i])
			}
		}
	}

	sort.Ints(kept)
	rows := make([]Row, len(kept))
	for i, idx := range kept {
		rows[i] = g.source.rows[idx]
	}

	return Dataset{rows: rows}, nil
}

// Aggregate reduces the whole Dataset to a single row, treating all rows as
// one group. An empty Dataset still yields one row (count 0, other
// aggregates nil).
func (d Dataset) Aggregate(aggs ...Aggregation) (Dataset, error) {
	if len(aggs) == 0 {
		return Dataset{}, fmt.Errorf("aggregate: at least one aggregation required")
	}

	row := make(Row, len(aggs))
	for _, agg := range aggs {
		value, err := evaluateAggregate(agg, d.rows)
		if err != nil {
			return Dataset{}, err
		}
		row[outputName(agg)] = value
	}

	return Dataset{rows: []Row{row}}, nil
}

// SumOf sums an expression over all rows and returns it as a float64.
// An empty Dataset (or one with no usable values) sums to zero.
func (d Dataset) SumOf(arg Value) (float64, error) {
	value, err := evaluateSum(Sum(arg, ""), d.rows)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, nil
	}
	return value.(float64), nil
}

// MedianOf computes the median of an expression over all rows. A Dataset
// with no usable values is an error.
func (d Dataset) MedianOf(arg Value) (float64, error) {
	value, err := evaluateMedian(Median(arg, ""), d.rows)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, fmt.Errorf("median: no values")
	}
	return value.(float64), nil
}

// outputName resolves the output column for an aggregation, falling back to
// the function name when no alias was given.
func outputName(agg Aggregation) string {
	if agg.As != "" {
		return agg.As
	}
	return agg.Func.String()
}

// evaluateAggregate evaluates an aggregate function over a set of rows
func evaluateAggregate(agg Aggregation, rows []Row) (interface{}, error) {
	switch agg.Func {
	case AggCount:
		return evaluateCount(agg, rows)
	case AggSum:
		return evaluateSum(agg, rows)
	case AggAvg:
		return evaluateAvg(agg, rows)
	case AggMin:
		return evaluateMin(agg, rows)
	case AggMax:
		return evaluateMax(agg, rows)
	case AggMedian:
		return evaluateMedian(agg, rows)
	default:
		return nil, fmt.Errorf("unknown aggregate function: %v", agg.Func)
	}
}

// evaluateCount counts rows, or non-null argument values when Arg is set.
func evaluateCount(agg Aggregation, rows []Row) (interface{}, error) {
	if agg.Arg == nil {
		return int64(len(rows)), nil
	}

	count := int64(0)
	for _, row := range rows {
		value, err := agg.Arg.Eval(row)
		if err != nil {
			// Skip rows where the argument cannot be evaluated
			continue
		}
		if value != nil {
			count++
		}
	}

	return count, nil
}

// collectNumbers evaluates the aggregation argument over all rows and keeps
// the numeric non-null results. Rows where the argument cannot be evaluated
// are skipped; a non-numeric result is an error.
func collectNumbers(agg Aggregation, rows []Row) ([]float64, error) {
	if agg.Arg == nil {
		return nil, fmt.Errorf("%s requires an argument", strings.ToUpper(agg.Func.String()))
	}

	numbers := make([]float64, 0, len(rows))
	for _, row := range rows {
		value, err := agg.Arg.Eval(row)
		if err != nil {
			continue
		}
		if value == nil {
			continue
		}

		num, ok := toFloat64(value)
		if !ok {
			return nil, fmt.Errorf("%s: cannot convert %T to number", strings.ToUpper(agg.Func.String()), value)
		}
		numbers = append(numbers, num)
	}

	return numbers, nil
}

func evaluateSum(agg Aggregation, rows []Row) (interface{}, error) {
	numbers, err := collectNumbers(agg, rows)
	if err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return nil, nil // NULL if no values
	}

	sum := 0.0
	for _, n := range numbers {
		sum += n
	}
	return sum, nil
}

func evaluateAvg(agg Aggregation, rows []Row) (interface{}, error) {
	numbers, err := collectNumbers(agg, rows)
	if err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return nil, nil // NULL if no values
	}

	sum := 0.0
	for _, n := range numbers {
		sum += n
	}
	return sum / float64(len(numbers)), nil
}

func evaluateMin(agg Aggregation, rows []Row) (interface{}, error) {
	numbers, err := collectNumbers(agg, rows)
	if err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return nil, nil // NULL if no values
	}

	min := numbers[0]
	for _, n := range numbers[1:] {
		if n < min {
			min = n
		}
	}
	return min, nil
}

func evaluateMax(agg Aggregation, rows []Row) (interface{}, error) {
	numbers, err := collectNumbers(agg, rows)
	if err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return nil, nil // NULL if no values
	}

	max := numbers[0]
	for _, n := range numbers[1:] {
		if n > max {
			max = n
		}
	}
	return max, nil
}

// evaluateMedian computes the median. Even-length inputs average the two
// middle values.
func evaluateMedian(agg Aggregation, rows []Row) (interface{}, error) {
	numbers, err := collectNumbers(agg, rows)
	if err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return nil, nil // NULL if no values
	}

	sort.Float64s(numbers)
	mid := len(numbers) / 2
	if len(numbers)%2 == 1 {
		return numbers[mid], nil
	}
	return (numbers[mid-1] + numbers[mid]) / 2, nil
}
