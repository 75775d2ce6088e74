package dataset

import (
	"fmt"
	"math"
)

// Predicate is a boolean expression evaluated against a single row.
type Predicate interface {
	Evaluate(row Row) (bool, error)
}

// CompareOp identifies a comparison operator.
type CompareOp int

const (
	Eq CompareOp = iota // =
	Ne                  // !=
	Lt                  // <
	Gt                  // >
	Le                  // <=
	Ge                  // >=
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Le:
		return "<="
	case Ge:
		return ">="
	default:
		return fmt.Sprintf("CompareOp(%d)", int(op))
	}
}

// Compare compares two value expressions.
type Compare struct {
	Left  Value
	Op    CompareOp
	Right Value
}

// Evaluate evaluates both operands and compares them.
func (c Compare) Evaluate(row Row) (bool, error) {
	left, err := c.Left.Eval(row)
	if err != nil {
		return false, err
	}
	right, err := c.Right.Eval(row)
	if err != nil {
		return false, err
	}
	return compare(left, c.Op, right)
}

// And is the conjunction of two predicates.
type And struct {
	Left  Predicate
	Right Predicate
}

// Evaluate evaluates the conjunction.
func (a And) Evaluate(row Row) (bool, error) {
	left, err := a.Left.Evaluate(row)
	if err != nil {
		return false, err
	}
	right, err := a.Right.Evaluate(row)
	if err != nil {
		return false, err
	}
	return left && right, nil
}

// Or is the disjunction of two predicates.
type Or struct {
	Left  Predicate
	Right Predicate
}

// Evaluate evaluates the disjunction.
func (o Or) Evaluate(row Row) (bool, error) {
	left, err := o.Left.Evaluate(row)
	if err != nil {
		return false, err
	}
	right, err := o.Right.Evaluate(row)
	if err != nil {
		return false, err
	}
	return left || right, nil
}

// Not negates a predicate.
type Not struct {
	Expr Predicate
}

// Evaluate evaluates the negation.
func (n Not) Evaluate(row Row) (bool, error) {
	result, err := n.Expr.Evaluate(row)
	if err != nil {
		return false, err
	}
	return !result, nil
}

// compare compares two values using the given operator
func compare(left interface{}, operator CompareOp, right interface{}) (bool, error) {
	// Handle nil values
	if left == nil || right == nil {
		if operator == Eq {
			return left == right, nil
		}
		if operator == Ne {
			return left != right, nil
		}
		return false, nil
	}

	// Try numeric comparison
	leftNum, leftIsNum := toFloat64(left)
	rightNum, rightIsNum := toFloat64(right)

	if leftIsNum && rightIsNum {
		return compareNumbers(leftNum, operator, rightNum), nil
	}

	// Try string comparison
	leftStr, leftIsStr := toString(left)
	rightStr, rightIsStr := toString(right)

	if leftIsStr && rightIsStr {
		return compareStrings(leftStr, operator, rightStr), nil
	}

	// Try boolean comparison
	leftBool, leftIsBool := toBool(left)
	rightBool, rightIsBool := toBool(right)

	if leftIsBool && rightIsBool {
		return compareBools(leftBool, operator, rightBool), nil
	}

	// Type mismatch
	return false, fmt.Errorf("cannot compare %T with %T", left, right)
}

// compareNumbers compares two numbers
func compareNumbers(left float64, operator CompareOp, right float64) bool {
	const epsilon = 1e-9 // Use small epsilon for floating point comparison
	switch operator {
	case Eq:
		// Use relative epsilon for large numbers, absolute for small
		diff := math.Abs(left - right)
		maxAbs := math.Max(math.Abs(left), math.Abs(right))
		threshold := epsilon * math.Max(1.0, maxAbs)
		return diff < threshold
	case Ne:
		diff := math.Abs(left - right)
		maxAbs := math.Max(math.Abs(left), math.Abs(right))
		threshold := epsilon * math.Max(1.0, maxAbs)
		return diff >= threshold
	case Lt:
		return left < right
	case Gt:
		return left > right
	case Le:
		return left <= right
	case Ge:
		return left >= right
	default:
		return false
	}
}

// compareStrings compares two strings (case-sensitive)
func compareStrings(left string, operator CompareOp, right string) bool {
	switch operator {
	case Eq:
		return left == right
	case Ne:
		return left != right
	case Lt:
		return left < right
	case Gt:
		return left > right
	case Le:
		return left <= right
	case Ge:
		return left >= right
	default:
		return false
	}
}

// compareBools compares two booleans
func compareBools(left bool, operator CompareOp, right bool) bool {
	switch operator {
	case Eq:
		return left == right
	case Ne:
		return left != right
	default:
		return false
	}
}

// compareValues compares two values and returns:
// -1 if a < b
//
//	0 if a == b
//
// +1 if a > b
func compareValues(a, b interface{}) int {
	// Handle nil values
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	// Try numeric comparison
	aNum, aIsNum := toFloat64(a)
	bNum, bIsNum := toFloat64(b)
	if aIsNum && bIsNum {
		if aNum < bNum {
			return -1
		}
		if aNum > bNum {
			return 1
		}
		return 0
	}

	// Try string comparison
	aStr, aIsStr := toString(a)
	bStr, bIsStr := toString(b)
	if aIsStr && bIsStr {
		if aStr < bStr {
			return -1
		}
		if aStr > bStr {
			return 1
		}
		return 0
	}

	// Try boolean comparison
	aBool, aIsBool := toBool(a)
	bBool, bIsBool := toBool(b)
	if aIsBool && bIsBool {
		if !aBool && bBool {
			return -1 // false < true
		}
		if aBool && !bBool {
			return 1 // true > false
		}
		return 0
	}

	// Type mismatch or unsupported types - treat as equal
	return 0
}
