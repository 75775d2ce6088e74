package dataset

import "fmt"

// Value is an expression evaluated against a single row, producing a scalar.
//
// The concrete implementations are Column (a column reference), Literal
// (a constant), and Arith (arithmetic over two sub-expressions).
type Value interface {
	Eval(row Row) (interface{}, error)
}

// Column references a named column in a row.
type Column struct {
	Name string
}

// Col is a shorthand constructor for a column reference.
func Col(name string) Column {
	return Column{Name: name}
}

// Eval returns the column value for the row.
func (c Column) Eval(row Row) (interface{}, error) {
	value, exists := row[c.Name]
	if !exists {
		return nil, fmt.Errorf("column %q not found", c.Name)
	}
	return value, nil
}

// Literal wraps a constant value.
type Literal struct {
	Value interface{}
}

// Lit is a shorthand constructor for a literal.
func Lit(v interface{}) Literal {
	return Literal{Value: v}
}

// Eval returns the literal value.
func (l Literal) Eval(Row) (interface{}, error) {
	return l.Value, nil
}

// ArithOp identifies an arithmetic operator.
type ArithOp int

const (
	OpAdd ArithOp = iota // +
	OpSub                // -
	OpMul                // *
	OpDiv                // /
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return fmt.Sprintf("ArithOp(%d)", int(op))
	}
}

// Arith is a numeric binary expression. Both operands are coerced to
// float64; a nil operand propagates as a nil result.
type Arith struct {
	Left  Value
	Op    ArithOp
	Right Value
}

// Add returns an expression computing left + right.
func Add(left, right Value) Arith { return Arith{Left: left, Op: OpAdd, Right: right} }

// Sub returns an expression computing left - right.
func Sub(left, right Value) Arith { return Arith{Left: left, Op: OpSub, Right: right} }

// Mul returns an expression computing left * right.
func Mul(left, right Value) Arith { return Arith{Left: left, Op: OpMul, Right: right} }

// Div returns an expression computing left / right.
func Div(left, right Value) Arith { return Arith{Left: left, Op: OpDiv, Right: right} }

// Eval evaluates both operands and applies the operator.
func (a Arith) Eval(row Row) (interface{}, error) {
	left, err := a.Left.Eval(row)
	if err != nil {
		return nil, err
	}
	right, err := a.Right.Eval(row)
	if err != nil {
		return nil, err
	}

	// NULL in, NULL out
	if left == nil || right == nil {
		return nil, nil
	}

	leftNum, ok := toFloat64(left)
	if !ok {
		return nil, fmt.Errorf("arithmetic %s: left operand %T is not numeric", a.Op, left)
	}
	rightNum, ok := toFloat64(right)
	if !ok {
		return nil, fmt.Errorf("arithmetic %s: right operand %T is not numeric", a.Op, right)
	}

	switch a.Op {
	case OpAdd:
		return leftNum + rightNum, nil
	case OpSub:
		return leftNum - rightNum, nil
	case OpMul:
		return leftNum * rightNum, nil
	case OpDiv:
		if rightNum == 0 {
			return nil, fmt.Errorf("arithmetic /: division by zero")
		}
		return leftNum / rightNum, nil
	default:
		return nil, fmt.Errorf("unsupported arithmetic operator: %v", a.Op)
	}
}

// toFloat64 converts a value to float64 if possible
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// toString converts a value to string if possible
func toString(v interface{}) (string, bool) {
	if str, ok := v.(string); ok {
		return str, true
	}
	return "", false
}

// toBool converts a value to bool if possible
func toBool(v interface{}) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	return false, false
}
