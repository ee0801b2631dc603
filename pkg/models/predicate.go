// Predicate evaluation for condition nodes.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ConditionOperator enumerates the comparison operators condition
// predicates support.
type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorNotEquals   ConditionOperator = "not_equals"
	OperatorGreaterThan ConditionOperator = "greater_than"
	OperatorLessThan    ConditionOperator = "less_than"
	OperatorContains    ConditionOperator = "contains"
)

// ErrNonNumericValue is returned when a numeric comparison is attempted
// against a value that cannot be interpreted as a number.
var ErrNonNumericValue = errors.New("value is not numeric")

// ConditionPredicate is the single {field, operator, value} test a
// condition node evaluates against the booking's current attributes.
type ConditionPredicate struct {
	Field    string            `json:"field"`
	Operator ConditionOperator `json:"operator"`
	Value    any               `json:"value"`
}

// Evaluate applies the predicate's operator to the given field value.
// equals/not_equals compare numerically when both sides are numeric and as
// strings otherwise; greater_than/less_than require both sides numeric;
// contains is a substring test.
func (p *ConditionPredicate) Evaluate(fieldValue any) (bool, error) {
	switch p.Operator {
	case OperatorEquals:
		return valuesEqual(fieldValue, p.Value), nil
	case OperatorNotEquals:
		return !valuesEqual(fieldValue, p.Value), nil
	case OperatorGreaterThan:
		left, right, err := numericPair(fieldValue, p.Value)
		if err != nil {
			return false, err
		}

		return left > right, nil
	case OperatorLessThan:
		left, right, err := numericPair(fieldValue, p.Value)
		if err != nil {
			return false, err
		}

		return left < right, nil
	case OperatorContains:
		return strings.Contains(stringify(fieldValue), stringify(p.Value)), nil
	default:
		return false, fmt.Errorf("unknown condition operator %q", p.Operator)
	}
}

func valuesEqual(a, b any) bool {
	if left, okA := toFloat(a); okA {
		if right, okB := toFloat(b); okB {
			return left == right
		}
	}

	return stringify(a) == stringify(b)
}

func numericPair(a, b any) (float64, float64, error) {
	left, ok := toFloat(a)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %v", ErrNonNumericValue, a)
	}

	right, ok := toFloat(b)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %v", ErrNonNumericValue, b)
	}

	return left, right, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)

		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v any) string {
	if v == nil {
		return ""
	}

	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}
