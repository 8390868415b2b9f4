package binder

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nutshell-sh/nutshell/core/command"
)

// ValueBinder converts and validates one argument value for a declared
// parameter. The coerce flag selects between strict type matching and
// best-effort conversion; positional binding first tries strict, then
// escalates.
type ValueBinder interface {
	BindValue(p *command.Parameter, value any, coerce bool) (any, error)
}

// TypeChecker is the standard ValueBinder. Nil values bind untouched,
// everything else must match the declared type exactly or, with
// coercion, be convertible to it. A parameter's validator runs after
// conversion.
type TypeChecker struct{}

// BindValue implements ValueBinder.BindValue.
func (TypeChecker) BindValue(p *command.Parameter, value any, coerce bool) (any, error) {
	v, err := convertValue(p.Type, value, coerce)
	if err != nil {
		return nil, &BindError{Code: CodeCannotConvert, Parameter: p.Name, Err: err}
	}
	if p.Validate != nil && v != nil {
		if err := p.Validate(v); err != nil {
			if IsSwallowable(err) {
				return nil, err
			}
			return nil, &BindError{Code: CodeValidationFailed, Parameter: p.Name, Err: err}
		}
	}
	return v, nil
}

func convertValue(t command.ValueType, value any, coerce bool) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch t {
	case command.TypeAny:
		return value, nil

	case command.TypeString:
		if s, ok := value.(string); ok {
			return s, nil
		}
		if !coerce {
			return nil, typeMismatch(t, value)
		}
		return fmt.Sprint(value), nil

	case command.TypeInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case string:
			if !coerce {
				return nil, typeMismatch(t, value)
			}
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("cannot convert %q to int", v)
			}
			return n, nil
		case float64:
			if !coerce {
				return nil, typeMismatch(t, value)
			}
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("cannot convert %v to int without loss", v)
			}
			return int(v), nil
		default:
			return nil, typeMismatch(t, value)
		}

	case command.TypeFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			if !coerce {
				return nil, typeMismatch(t, value)
			}
			return float64(v), nil
		case string:
			if !coerce {
				return nil, typeMismatch(t, value)
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("cannot convert %q to float", v)
			}
			return f, nil
		default:
			return nil, typeMismatch(t, value)
		}

	case command.TypeBool, command.TypeSwitch:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			if !coerce {
				return nil, typeMismatch(t, value)
			}
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("cannot convert %q to bool", v)
			}
			return b, nil
		default:
			return nil, typeMismatch(t, value)
		}

	case command.TypeStringSlice:
		switch v := value.(type) {
		case []string:
			return v, nil
		case string:
			if !coerce {
				return nil, typeMismatch(t, value)
			}
			return []string{v}, nil
		case []any:
			if !coerce {
				return nil, typeMismatch(t, value)
			}
			out := make([]string, 0, len(v))
			for _, item := range v {
				out = append(out, fmt.Sprint(item))
			}
			return out, nil
		default:
			return nil, typeMismatch(t, value)
		}

	default:
		return nil, fmt.Errorf("unsupported parameter type %v", t)
	}
}

func typeMismatch(t command.ValueType, value any) error {
	return fmt.Errorf("value %v (%T) does not match declared type %v", value, value, t)
}

var _ ValueBinder = TypeChecker{}
