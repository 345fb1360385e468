package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	errors "github.com/mbRabaa/microservice-paiement/internal"
	"github.com/spf13/cast"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

// ValidationBuilder runs checks in registration order and stops at the first
// failure.
type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

// Required rejects absent and falsy values. Numeric zero counts as present.
func (fv *FieldValidator) Required(expected string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if IsBlank(value) {
			return errors.NewMissingFieldError(fv.FieldName, expected)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Number() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if _, err := ToNumber(value); err != nil {
			return errors.NewInvalidAmountError(fv.FieldName, TypeName(value))
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		s, _ := value.(string)
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return errors.NewInvalidPaymentModeError(fv.FieldName, "Must be "+quoteList(allowed))
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsBlank reports whether value is absent or one of the falsy values a
// client may send in place of a missing field.
func IsBlank(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case *string:
		return v == nil || *v == ""
	case bool:
		return !v
	case json.Number:
		return v == ""
	}
	return false
}

var radixPrefixes = map[string]int{"0x": 16, "0X": 16, "0o": 8, "0O": 8, "0b": 2, "0B": 2}

// parseNumericString reads s the way a loose numeric parse does: surrounding
// whitespace is ignored, a blank string is 0 and unsigned 0x/0o/0b literals
// are integers in that base.
func parseNumericString(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if len(s) > 2 {
		if base, ok := radixPrefixes[s[:2]]; ok {
			if strings.Contains(s, "_") {
				return 0, fmt.Errorf("%q is not a number", s)
			}
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, fmt.Errorf("%q is not a number", s)
			}
			return float64(n), nil
		}
	}
	if strings.Contains(s, "_") {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return cast.ToFloat64E(s)
}

// ToNumber coerces numbers, numeric strings and booleans to a finite float64.
func ToNumber(value interface{}) (float64, error) {
	var (
		f   float64
		err error
	)
	switch v := value.(type) {
	case nil:
		return 0, fmt.Errorf("value is missing")
	case string:
		f, err = parseNumericString(v)
	case json.Number:
		f, err = cast.ToFloat64E(v.String())
	case map[string]interface{}, []interface{}:
		return 0, fmt.Errorf("%s is not a number", TypeName(v))
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", value)
	}
	return f, nil
}

// TypeName names the JSON type of a decoded value.
func TypeName(value interface{}) string {
	switch value.(type) {
	case nil:
		return "undefined"
	case string, *string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float32, float64, int, int32, int64, uint, uint32, uint64:
		return "number"
	case map[string]interface{}, []interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	if len(quoted) <= 1 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
