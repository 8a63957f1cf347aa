package field

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/labwire/astm"
)

// IntegerField stores integral values as decimal wire text.
type IntegerField struct {
	base
}

// Integer returns a new integer field with the given name.
func Integer(name string) *IntegerField {
	return &IntegerField{base: base{name: name, kind: astm.KindInteger}}
}

// Default sets the value resolved when the field is absent.
func (f *IntegerField) Default(n int) *IntegerField {
	f.def = n
	return f
}

// DefaultFunc sets a factory invoked fresh whenever the absent field
// resolves its default.
func (f *IntegerField) DefaultFunc(fn func() int) *IntegerField {
	f.defFunc = func() any { return fn() }
	return f
}

// Required marks the field as rejecting nil assignments.
func (f *IntegerField) Required() *IntegerField {
	f.required = true
	return f
}

// Encode accepts any Go integer kind, or digit-only wire text. Signs are
// permitted on typed integers but not in text, which mirrors how
// instruments emit sequence numbers.
func (f *IntegerField) Encode(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case string, []byte:
		s, _ := asText(v)
		if !isDigits(s) {
			return nil, astm.NewValueError(f.name, s, "integer text must be digits")
		}
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, astm.NewValueError(f.name, s, "integer text out of range")
		}
		return strconv.FormatInt(parsed, 10), nil
	}
	return nil, astm.NewValueTypeError(f.name, v, "integer value or digit text")
}

// Decode parses the stored decimal text into an int.
func (f *IntegerField) Decode(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, astm.NewValueTypeError(f.name, raw, "stored integer text")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, astm.NewValueError(f.name, s, "stored text is not an integer")
	}
	return n, nil
}

// DecimalField stores fixed-point values as decimal wire text.
type DecimalField struct {
	base
}

// Decimal returns a new decimal field with the given name.
func Decimal(name string) *DecimalField {
	return &DecimalField{base: base{name: name, kind: astm.KindDecimal}}
}

// Default sets the value resolved when the field is absent.
func (f *DecimalField) Default(d decimal.Decimal) *DecimalField {
	f.def = d
	return f
}

// DefaultFunc sets a factory invoked fresh whenever the absent field
// resolves its default.
func (f *DecimalField) DefaultFunc(fn func() decimal.Decimal) *DecimalField {
	f.defFunc = func() any { return fn() }
	return f
}

// Required marks the field as rejecting nil assignments.
func (f *DecimalField) Required() *DecimalField {
	f.required = true
	return f
}

// Encode accepts Go integer kinds, floats, decimal.Decimal, or decimal
// wire text, storing the canonical decimal rendering.
func (f *DecimalField) Encode(v any) (any, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n.String(), nil
	case int:
		return decimal.NewFromInt(int64(n)).String(), nil
	case int8:
		return decimal.NewFromInt(int64(n)).String(), nil
	case int16:
		return decimal.NewFromInt(int64(n)).String(), nil
	case int32:
		return decimal.NewFromInt(int64(n)).String(), nil
	case int64:
		return decimal.NewFromInt(n).String(), nil
	case uint:
		return decimal.NewFromUint64(uint64(n)).String(), nil
	case uint8:
		return decimal.NewFromUint64(uint64(n)).String(), nil
	case uint16:
		return decimal.NewFromUint64(uint64(n)).String(), nil
	case uint32:
		return decimal.NewFromUint64(uint64(n)).String(), nil
	case uint64:
		return decimal.NewFromUint64(n).String(), nil
	case float32:
		return decimal.NewFromFloat32(n).String(), nil
	case float64:
		return decimal.NewFromFloat(n).String(), nil
	case string, []byte:
		s, _ := asText(v)
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, astm.NewValueError(f.name, s, "text is not a decimal")
		}
		return d.String(), nil
	}
	return nil, astm.NewValueTypeError(f.name, v, "numeric value or decimal text")
}

// Decode parses the stored decimal text.
func (f *DecimalField) Decode(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, astm.NewValueTypeError(f.name, raw, "stored decimal text")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, astm.NewValueError(f.name, s, "stored text is not a decimal")
	}
	return d, nil
}

// isDigits reports if s is non-empty ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
