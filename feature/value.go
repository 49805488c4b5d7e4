package feature

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Kind identifies the discrete domain a Value belongs to.
type Kind uint8

const (
	// StringKind values are arbitrary category labels.
	StringKind Kind = iota
	// IntKind values are integers used as categories, never as magnitudes.
	IntKind
	// BoolKind values are true or false.
	BoolKind
)

var (
	// ErrUnknownKind is returned when parsing a kind name that is not string, int or bool.
	ErrUnknownKind = zerr.New("unknown feature kind")

	// ErrContinuousKind is returned for continuous features, which cannot be split on.
	ErrContinuousKind = zerr.New("continuous features are not supported")

	// ErrInvalidValue is returned when a raw value cannot be read as a value of the requested kind.
	ErrInvalidValue = zerr.New("invalid value")

	// ErrUnsupportedType is returned when converting a Go value with no discrete counterpart.
	ErrUnsupportedType = zerr.New("unsupported value type")

	// ErrMissingValue is returned when a value is absent (nil, empty or '?').
	ErrMissingValue = zerr.New("missing value")
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "string"
	case IntKind:
		return "int"
	case BoolKind:
		return "bool"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

/*
ParseKind takes the name of a kind as written in feature metadata
(string, int or bool) and returns the corresponding Kind.
*/
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "str", "text":
		return StringKind, nil
	case "int", "integer":
		return IntKind, nil
	case "bool", "boolean":
		return BoolKind, nil
	case "continuous", "float", "real", "number":
		return 0, zerr.With(zerr.Wrap(ErrContinuousKind, fmt.Sprintf("parsing kind %q", name)), "kind", name)
	}
	return 0, zerr.With(zerr.Wrap(ErrUnknownKind, fmt.Sprintf("parsing kind %q", name)), "kind", name)
}

/*
Value is a discrete value taken by a feature on a sample: a string, an
integer or a boolean. Values are comparable with == and can be used as
map keys. Two values of different kinds are never equal.
*/
type Value struct {
	kind Kind
	str  string
	num  int64
	flag bool
}

// StringValue returns a Value of StringKind holding s.
func StringValue(s string) Value {
	return Value{kind: StringKind, str: s}
}

// IntValue returns a Value of IntKind holding i.
func IntValue(i int64) Value {
	return Value{kind: IntKind, num: i}
}

// BoolValue returns a Value of BoolKind holding b.
func BoolValue(b bool) Value {
	return Value{kind: BoolKind, flag: b}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Equal reports whether v and o hold the same kind and content.
func (v Value) Equal(o Value) bool {
	return v == o
}

/*
Interface returns the value as a plain Go value: a string, an int64
or a bool depending on its kind.
*/
func (v Value) Interface() interface{} {
	switch v.kind {
	case IntKind:
		return v.num
	case BoolKind:
		return v.flag
	}
	return v.str
}

func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.num, 10)
	case BoolKind:
		return strconv.FormatBool(v.flag)
	}
	return v.str
}

// MarshalJSON encodes the value as a JSON string, number or boolean.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

/*
Parse takes a kind and a raw string and returns the Value of that kind
it represents. Strings are taken verbatim, integers in base 10 and
booleans in any form accepted by strconv.ParseBool.
*/
func Parse(kind Kind, raw string) (Value, error) {
	switch kind {
	case StringKind:
		return StringValue(raw), nil
	case IntKind:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Value{}, zerr.With(zerr.Wrap(ErrInvalidValue, fmt.Sprintf("parsing %q as int", raw)), "raw", raw)
		}
		return IntValue(i), nil
	case BoolKind:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, zerr.With(zerr.Wrap(ErrInvalidValue, fmt.Sprintf("parsing %q as bool", raw)), "raw", raw)
		}
		return BoolValue(b), nil
	}
	return Value{}, zerr.Wrap(ErrUnknownKind, fmt.Sprintf("parsing %q as %v", raw, kind))
}

/*
ValueOf takes a Go value as returned by a database driver or a decoder
and returns the Value it corresponds to, inferring the kind from its
type. Floats are accepted only when integral, since continuous values
cannot be split on.
*/
func ValueOf(x interface{}) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, ErrMissingValue
	case Value:
		return t, nil
	case string:
		return StringValue(t), nil
	case []byte:
		return StringValue(string(t)), nil
	case bool:
		return BoolValue(t), nil
	case int:
		return IntValue(int64(t)), nil
	case int8:
		return IntValue(int64(t)), nil
	case int16:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint8:
		return IntValue(int64(t)), nil
	case uint16:
		return IntValue(int64(t)), nil
	case uint32:
		return IntValue(int64(t)), nil
	case float32:
		return integralFloat(float64(t))
	case float64:
		return integralFloat(t)
	}
	return Value{}, zerr.Wrap(ErrUnsupportedType, fmt.Sprintf("converting %v of type %T", x, x))
}

func integralFloat(f float64) (Value, error) {
	if math.Trunc(f) != f || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return Value{}, zerr.Wrap(ErrContinuousKind, fmt.Sprintf("converting non-integral number %v", f))
	}
	return IntValue(int64(f)), nil
}

/*
Convert takes a kind and a Go value and returns the Value of that kind
it represents, parsing strings and converting between integers and
booleans where the conversion is lossless.
*/
func Convert(kind Kind, x interface{}) (Value, error) {
	switch t := x.(type) {
	case string:
		return Parse(kind, t)
	case []byte:
		return Parse(kind, string(t))
	}
	v, err := ValueOf(x)
	if err != nil {
		return Value{}, err
	}
	if v.kind == kind {
		return v, nil
	}
	switch {
	case kind == StringKind:
		return StringValue(v.String()), nil
	case kind == BoolKind && v.kind == IntKind && (v.num == 0 || v.num == 1):
		return BoolValue(v.num == 1), nil
	}
	return Value{}, zerr.Wrap(ErrInvalidValue, fmt.Sprintf("converting %v of type %T to %v", x, x, kind))
}
