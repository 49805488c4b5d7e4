package feature

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// ErrValueNotAvailable is returned when a value is not among the available values of a feature.
var ErrValueNotAvailable = zerr.New("value not available for feature")

/*
Feature represents a discrete property that can be observed on a sample.
It has a name, a kind for the values it takes and, optionally, a finite
set of available values. A feature with no available values accepts
any value of its kind.
*/
type Feature struct {
	name            string
	kind            Kind
	availableValues []Value
}

/*
New takes a name string, a kind and a slice of available values and
returns a feature with them. An empty slice of available values leaves
the feature's domain open.
*/
func New(name string, kind Kind, availableValues []Value) *Feature {
	return &Feature{name, kind, append([]Value(nil), availableValues...)}
}

/*
NewDiscreteFeature takes a name string and a slice of available value strings
and returns a discrete string feature with the given name and available values.
*/
func NewDiscreteFeature(name string, availableValues []string) *Feature {
	values := make([]Value, 0, len(availableValues))
	for _, av := range availableValues {
		values = append(values, StringValue(av))
	}
	return &Feature{name, StringKind, values}
}

/*
Name returns a string with the name of the feature
*/
func (f *Feature) Name() string {
	return f.name
}

// Kind returns the kind of the values the feature takes.
func (f *Feature) Kind() Kind {
	return f.kind
}

/*
AvailableValues returns the values available for the feature, empty
when its domain is open.
*/
func (f *Feature) AvailableValues() []Value {
	return append([]Value(nil), f.availableValues...)
}

/*
Valid receives a value and returns a boolean and an error. When the value
has the feature's kind and is included in its available values (or the
feature has none), the method returns true and nil. Otherwise it returns
false and an error describing the reason.
*/
func (f *Feature) Valid(v Value) (bool, error) {
	if v.Kind() != f.kind {
		return false, zerr.Wrap(ErrInvalidValue, fmt.Sprintf("feature %s expects %v value, got %v value %q", f.name, f.kind, v.Kind(), v))
	}
	if len(f.availableValues) == 0 {
		return true, nil
	}
	for _, av := range f.availableValues {
		if av == v {
			return true, nil
		}
	}
	return false, zerr.With(zerr.Wrap(ErrValueNotAvailable, fmt.Sprintf("feature %s got unknown value %q", f.name, v)), "feature", f.name)
}

/*
Parse takes a raw string and returns the value it represents for the
feature, or an error if it cannot be parsed as the feature's kind or is
not one of its available values.
*/
func (f *Feature) Parse(raw string) (Value, error) {
	v, err := Parse(f.kind, raw)
	if err != nil {
		return Value{}, zerr.Wrap(err, fmt.Sprintf("feature %s", f.name))
	}
	if _, err = f.Valid(v); err != nil {
		return Value{}, err
	}
	return v, nil
}

/*
Convert takes a Go value, as returned by a database driver or a decoder,
and returns the value it represents for the feature, or an error if it
cannot be converted to the feature's kind or is not one of its available
values.
*/
func (f *Feature) Convert(x interface{}) (Value, error) {
	v, err := Convert(f.kind, x)
	if err != nil {
		return Value{}, zerr.Wrap(err, fmt.Sprintf("feature %s", f.name))
	}
	if _, err = f.Valid(v); err != nil {
		return Value{}, err
	}
	return v, nil
}

func (f *Feature) String() string {
	if len(f.availableValues) == 0 {
		return fmt.Sprintf("%s (%v)", f.name, f.kind)
	}
	values := make([]string, 0, len(f.availableValues))
	for _, av := range f.availableValues {
		values = append(values, av.String())
	}
	return fmt.Sprintf("%s (%v: %s)", f.name, f.kind, strings.Join(values, ", "))
}
