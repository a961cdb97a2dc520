package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind is the declared shape of an input field.
type Kind int

const (
	KindNumeric Kind = iota + 1
	KindEnum
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindEnum:
		return "enumerated"
	case KindBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Field declares one input of a calculator.
type Field struct {
	Key      string
	Required bool
	Kind     Kind
	// Allowed lists the accepted values of an enumerated field.
	Allowed []string
	// Min and Max bound a numeric field; nil means unbounded.
	Min *float64
	Max *float64
	// MinExclusive turns Min into a strict lower bound.
	MinExclusive bool
	// Whole restricts a numeric field to integral values.
	Whole bool
}

// FieldDescriptor is the wire-friendly view of a Field.
type FieldDescriptor struct {
	Key          string   `json:"key"`
	Required     bool     `json:"required"`
	Kind         string   `json:"kind"`
	Allowed      []string `json:"allowed,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	MinExclusive bool     `json:"min_exclusive,omitempty"`
	Integer      bool     `json:"integer,omitempty"`
}

// Number declares a required numeric field with no bounds.
func Number(key string) Field {
	return Field{Key: key, Required: true, Kind: KindNumeric}
}

// Bool declares a required boolean field.
func Bool(key string) Field {
	return Field{Key: key, Required: true, Kind: KindBool}
}

// Enum declares a required enumerated field.
func Enum(key string, allowed ...string) Field {
	return Field{Key: key, Required: true, Kind: KindEnum, Allowed: allowed}
}

// Optional marks the field as not required.
func (f Field) Optional() Field {
	f.Required = false
	return f
}

// Between bounds a numeric field to [lo, hi].
func (f Field) Between(lo, hi float64) Field {
	f.Min, f.Max = &lo, &hi
	f.MinExclusive = false
	return f
}

// AtLeast sets an inclusive lower bound on a numeric field.
func (f Field) AtLeast(lo float64) Field {
	f.Min = &lo
	f.MinExclusive = false
	return f
}

// Positive requires a numeric field to be strictly greater than zero.
func (f Field) Positive() Field {
	zero := 0.0
	f.Min = &zero
	f.MinExclusive = true
	return f
}

// Integer restricts a numeric field to whole numbers.
func (f Field) Integer() Field {
	f.Whole = true
	return f
}

// inRange reports whether v satisfies the numeric bounds of f.
func (f Field) inRange(v float64) bool {
	if f.Whole && v != math.Trunc(v) {
		return false
	}
	if f.Min != nil {
		if f.MinExclusive && v <= *f.Min {
			return false
		}
		if !f.MinExclusive && v < *f.Min {
			return false
		}
	}
	if f.Max != nil && v > *f.Max {
		return false
	}
	return true
}

func (f Field) check() error {
	if strings.TrimSpace(f.Key) == "" {
		return errors.New("input key is required")
	}
	switch f.Kind {
	case KindNumeric:
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return fmt.Errorf("input %q: min %v exceeds max %v", f.Key, *f.Min, *f.Max)
		}
	case KindEnum:
		if len(f.Allowed) == 0 {
			return fmt.Errorf("input %q: enumerated field needs allowed values", f.Key)
		}
	case KindBool:
	default:
		return fmt.Errorf("input %q: unknown kind %d", f.Key, int(f.Kind))
	}
	return nil
}

func (f Field) describe() FieldDescriptor {
	d := FieldDescriptor{Key: f.Key, Required: f.Required, Kind: f.Kind.String()}
	switch f.Kind {
	case KindEnum:
		d.Allowed = append([]string(nil), f.Allowed...)
	case KindNumeric:
		if f.Min != nil {
			lo := *f.Min
			d.Min = &lo
			d.MinExclusive = f.MinExclusive
		}
		if f.Max != nil {
			hi := *f.Max
			d.Max = &hi
		}
		d.Integer = f.Whole
	}
	return d
}
