// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "strconv"

// numberGenerators mirrors NumOpt._possible_val.
var numberGenerators = map[string]generator{
	"RandByte":  func(r rng) any { return r.number(0, 1<<8-1) },
	"RandShort": func(r rng) any { return r.number(0, 1<<16-1) },
	"RandInt":   func(r rng) any { return r.number(0, 1<<32-1) },
	"RandLong":  func(r rng) any { return r.number(0, 1<<62-1) }, // upper bound 1<<62-1, not the full unsigned 64-bit range
	"RandSByte": func(r rng) any { return r.number(-(1 << 7), 1<<7-1) },
	"RandSShort": func(r rng) any { return r.number(-(1 << 15), 1<<15-1) },
	"RandSInt":  func(r rng) any { return r.number(-(1 << 31), 1<<31-1) },
	"RandSLong": func(r rng) any { return r.number(-(1 << 62), 1<<62-1) },
}

// Number holds an integer or floating-point parameter, accepting
// either a literal numeric string or a named generator.
type Number struct {
	base
}

// NewNumber declares a Number option, defaulting to "RandByte".
func NewNumber(name string, opts ...func(*Number)) *Number {
	o := &Number{base: base{name: name, def: "RandByte"}}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithNumberDefault overrides the default value.
func WithNumberDefault(v any) func(*Number) { return func(o *Number) { o.def = v } }

// WithNumberComment sets the descriptive comment.
func WithNumberComment(c string) func(*Number) { return func(o *Number) { o.comment = c } }

// WithNumberOptional marks the option optional.
func WithNumberOptional(optional bool) func(*Number) { return func(o *Number) { o.optional = optional } }

func (o *Number) IsValid(v any) bool {
	if o.Optional() && isAbsent(v) {
		return true
	}
	switch v.(type) {
	case int, int64, float64:
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	_, ok = matchGenerator(numberGenerators, s)
	return ok
}

func (o *Number) GenerateOneValue(v any) (any, error) {
	if isAbsent(v) {
		if o.Optional() {
			return nil, nil
		}
		return nil, ErrInvalid
	}
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		return t, nil
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, nil
		}
		if gen, ok := matchGenerator(numberGenerators, t); ok {
			return gen(defaultRNG), nil
		}
	}
	return nil, ErrInvalid
}

func (o *Number) PossibleValues(typed, ref string) []string {
	return generatorNames(numberGenerators, typed)
}
