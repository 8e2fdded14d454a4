// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "strings"

// Boolean holds a true/false flag, accepting Go bools or the
// case-insensitive strings "true"/"false".
type Boolean struct {
	base
}

// NewBoolean declares a Boolean option, defaulting to false.
func NewBoolean(name string, opts ...func(*Boolean)) *Boolean {
	o := &Boolean{base: base{name: name, def: false}}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithBooleanDefault overrides the default value.
func WithBooleanDefault(v bool) func(*Boolean) { return func(o *Boolean) { o.def = v } }

// WithBooleanComment sets the descriptive comment.
func WithBooleanComment(c string) func(*Boolean) { return func(o *Boolean) { o.comment = c } }

// WithBooleanOptional marks the option optional.
func WithBooleanOptional(optional bool) func(*Boolean) { return func(o *Boolean) { o.optional = optional } }

func (o *Boolean) IsValid(v any) bool {
	if o.Optional() && isAbsent(v) {
		return true
	}
	switch t := v.(type) {
	case bool:
		return true
	case string:
		s := strings.ToLower(t)
		return s == "true" || s == "false"
	default:
		return false
	}
}

func (o *Boolean) GenerateOneValue(v any) (any, error) {
	if isAbsent(v) {
		if o.Optional() {
			return nil, nil
		}
		return nil, ErrInvalid
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		if strings.ToLower(t) == "true" {
			return true, nil
		}
		if strings.ToLower(t) == "false" {
			return false, nil
		}
	}
	return nil, ErrInvalid
}

func (o *Boolean) PossibleValues(typed, ref string) []string {
	return generatorNames(map[string]generator{"true": nil, "false": nil}, typed)
}
