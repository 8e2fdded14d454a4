// SPDX-License-Identifier: GPL-3.0-or-later

package option

// stringGenerators mirrors StrOpt._possible_val.
var stringGenerators = map[string]generator{
	"RandString": func(r rng) any { return r.str() },
}

// String holds a free-form text parameter.
type String struct {
	base
}

// NewString declares a String option, defaulting to "RandString".
func NewString(name string, opts ...func(*String)) *String {
	o := &String{base: base{name: name, def: "RandString"}}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithStringDefault overrides the default value.
func WithStringDefault(v string) func(*String) { return func(o *String) { o.def = v } }

// WithStringComment sets the descriptive comment.
func WithStringComment(c string) func(*String) { return func(o *String) { o.comment = c } }

// WithStringOptional marks the option optional.
func WithStringOptional(optional bool) func(*String) { return func(o *String) { o.optional = optional } }

func (o *String) IsValid(v any) bool {
	if o.Optional() && isAbsent(v) {
		return true
	}
	_, ok := v.(string)
	return ok
}

func (o *String) GenerateOneValue(v any) (any, error) {
	if !o.IsValid(v) {
		return nil, ErrInvalid
	}
	if o.Optional() && isAbsent(v) {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, nil
	}
	if gen, ok := matchGenerator(stringGenerators, s); ok {
		return gen(defaultRNG), nil
	}
	return s, nil
}

func (o *String) PossibleValues(typed, ref string) []string {
	return generatorNames(stringGenerators, typed)
}
