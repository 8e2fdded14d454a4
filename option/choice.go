// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "strings"

// Choice holds exactly one value out of a non-empty ordered
// enumeration (spec §4.1, original source's ChoiceOpt).
type Choice struct {
	base
	choices []string
}

// NewChoice declares a Choice option over a non-empty ordered list.
// It panics if choices is empty, matching the original source's
// ValueError at construction time.
//
// When the option is not optional and no default is supplied, the
// first choice becomes the default: spec §9 explicitly preserves this
// behavior from the original source rather than the alternative of
// yielding an absent value.
func NewChoice(name string, choices []string, opts ...func(*Choice)) *Choice {
	if len(choices) == 0 {
		panic("option: Choice requires a non-empty choice list")
	}
	o := &Choice{base: base{name: name}, choices: append([]string(nil), choices...)}
	for _, apply := range opts {
		apply(o)
	}
	if !o.optional && o.def == nil {
		o.def = o.choices[0]
	}
	return o
}

// WithChoiceDefault overrides the default value.
func WithChoiceDefault(v string) func(*Choice) { return func(o *Choice) { o.def = v } }

// WithChoiceComment sets the descriptive comment.
func WithChoiceComment(c string) func(*Choice) { return func(o *Choice) { o.comment = c } }

// WithChoiceOptional marks the option optional.
func WithChoiceOptional(optional bool) func(*Choice) { return func(o *Choice) { o.optional = optional } }

// Choices returns the ordered enumeration, optionally filtered by a
// typed prefix.
func (o *Choice) Choices(typed string) []string {
	if typed == "" {
		return append([]string(nil), o.choices...)
	}
	var out []string
	for _, c := range o.choices {
		if strings.HasPrefix(c, typed) {
			out = append(out, c)
		}
	}
	return out
}

func (o *Choice) IsValid(v any) bool {
	if o.Optional() && isAbsent(v) {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, c := range o.choices {
		if c == s {
			return true
		}
	}
	return false
}

// GenerateOneValue returns nil when v is absent and the option is
// optional, the first choice when v is absent and the option is not
// optional, or v itself when it is a valid choice.
func (o *Choice) GenerateOneValue(v any) (any, error) {
	if isAbsent(v) {
		if o.Optional() {
			return nil, nil
		}
		return o.choices[0], nil
	}
	if o.IsValid(v) {
		return v, nil
	}
	return nil, ErrInvalid
}

func (o *Choice) PossibleValues(typed, ref string) []string { return o.Choices(typed) }
