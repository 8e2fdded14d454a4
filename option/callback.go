// SPDX-License-Identifier: GPL-3.0-or-later

package option

// Callback holds an invokable value (e.g. a function an ability
// passes to a dependency for result post-processing).
type Callback struct {
	base
}

// NewCallback declares a Callback option.
func NewCallback(name string, opts ...func(*Callback)) *Callback {
	o := &Callback{base: base{name: name}}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithCallbackDefault overrides the default value.
func WithCallbackDefault(v any) func(*Callback) { return func(o *Callback) { o.def = v } }

// WithCallbackComment sets the descriptive comment.
func WithCallbackComment(c string) func(*Callback) { return func(o *Callback) { o.comment = c } }

// WithCallbackOptional marks the option optional.
func WithCallbackOptional(optional bool) func(*Callback) { return func(o *Callback) { o.optional = optional } }

func (o *Callback) IsValid(v any) bool {
	if o.Optional() && isAbsent(v) {
		return true
	}
	if v == nil {
		return false
	}
	return isCallable(v)
}

func (o *Callback) GenerateOneValue(v any) (any, error) {
	if !o.IsValid(v) {
		return nil, ErrInvalid
	}
	return v, nil
}

func (o *Callback) PossibleValues(typed, ref string) []string { return nil }
