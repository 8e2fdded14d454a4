// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "strconv"

// portGenerators mirrors PortOpt._possible_val.
var portGenerators = map[string]generator{
	"RandPort":           func(r rng) any { return r.number(1, 65535) },
	"RandPrivilegedPort": func(r rng) any { return r.number(1, 1024) },
}

// Port holds a number in [0, 65535].
type Port struct {
	base
}

// NewPort declares a Port option, defaulting to "RandPort".
func NewPort(name string, opts ...func(*Port)) *Port {
	o := &Port{base: base{name: name, def: "RandPort"}}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithPortDefault overrides the default value.
func WithPortDefault(v any) func(*Port) { return func(o *Port) { o.def = v } }

// WithPortComment sets the descriptive comment.
func WithPortComment(c string) func(*Port) { return func(o *Port) { o.comment = c } }

// WithPortOptional marks the option optional.
func WithPortOptional(optional bool) func(*Port) { return func(o *Port) { o.optional = optional } }

func inPortRange(n int64) bool { return n >= 0 && n <= 65535 }

func (o *Port) IsValid(v any) bool {
	if o.Optional() && isAbsent(v) {
		return true
	}
	switch t := v.(type) {
	case int:
		return inPortRange(int64(t))
	case int64:
		return inPortRange(t)
	case string:
		if _, ok := matchGenerator(portGenerators, t); ok {
			return true
		}
		n, err := strconv.ParseInt(t, 10, 64)
		return err == nil && inPortRange(n)
	default:
		return false
	}
}

func (o *Port) GenerateOneValue(v any) (any, error) {
	if isAbsent(v) {
		if o.Optional() {
			return nil, nil
		}
		return nil, ErrInvalid
	}
	switch t := v.(type) {
	case int:
		if !inPortRange(int64(t)) {
			return nil, ErrInvalid
		}
		return int64(t), nil
	case int64:
		if !inPortRange(t) {
			return nil, ErrInvalid
		}
		return t, nil
	case string:
		if gen, ok := matchGenerator(portGenerators, t); ok {
			return gen(defaultRNG), nil
		}
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil || !inPortRange(n) {
			return nil, ErrInvalid
		}
		return n, nil
	}
	return nil, ErrInvalid
}

func (o *Port) PossibleValues(typed, ref string) []string {
	return generatorNames(portGenerators, typed)
}
