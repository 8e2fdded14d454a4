// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "regexp"

var (
	macColonForm  = regexp.MustCompile(`(?i)^(?:(?:[0-9a-f]{2}|\*):){5}(?:[0-9a-f]{2}|\*)$`)
	macCompactForm = regexp.MustCompile(`(?i)^[0-9a-f]{12}$`)
)

// macGenerators mirrors MacOpt._possible_val.
var macGenerators = map[string]generator{
	"RandMac":          func(r rng) any { return r.mac() },
	"RandMulticastMac": func(r rng) any { return r.multicastMAC() },
	"MacFF":            func(rng) any { return "ff:ff:ff:ff:ff:ff" },
	"Mac00":            func(rng) any { return "00:00:00:00:00:00" },
}

// MAC holds a hardware address, in colon-separated (wildcards allowed
// per byte via '*'), 12-hex-compact, or named-generator form.
type MAC struct {
	base
}

// NewMAC declares a MAC option. The zero-value default is "RandMac".
func NewMAC(name string, opts ...func(*MAC)) *MAC {
	o := &MAC{base: base{name: name, def: "RandMac"}}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithMACDefault overrides the default value.
func WithMACDefault(v string) func(*MAC) { return func(o *MAC) { o.def = v } }

// WithMACComment sets the descriptive comment.
func WithMACComment(c string) func(*MAC) { return func(o *MAC) { o.comment = c } }

// WithMACOptional marks the option optional.
func WithMACOptional(optional bool) func(*MAC) { return func(o *MAC) { o.optional = optional } }

func (o *MAC) IsValid(v any) bool {
	if o.Optional() && isAbsent(v) {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	if macColonForm.MatchString(s) || macCompactForm.MatchString(s) {
		return true
	}
	_, ok = matchGenerator(macGenerators, s)
	return ok
}

func (o *MAC) GenerateOneValue(v any) (any, error) {
	if !o.IsValid(v) {
		return nil, ErrInvalid
	}
	if o.Optional() && isAbsent(v) {
		return nil, nil
	}
	s := v.(string)
	if gen, ok := matchGenerator(macGenerators, s); ok {
		return gen(defaultRNG), nil
	}
	return s, nil
}

func (o *MAC) PossibleValues(typed, ref string) []string {
	return generatorNames(macGenerators, typed)
}
