// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "net/netip"

// ipGenerators mirrors IpOpt._possible_val.
var ipGenerators = map[string]generator{
	"RandIP4":                func(r rng) any { return r.ipv4() },
	"RandIP6":                func(r rng) any { return r.ipv6() },
	"RandIP_classA":          func(r rng) any { return r.ipv4Class(0, 127) },
	"RandIP_classB":          func(r rng) any { return r.ipv4Class(128, 191) },
	"RandIP_classC":          func(r rng) any { return r.ipv4Class(192, 223) },
	"RandIP_classD":          func(r rng) any { return r.ipv4Class(224, 239) },
	"RandIP_classD_Multicast": func(r rng) any { return r.ipv4Class(224, 239) },
	"RandIP_classE":          func(r rng) any { return r.ipv4Class(240, 255) },
	"RandIP_classE_Reserved": func(r rng) any { return r.ipv4Class(240, 255) },
}

// IP holds an IPv4 or IPv6 address, accepting known generator names in
// place of a literal address (spec §4.1, original source's IpOpt).
type IP struct {
	base
}

// NewIP declares an IP option. The zero-value default is "RandIP4",
// matching the original source.
func NewIP(name string, opts ...func(*IP)) *IP {
	o := &IP{base: base{name: name, def: "RandIP4"}}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithIPDefault overrides the default value.
func WithIPDefault(v string) func(*IP) { return func(o *IP) { o.def = v } }

// WithIPComment sets the descriptive comment.
func WithIPComment(c string) func(*IP) { return func(o *IP) { o.comment = c } }

// WithIPOptional marks the option optional.
func WithIPOptional(optional bool) func(*IP) { return func(o *IP) { o.optional = optional } }

func (o *IP) IsValid(v any) bool {
	if o.Optional() && isAbsent(v) {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	if _, err := netip.ParseAddr(s); err == nil {
		return true
	}
	_, ok = matchGenerator(ipGenerators, s)
	return ok
}

func (o *IP) GenerateOneValue(v any) (any, error) {
	if !o.IsValid(v) {
		return nil, ErrInvalid
	}
	if o.Optional() && isAbsent(v) {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	if gen, ok := matchGenerator(ipGenerators, s); ok {
		return gen(defaultRNG), nil
	}
	return s, nil
}

func (o *IP) PossibleValues(typed, ref string) []string {
	return generatorNames(ipGenerators, typed)
}
