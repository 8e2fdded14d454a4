// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "net/netip"

// prefixSequence implements [Sequence] over the usable host addresses
// of a prefix, in either ascending order or a cyclic permuted order
// (see [cyclicPermutation]).
type prefixSequence struct {
	prefix  netip.Prefix
	count   uint64
	next    uint64 // next ascending index to emit (1-based), used when cyclic is nil
	cyclic  *cyclicPermutation
}

func newPrefixSequence(p netip.Prefix, cyclicOrder bool) *prefixSequence {
	count := addrUsableCount(p)
	s := &prefixSequence{prefix: p, count: count, next: 1}
	if cyclicOrder {
		s.cyclic = newCyclicPermutation(count)
	}
	return s
}

func (s *prefixSequence) Next() (string, bool) {
	var idx uint64
	var ok bool
	if s.cyclic != nil {
		idx, ok = s.cyclic.next()
	} else {
		if s.next > s.count {
			return "", false
		}
		idx, ok = s.next, true
		s.next++
	}
	if !ok {
		return "", false
	}
	return addrAt(s.prefix, idx).String(), true
}

// Prefix holds an IPv4 or IPv6 CIDR and generates a lazy sequence over
// its usable host addresses (spec §4.1, original source's PrefixOpt).
type Prefix struct {
	base
	ordered bool
}

// NewPrefix declares a Prefix option. The zero-value default is
// "127.0.0.0/8", matching the original source.
func NewPrefix(name string, opts ...func(*Prefix)) *Prefix {
	o := &Prefix{base: base{name: name, def: "127.0.0.0/8"}}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithPrefixDefault overrides the default CIDR.
func WithPrefixDefault(v string) func(*Prefix) { return func(o *Prefix) { o.def = v } }

// WithPrefixComment sets the descriptive comment.
func WithPrefixComment(c string) func(*Prefix) { return func(o *Prefix) { o.comment = c } }

// WithPrefixOptional marks the option optional.
func WithPrefixOptional(optional bool) func(*Prefix) { return func(o *Prefix) { o.optional = optional } }

// WithPrefixOrdered requests ascending order instead of the default
// cyclic permuted order.
func WithPrefixOrdered(ordered bool) func(*Prefix) { return func(o *Prefix) { o.ordered = ordered } }

func (o *Prefix) IsValid(v any) bool {
	if o.Optional() && isAbsent(v) {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := netip.ParsePrefix(s)
	return err == nil
}

// GenerateOneValue returns a [Sequence] over the prefix's usable host
// addresses; callers advance it via the owning [Set]'s bypass-cache
// reads.
func (o *Prefix) GenerateOneValue(v any) (any, error) {
	if !o.IsValid(v) {
		return nil, ErrInvalid
	}
	s, ok := v.(string)
	if !ok {
		return nil, ErrInvalid
	}
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return nil, ErrInvalid
	}
	return newPrefixSequence(p, o.ordered), nil
}

func (o *Prefix) PossibleValues(typed, ref string) []string { return nil }
