// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "github.com/vishvananda/netlink"

// NIC holds the name of a local network interface. When the
// interface table cannot be introspected (non-Linux platforms, or no
// permission to open netlink), validation is skipped and any name is
// accepted, matching the original source's "pyroute2 unavailable"
// fallback.
type NIC struct {
	base
}

// NewNIC declares a NIC option.
func NewNIC(name string, opts ...func(*NIC)) *NIC {
	o := &NIC{base: base{name: name}}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithNICDefault overrides the default value.
func WithNICDefault(v string) func(*NIC) { return func(o *NIC) { o.def = v } }

// WithNICComment sets the descriptive comment.
func WithNICComment(c string) func(*NIC) { return func(o *NIC) { o.comment = c } }

// WithNICOptional marks the option optional.
func WithNICOptional(optional bool) func(*NIC) { return func(o *NIC) { o.optional = optional } }

func (o *NIC) IsValid(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	links, err := netlink.LinkList()
	if err != nil {
		// Interface table unavailable: skip the check, as the
		// original source does when pyroute2 is missing.
		return true
	}
	for _, l := range links {
		if l.Attrs().Name == s {
			return true
		}
	}
	return false
}

func (o *NIC) GenerateOneValue(v any) (any, error) {
	if !o.IsValid(v) {
		return nil, ErrInvalid
	}
	return v, nil
}

func (o *NIC) PossibleValues(typed, ref string) []string {
	links, err := netlink.LinkList()
	if err != nil {
		return nil
	}
	var out []string
	for _, l := range links {
		name := l.Attrs().Name
		if typed == "" || len(name) >= len(typed) && name[:len(typed)] == typed {
			out = append(out, name)
		}
	}
	return out
}
