// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "strings"

// base factors out the fields and accessors every descriptor shares,
// mirroring the original source's ModuleOption base class.
type base struct {
	name     string
	comment  string
	optional bool
	def      any
}

func (b base) Name() string    { return b.name }
func (b base) Comment() string { return b.comment }
func (b base) Optional() bool  { return b.optional }
func (b base) Default() any    { return b.def }

// isAbsent reports whether v is the "caller passed nothing" sentinel:
// a untyped nil or the literal string "None".
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok && s == "None" {
		return true
	}
	return false
}

// generator is a named value-drawing function shared by every kind
// with possible-value generators (IP, MAC, String, Number, Port),
// mirroring ModuleOptionWithPossibleValues._possible_val.
type generator func(rng) any

// matchGenerator returns the generator whose name v starts with, if
// any, mirroring the source's 0 < len([... if v.startswith(pv)]) check.
func matchGenerator(table map[string]generator, v string) (generator, bool) {
	for name, gen := range table {
		if strings.HasPrefix(v, name) {
			return gen, true
		}
	}
	return nil, false
}

func generatorNames(table map[string]generator, typed string) []string {
	var out []string
	for name := range table {
		if typed == "" || strings.HasPrefix(name, typed) {
			out = append(out, name)
		}
	}
	return out
}
