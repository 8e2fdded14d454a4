// SPDX-License-Identifier: GPL-3.0-or-later

package option

import (
	"fmt"
	"strings"
)

type cacheEntry struct {
	value any
	seq   Sequence
}

// Set holds the live option values of one ability instance: the
// caller's raw overrides layered over descriptor defaults, and a
// memoized interpreted-value cache cleared on every Set (spec §4.1).
type Set struct {
	order       []string
	descriptors map[string]Descriptor

	callerDefaults map[string]any
	raw            map[string]any
	cache          map[string]cacheEntry

	started bool
}

// NewSet builds a Set declaring the given descriptors, in order.
func NewSet(descs ...Descriptor) *Set {
	s := &Set{
		descriptors:    make(map[string]Descriptor, len(descs)),
		callerDefaults: make(map[string]any),
		raw:            make(map[string]any, len(descs)),
		cache:          make(map[string]cacheEntry, len(descs)),
	}
	for _, d := range descs {
		s.order = append(s.order, d.Name())
		s.descriptors[d.Name()] = d
		s.raw[d.Name()] = d.Default()
	}
	return s
}

// Descriptor returns the named descriptor, or (nil, false) if unknown.
func (s *Set) Descriptor(name string) (Descriptor, bool) {
	d, ok := s.descriptors[name]
	return d, ok
}

// Names returns the declared option names, in declaration order.
func (s *Set) Names() []string { return append([]string(nil), s.order...) }

// MarkStarted freezes the set against further mutation, mirroring the
// ability runtime's CONFIGURED -> RUNNING transition.
func (s *Set) MarkStarted() { s.started = true }

// SetCallerDefault records a caller-supplied default for name, used by
// Clear in place of the descriptor's own default. It does not itself
// change the option's current raw value.
func (s *Set) SetCallerDefault(name string, def any) error {
	if _, ok := s.descriptors[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	s.callerDefaults[name] = def
	return nil
}

// Set assigns a raw value to name. A string ending in "()" is treated
// as an explicit generator invocation: the generator name (without
// the parens) is validated and immediately materialized into a
// concrete value (a single draw), per spec §4.1.
func (s *Set) Set(name string, value any) error {
	if s.started {
		return fmt.Errorf("%w: option %s", ErrStarted, name)
	}
	d, ok := s.descriptors[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}

	if str, ok := value.(string); ok && strings.HasSuffix(str, "()") {
		gen := strings.TrimSuffix(str, "()")
		if !d.IsValid(gen) {
			return fmt.Errorf("%w: %s=%v", ErrInvalid, name, value)
		}
		concrete, err := d.GenerateOneValue(gen)
		if err != nil {
			return err
		}
		s.raw[name] = concrete
		delete(s.cache, name)
		return nil
	}

	if !d.IsValid(value) {
		return fmt.Errorf("%w: %s=%v", ErrInvalid, name, value)
	}
	s.raw[name] = value
	delete(s.cache, name)
	return nil
}

// Get returns the value of name. With interpreted=false it returns
// the stored raw value verbatim. With interpreted=true it returns the
// memoized, generated value, computing it on first access; for
// sequence-valued descriptors (Prefix), bypassCache advances the
// sequence one step, returning [ErrEndOfSequence] once exhausted.
func (s *Set) Get(name string, interpreted, bypassCache bool) (any, error) {
	d, ok := s.descriptors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	if !interpreted {
		return s.raw[name], nil
	}

	entry, cached := s.cache[name]
	if cached && entry.seq != nil {
		if !bypassCache {
			return entry.value, nil
		}
		next, ok := entry.seq.Next()
		if !ok {
			return nil, ErrEndOfSequence
		}
		s.cache[name] = cacheEntry{value: next, seq: entry.seq}
		return next, nil
	}
	if cached && !bypassCache {
		return entry.value, nil
	}

	generated, err := d.GenerateOneValue(s.raw[name])
	if err != nil {
		return nil, err
	}
	if seq, ok := generated.(Sequence); ok {
		first, ok := seq.Next()
		if !ok {
			return nil, ErrEndOfSequence
		}
		s.cache[name] = cacheEntry{value: first, seq: seq}
		return first, nil
	}
	s.cache[name] = cacheEntry{value: generated}
	return generated, nil
}

// Clear restores name (or every option, if name is empty) to its
// layered default: the caller-supplied default if one was set via
// SetCallerDefault, otherwise the descriptor's own default.
func (s *Set) Clear(name string) error {
	if name == "" {
		for _, n := range s.order {
			if err := s.clearOne(n); err != nil {
				return err
			}
		}
		return nil
	}
	if _, ok := s.descriptors[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return s.clearOne(name)
}

func (s *Set) clearOne(name string) error {
	d := s.descriptors[name]
	def, ok := s.callerDefaults[name]
	if !ok {
		def = d.Default()
	}
	s.raw[name] = def
	delete(s.cache, name)
	return nil
}

// Completion returns completion candidates for name, optionally
// filtered by a typed prefix and reference path/context.
func (s *Set) Completion(name, typed, ref string) ([]string, error) {
	d, ok := s.descriptors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return d.PossibleValues(typed, ref), nil
}
