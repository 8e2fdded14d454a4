// SPDX-License-Identifier: GPL-3.0-or-later

package option

// Descriptor declares one typed parameter of an ability: its name,
// default, optionality, and kind-specific validation/generation/
// completion behavior (spec §4.1).
type Descriptor interface {
	// Name is unique within the owning ability's Set.
	Name() string

	// Comment describes what the option does; may be empty.
	Comment() string

	// Optional reports whether the sentinel absent value (nil, or the
	// literal string "None") is acceptable for this option.
	Optional() bool

	// Default returns the descriptor-level default value. It always
	// satisfies IsValid.
	Default() any

	// IsValid reports whether v is an acceptable raw value.
	IsValid(v any) bool

	// GenerateOneValue materializes a concrete value from a raw
	// value, resolving symbolic generators (e.g. "RandIP4") into
	// drawn values. For kinds with a lazy sequence (Prefix), the
	// returned value implements [Sequence].
	GenerateOneValue(v any) (any, error)

	// PossibleValues returns completion candidates, optionally
	// filtered by a typed prefix and a reference path/context.
	PossibleValues(typed, ref string) []string
}

// Sequence is a restartable iterator over generated values, used by
// kinds whose GenerateOneValue produces more than one candidate over
// time (currently only Prefix). Next returns the next value and
// whether one was available; once exhausted it keeps returning
// ("", false).
type Sequence interface {
	Next() (string, bool)
}
