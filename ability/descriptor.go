// SPDX-License-Identifier: GPL-3.0-or-later

package ability

import (
	"fmt"

	"github.com/ANSSI-FR/packetweaver/option"
)

// AbilityType classifies an ability descriptor the way the original
// registry does: a STANDALONE ability is runnable on its own from the
// CLI, while a COMPONENT ability only makes sense wired underneath an
// orchestrator such as the MITM one (spec §5.5).
type AbilityType int

const (
	Standalone AbilityType = iota
	Component
)

func (t AbilityType) String() string {
	if t == Component {
		return "COMPONENT"
	}
	return "STANDALONE"
}

// Dependency names another ability this one relies on, either by a
// classic short name resolved through [ClassicDependencies] or by an
// explicit (alias, package, ability) triple (spec §4.2). Alias is the
// local name get_dependency looks the entry up by; for a classic
// dependency it defaults to the classic short name itself.
type Dependency struct {
	Classic string
	Alias   string
	Package string
	Ability string
}

// Resolve returns the (package, ability) pair this dependency refers
// to, resolving classic short names via [ClassicDependencies].
func (d Dependency) Resolve() (pkg, name string, err error) {
	if d.Classic != "" {
		entry, ok := ClassicDependencies[d.Classic]
		if !ok {
			return "", "", fmt.Errorf("%w: %s", ErrUnknownDependency, d.Classic)
		}
		return entry.Package, entry.Ability, nil
	}
	if d.Package == "" || d.Ability == "" {
		return "", "", fmt.Errorf("%w: empty explicit dependency", ErrUnknownDependency)
	}
	return d.Package, d.Ability, nil
}

// Key returns the alias get_dependency(alias, overrides) looks this
// entry up by: the explicit Alias if set, otherwise the classic short
// name.
func (d Dependency) Key() string {
	if d.Alias != "" {
		return d.Alias
	}
	return d.Classic
}

// Precondition checks whether the runtime environment satisfies a
// requirement the ability cannot otherwise express through options,
// e.g. "running as root" or "interface X exists". It returns a
// human-readable reason when the check fails.
type Precondition func() (ok bool, reason string)

// Descriptor is the immutable metadata an ability publishes about
// itself: its identity, its option set template, its type, and its
// dependencies and preconditions (spec §5.2). A Descriptor is shared
// across instances; each [Instance] gets its own deep-copied
// [option.Set] built from Options.
type Descriptor struct {
	Name        string
	Package     string
	Comment     string
	Type        AbilityType
	Options     []option.Descriptor
	Depends     []Dependency
	Preconds    []Precondition
	Main        Main
}

// NewOptionSet builds a fresh, unstarted option set from the
// descriptor's option templates, ready to be configured by a caller
// before Start.
func (d *Descriptor) NewOptionSet() *option.Set {
	return option.NewSet(d.Options...)
}

// CheckPreconditions runs every registered precondition and
// aggregates the failures, matching the original's
// check_preconditions behavior of reporting everything wrong at once
// rather than failing fast on the first issue.
func (d *Descriptor) CheckPreconditions() error {
	var reasons []string
	for _, p := range d.Preconds {
		if ok, reason := p(); !ok {
			reasons = append(reasons, reason)
		}
	}
	if len(reasons) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrMissingPrecondition, reasons)
}
