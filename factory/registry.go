// SPDX-License-Identifier: GPL-3.0-or-later

package factory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ANSSI-FR/packetweaver/ability"
)

// Registry holds every ability descriptor known to the running
// binary, replacing the original ModuleFactory/AbilityModule pair
// (spec.md §4.3). The caller that owns a Registry populates it by
// calling Register for each descriptor an ability package exports
// (e.g. abilities.Descriptors), playing the role of the original's
// exported_abilities list.
type Registry struct {
	mu       sync.RWMutex
	abls     map[string]*ability.Descriptor
	order    []string
	defaults map[string]map[string]any
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		abls:     make(map[string]*ability.Descriptor),
		defaults: make(map[string]map[string]any),
	}
}

// Register adds desc under its own name. It is an error to register
// the same name twice, catching the kind of accidental package
// collision the original's set-based _known_opts bookkeeping did not
// guard against.
func (r *Registry) Register(desc *ability.Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.abls[desc.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateAbility, desc.Name)
	}
	r.abls[desc.Name] = desc
	r.order = append(r.order, desc.Name)
	return nil
}

// Descriptor returns the named ability's descriptor.
func (r *Registry) Descriptor(name string) (*ability.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.abls[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAbility, name)
	}
	return desc, nil
}

// Names returns every registered ability name in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// StandaloneNames returns the registered ability names whose type is
// ability.Standalone, sorted for stable listing output, matching
// get_standalone_abilities.
func (r *Registry) StandaloneNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for _, name := range r.order {
		if r.abls[name].Type == ability.Standalone {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// SetDefaultOptions records name=value overrides applied to every
// future GetAbility("name") call's option set, rejecting any option
// not declared on that ability's descriptor the way
// AbilityModule.set_default_options does.
func (r *Registry) SetDefaultOptions(ablName string, opts map[string]any) error {
	desc, err := r.Descriptor(ablName)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(desc.Options))
	for _, o := range desc.Options {
		known[o.Name()] = true
	}
	for name := range opts {
		if !known[name] {
			return fmt.Errorf("%w: %s", ErrUnknownOption, name)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults[ablName] = opts
	return nil
}

// GetAbility finds the (pkg, name) ability, builds a fresh Instance
// from it, applies any defaults previously set with
// SetDefaultOptions, then applies overrides filtered down to the
// subset of names the descriptor actually declares as options
// (unknown override names are silently dropped, matching
// get_ability(package, name, overrides)'s documented behavior), and
// returns the Instance ready for further configuration and Start.
// This is the Go replacement for get_ability_instance_by_name, minus
// the disk reload step: there is nothing to reload, see package doc.
func (r *Registry) GetAbility(pkg, name string, overrides map[string]any) (*ability.Instance, error) {
	desc, err := r.Descriptor(name)
	if err != nil {
		return nil, err
	}
	if desc.Package != pkg {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownAbility, pkg, name)
	}
	if err := desc.CheckPreconditions(); err != nil {
		return nil, err
	}

	inst := ability.NewInstance(desc)
	r.mu.RLock()
	defaults := r.defaults[name]
	r.mu.RUnlock()
	for k, v := range defaults {
		if err := inst.Options().Set(k, v); err != nil {
			return nil, err
		}
	}

	known := make(map[string]bool, len(desc.Options))
	for _, o := range desc.Options {
		known[o.Name()] = true
	}
	for k, v := range overrides {
		if !known[k] {
			continue
		}
		if err := inst.Options().Set(k, v); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// GetDependency resolves one of desc's declared dependencies by alias
// (a classic short name, or the explicit Alias given to a
// (alias, package, ability) triple), obtains a fresh instance of it
// via GetAbility, and applies overrides to it through Options().Set.
// This is the Go equivalent of the original Ability's
// get_dependency(alias, overrides).
func (r *Registry) GetDependency(desc *ability.Descriptor, alias string, overrides map[string]any) (*ability.Instance, error) {
	for _, dep := range desc.Depends {
		if dep.Key() != alias {
			continue
		}
		pkg, name, err := dep.Resolve()
		if err != nil {
			return nil, err
		}
		return r.GetAbility(pkg, name, overrides)
	}
	return nil, fmt.Errorf("%w: %s", ability.ErrUnknownDependency, alias)
}

// Reload is a documented no-op. The original reloaded an ability's
// Python module from disk before instantiating it so in-place edits
// took effect without restarting the process; Go ability packages
// are compiled into the binary, so there is nothing to reload. It
// exists only so code ported from the original's workflow has an
// explicit call site to see this, rather than silently vanishing.
func (r *Registry) Reload(name string) error {
	_, err := r.Descriptor(name)
	return err
}
