// SPDX-License-Identifier: GPL-3.0-or-later

// Package factory implements PacketWeaver's module factory: a
// registry that ability descriptors are explicitly Registered into and
// resolved from at runtime by name, replacing the original's
// filesystem-based dynamic module loader with a Go-idiomatic static
// registration pattern (spec.md §4.3 and SPEC_FULL.md §5.3).
//
// Go has no equivalent of Python's imp.load_module/reload: ability
// packages are compiled into the binary, not loaded from disk at run
// time, so Reload is a documented no-op kept only so callers written
// against the original's "pick up on-disk changes" workflow have an
// obvious, explicit place to see that the behavior does not apply
// here.
package factory
