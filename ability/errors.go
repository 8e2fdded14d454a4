// SPDX-License-Identifier: GPL-3.0-or-later

package ability

import "errors"

// ErrNoInputPipe indicates a source ability was asked to Poll or Recv.
var ErrNoInputPipe = errors.New("ability: no input pipe")

// ErrNoOutputPipe indicates a sink ability was asked to Send.
var ErrNoOutputPipe = errors.New("ability: no output pipe")

// ErrAlreadyStarted indicates a second Start call on the same
// Instance; per spec invariant 9 this never spawns a second worker.
var ErrAlreadyStarted = errors.New("ability: already started")

// ErrUnknownDependency indicates a classic dependency short name with
// no entry in ClassicDependencies.
var ErrUnknownDependency = errors.New("ability: unknown dependency")

// ErrMissingPrecondition aggregates precondition failures collected by
// CheckPreconditions.
var ErrMissingPrecondition = errors.New("ability: missing precondition")
