// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "errors"

// ErrInvalid indicates a raw value rejected by a descriptor's IsValid.
var ErrInvalid = errors.New("option: invalid value")

// ErrUnknownOption indicates a name not declared on the owning Set.
var ErrUnknownOption = errors.New("option: unknown option")

// ErrStarted indicates an attempt to mutate a Set after the owning
// ability has started.
var ErrStarted = errors.New("option: ability already started")

// ErrEndOfSequence indicates a lazy sequence (e.g. a Prefix scan) is
// exhausted.
var ErrEndOfSequence = errors.New("option: sequence exhausted")
