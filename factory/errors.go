// SPDX-License-Identifier: GPL-3.0-or-later

package factory

import "errors"

// ErrUnknownAbility indicates GetAbility was asked for a name no
// package has Registered.
var ErrUnknownAbility = errors.New("factory: unknown ability")

// ErrDuplicateAbility indicates Register was called twice for the
// same name.
var ErrDuplicateAbility = errors.New("factory: duplicate ability")

// ErrUnknownOption indicates SetDefaultOptions was given an option
// name not declared by the target ability's descriptor.
var ErrUnknownOption = errors.New("factory: unknown option")
