// SPDX-License-Identifier: GPL-3.0-or-later

package mitm

import "errors"

// ErrInconsistentParameters indicates _check_parameter_consistency's
// Go equivalent rejected the option combination (spec.md §9).
var ErrInconsistentParameters = errors.New("mitm: inconsistent parameters")

// ErrFatalSystem wraps an underlying netlink/go-iptables/pcap error
// the orchestrator cannot recover from.
var ErrFatalSystem = errors.New("mitm: fatal system error")
