// SPDX-License-Identifier: GPL-3.0-or-later

// Package option implements PacketWeaver's typed option system: the
// parameter descriptors an ability declares (IP, Prefix, MAC, Port,
// Number, String, Boolean, Choice, Path, NIC, Callback), and the Set
// that holds an ability's live option values.
//
// Every descriptor exposes IsValid, GenerateOneValue, and
// PossibleValues. A Set layers caller overrides over descriptor
// defaults, memoizes interpreted values, and supports the lazy
// restartable-sequence pattern used by Prefix (see [Sequence]).
package option
