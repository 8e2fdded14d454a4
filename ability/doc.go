// SPDX-License-Identifier: GPL-3.0-or-later

// Package ability implements PacketWeaver's ability runtime: the
// uniform lifecycle (NEW -> CONFIGURED -> RUNNING -> STOPPED) every
// ability instance goes through, the pipe composition primitives used
// to wire abilities together, and the descriptor/dependency metadata
// abilities declare about themselves.
//
// An ability's behavior lives in a [Main] closure; [Instance] supplies
// everything around it: option storage (via [option.Set]), pipe
// plumbing, cooperative stop signalling, and deterministic teardown.
package ability
