// SPDX-License-Identifier: GPL-3.0-or-later

// Package mitm implements PacketWeaver's MITM orchestrator: the
// COMPONENT ability that wires together capture, raw injection,
// firewalling, and (in two-interface mode) bridging and demuxing
// into a single interception point, grounded on
// original_source/abilities/osi/phy_l1/mitm.py.
package mitm
