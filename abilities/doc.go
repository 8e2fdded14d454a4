// SPDX-License-Identifier: GPL-3.0-or-later

// Package abilities implements PacketWeaver's COMPONENT reference
// abilities: the low-level building blocks the MITM orchestrator
// (package mitm) wires together rather than something an operator
// instantiates directly. Each mirrors one ability from
// original_source/abilities/osi/{phy_l1,network_l3,app_l7}: Capture
// sniffs frames off a NIC, SendRaw injects them back out, Netfilter
// installs the firewall rules that keep the kernel from also
// forwarding what is being intercepted, Bridge joins two NICs at L2,
// and Demux fans a single multiplexed pipe back out to the leg its
// frames arrived on.
package abilities

// Shared option names, mirroring the original's ns.OptNames constants
// so every ability in this package, and the mitm orchestrator wiring
// them together, refer to the same parameter by the same string.
const (
	OptInputInterface  = "interface"
	OptOutputInterface = "outerface"
	OptMacSrc          = "mac_src"
	OptMacDst          = "mac_dst"
	OptIPSrc           = "ip_src"
	OptIPDst           = "ip_dst"
	OptPortSrc         = "port_src"
	OptPortDst         = "port_dst"
	OptProtocol        = "protocol"
	OptBPF             = "bpf"
)
