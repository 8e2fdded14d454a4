// SPDX-License-Identifier: GPL-3.0-or-later

package mitm

import (
	"fmt"
	"strings"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

// buildBPF assembles a BPF expression from the orchestrator's
// optional match parameters, ANDing together only the clauses whose
// parameter is present, grounded on mitm.py's _build_bpf. Any
// mac/ip/port value given as nil is omitted, matching the original's
// `if not isinstance(x, type(None))` guards.
func buildBPF(macSrc, macDst, ipSrc, ipDst, proto, portSrc, portDst any) string {
	var clauses []string
	add := func(s string) {
		for _, existing := range clauses {
			if existing == s {
				return
			}
		}
		clauses = append(clauses, s)
	}

	if macSrc != nil {
		add(fmt.Sprintf("ether src %v", macSrc))
	}
	if macDst != nil {
		add(fmt.Sprintf("ether dst %v", macDst))
	}
	if ipSrc != nil {
		add(fmt.Sprintf("src host %v", ipSrc))
		add("ip or ip6")
	}
	if ipDst != nil {
		add(fmt.Sprintf("dst host %v", ipDst))
		add("ip or ip6")
	}
	if proto != nil {
		add(fmt.Sprint(proto))
	}
	if portSrc != nil {
		add(fmt.Sprintf("src port %v", portSrc))
	}
	if portDst != nil {
		add(fmt.Sprintf("dst port %v", portDst))
	}

	if len(clauses) == 0 {
		return ""
	}
	for i, c := range clauses {
		clauses[i] = "(" + c + ")"
	}
	return strings.Join(clauses, " and ")
}

// validateBPF compiles expr against an Ethernet link type without
// opening a live handle, using google/gopacket/pcap.CompileBPFFilter,
// catching a malformed filter before any interface is touched.
func validateBPF(expr string) error {
	if expr == "" {
		return nil
	}
	_, err := pcap.CompileBPFFilter(layers.LinkTypeEthernet, 65535, expr)
	if err != nil {
		return fmt.Errorf("%w: bpf %q: %v", ErrFatalSystem, expr, err)
	}
	return nil
}
