// SPDX-License-Identifier: GPL-3.0-or-later

package abilities

import (
	"context"
	"fmt"

	"github.com/coreos/go-iptables/iptables"

	"github.com/ANSSI-FR/packetweaver/ability"
	"github.com/ANSSI-FR/packetweaver/option"
)

const netfilterTable = "filter"

// NetfilterDescriptor installs the firewall rules that drop the
// frames/packets being intercepted so the kernel's own forwarding
// path does not also deliver them, and removes the rules on stop.
// Grounded on
// original_source/abilities/osi/network_l3/netfilter.py and
// libs/sys/netfilter.py, using coreos/go-iptables in place of the
// original's iptables-CLI/python-iptables fallback pair: always the
// bridge/physdev match form, since the orchestrator only ever calls
// this ability from its two-interface bridge mode (spec.md §9 design
// note: "firewall physdev always-on").
var NetfilterDescriptor = &ability.Descriptor{
	Name:    "netfilter",
	Package: "abilities",
	Comment: "Configure iptables rules to drop specified traffic",
	Type:    ability.Component,
	Options: []option.Descriptor{
		option.NewNIC(OptInputInterface, option.WithNICOptional(true)),
		option.NewNIC(OptOutputInterface, option.WithNICOptional(true)),
		option.NewMAC(OptMacSrc, option.WithMACOptional(true), option.WithMACDefault("None")),
		option.NewMAC(OptMacDst, option.WithMACOptional(true), option.WithMACDefault("None")),
		option.NewIP(OptIPSrc, option.WithIPOptional(true), option.WithIPDefault("None")),
		option.NewIP(OptIPDst, option.WithIPOptional(true), option.WithIPDefault("None")),
		option.NewPort(OptPortSrc, option.WithPortOptional(true), option.WithPortDefault("None")),
		option.NewPort(OptPortDst, option.WithPortOptional(true), option.WithPortDefault("None")),
		option.NewChoice(OptProtocol, []string{"tcp", "udp"}, option.WithChoiceOptional(true), option.WithChoiceDefault("None")),
	},
	Main: runNetfilter,
}

func runNetfilter(ctx context.Context, inst *ability.Instance, opts *option.Set) (any, error) {
	ipt, err := iptables.New()
	if err != nil {
		return nil, fmt.Errorf("abilities: netfilter: %w", err)
	}

	rule := buildDropRule(opts)
	if len(rule) == 0 {
		<-ctx.Done()
		return nil, nil
	}

	chain := "INPUT"
	if has, _ := opts.Get(OptOutputInterface, true, false); has != nil {
		chain = "FORWARD"
	}

	if err := ipt.AppendUnique(netfilterTable, chain, rule...); err != nil {
		return nil, fmt.Errorf("abilities: netfilter: append: %w", err)
	}

	<-ctx.Done()

	if err := ipt.DeleteIfExists(netfilterTable, chain, rule...); err != nil {
		return nil, fmt.Errorf("abilities: netfilter: delete: %w", err)
	}
	return nil, nil
}

// buildDropRule assembles the rulespec go-iptables expects, matching
// the original's _cmd_build_drop_packets_rule physdev-match shape.
func buildDropRule(opts *option.Set) []string {
	var rule []string
	iface, _ := opts.Get(OptInputInterface, true, false)
	outerface, _ := opts.Get(OptOutputInterface, true, false)
	if iface != nil || outerface != nil {
		rule = append(rule, "-m", "physdev")
		if iface != nil {
			rule = append(rule, "--physdev-in", iface.(string))
		}
		if outerface != nil {
			rule = append(rule, "--physdev-out", outerface.(string))
		}
	}

	ipSrc, _ := opts.Get(OptIPSrc, true, false)
	ipDst, _ := opts.Get(OptIPDst, true, false)
	if ipSrc != nil {
		rule = append(rule, "--src", fmt.Sprint(ipSrc))
	}
	if ipDst != nil {
		rule = append(rule, "--dst", fmt.Sprint(ipDst))
	}

	proto, _ := opts.Get(OptProtocol, true, false)
	portSrc, _ := opts.Get(OptPortSrc, true, false)
	portDst, _ := opts.Get(OptPortDst, true, false)
	if proto != nil {
		rule = append(rule, "-p", proto.(string))
		if portSrc != nil {
			rule = append(rule, "--sport", fmt.Sprint(portSrc))
		}
		if portDst != nil {
			rule = append(rule, "--dport", fmt.Sprint(portDst))
		}
	}

	if len(rule) == 0 {
		return nil
	}
	rule = append(rule, "-j", "DROP")
	return rule
}
