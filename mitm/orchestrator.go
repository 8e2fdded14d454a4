// SPDX-License-Identifier: GPL-3.0-or-later

package mitm

import (
	"context"
	"fmt"

	"github.com/vishvananda/netlink"

	"github.com/ANSSI-FR/packetweaver/ability"
	"github.com/ANSSI-FR/packetweaver/abilities"
	"github.com/ANSSI-FR/packetweaver/factory"
	"github.com/ANSSI-FR/packetweaver/option"
)

// Option names, matching abilities.OptXxx plus the two parameters
// unique to the orchestrator itself.
const (
	optBridge = "bridge"
	optMux    = "mux"
	optQuiet  = "quiet"
)

// NewDescriptor builds the MITM orchestrator ability descriptor,
// resolving its netfilter/capture/sendraw dependencies from reg at
// run time the way the original resolves classic dependency names
// through its module factory. Grounded end to end on
// original_source/abilities/osi/phy_l1/mitm.py.
func NewDescriptor(reg *factory.Registry) *ability.Descriptor {
	desc := &ability.Descriptor{
		Name:    "mitm",
		Package: "mitm",
		Comment: "Sniff frames, optionally inject replacements, optionally bridging two NICs",
		Type:    ability.Component,
		Options: []option.Descriptor{
			option.NewNIC(abilities.OptInputInterface, option.WithNICComment("Sniffed interface")),
			option.NewNIC(abilities.OptOutputInterface, option.WithNICOptional(true), option.WithNICComment("Injection interface")),
			option.NewMAC(abilities.OptMacSrc, option.WithMACOptional(true), option.WithMACDefault("None")),
			option.NewMAC(abilities.OptMacDst, option.WithMACOptional(true), option.WithMACDefault("None")),
			option.NewIP(abilities.OptIPSrc, option.WithIPOptional(true), option.WithIPDefault("None")),
			option.NewIP(abilities.OptIPDst, option.WithIPOptional(true), option.WithIPDefault("None")),
			option.NewPort(abilities.OptPortSrc, option.WithPortOptional(true), option.WithPortDefault("None")),
			option.NewPort(abilities.OptPortDst, option.WithPortOptional(true), option.WithPortDefault("None")),
			option.NewChoice(abilities.OptProtocol, []string{"tcp", "udp"}, option.WithChoiceOptional(true), option.WithChoiceDefault("None")),
			option.NewString(optBridge, option.WithStringDefault(""), option.WithStringOptional(true),
				option.WithStringComment("Bridge to use for sniffing; created if it does not exist")),
			option.NewBoolean(optMux, option.WithBooleanComment(
				"Messages to send are prefixed with a demux tag byte selecting the sniffing or injection leg")),
			option.NewBoolean(optQuiet, option.WithBooleanDefault(true), option.WithBooleanComment("Whether to log errors")),
		},
		Depends: []ability.Dependency{
			{Classic: "netfilter"}, {Classic: "capture"}, {Classic: "sendraw"}, {Classic: "demux"},
		},
	}
	desc.Main = func(ctx context.Context, inst *ability.Instance, opts *option.Set) (any, error) {
		return runOrchestrator(ctx, inst, opts, reg, desc)
	}
	return desc
}

type params struct {
	iface, outerface  string
	macSrc, macDst    any
	ipSrc, ipDst      any
	portSrc, portDst  any
	protocol          any
	bridge            string
	mux, quiet        bool
}

func readParams(opts *option.Set) (params, error) {
	var p params
	var err error
	if p.iface, err = getString(opts, abilities.OptInputInterface); err != nil {
		return p, err
	}
	if p.outerface, err = getString(opts, abilities.OptOutputInterface); err != nil {
		return p, err
	}
	if p.macSrc, err = opts.Get(abilities.OptMacSrc, true, false); err != nil {
		return p, err
	}
	if p.macDst, err = opts.Get(abilities.OptMacDst, true, false); err != nil {
		return p, err
	}
	if p.ipSrc, err = opts.Get(abilities.OptIPSrc, true, false); err != nil {
		return p, err
	}
	if p.ipDst, err = opts.Get(abilities.OptIPDst, true, false); err != nil {
		return p, err
	}
	if p.portSrc, err = opts.Get(abilities.OptPortSrc, true, false); err != nil {
		return p, err
	}
	if p.portDst, err = opts.Get(abilities.OptPortDst, true, false); err != nil {
		return p, err
	}
	if p.protocol, err = opts.Get(abilities.OptProtocol, true, false); err != nil {
		return p, err
	}
	if p.bridge, err = getString(opts, optBridge); err != nil {
		return p, err
	}
	mux, err := opts.Get(optMux, true, false)
	if err != nil {
		return p, err
	}
	p.mux, _ = mux.(bool)
	quiet, err := opts.Get(optQuiet, true, false)
	if err != nil {
		return p, err
	}
	p.quiet, _ = quiet.(bool)
	return p, nil
}

func getString(opts *option.Set, name string) (string, error) {
	v, err := opts.Get(name, true, false)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// checkConsistency mirrors mitm.py's _check_parameter_consistency.
func checkConsistency(p params) error {
	if (p.portSrc != nil || p.portDst != nil) && p.protocol == nil {
		return fmt.Errorf("%w: source or destination port given without a protocol", ErrInconsistentParameters)
	}
	if p.outerface == "" && p.mux {
		return fmt.Errorf("%w: mux requires an output interface", ErrInconsistentParameters)
	}
	if p.iface == "" {
		return fmt.Errorf("%w: an input interface is required", ErrInconsistentParameters)
	}
	if p.outerface != "" && p.iface == p.outerface {
		return fmt.Errorf("%w: input and output interface must differ", ErrInconsistentParameters)
	}
	return nil
}

// checkBridgeConsistency runs the two remaining preflight checks from
// mitm.py's _check_parameter_consistency that require asking the
// kernel about link state rather than just the given params: an
// interface that is itself a bridge cannot be bridged into another
// one, and an input interface already enslaved to some other bridge
// conflicts with the bridge this run would join or create. Both are
// probed with netlink.LinkByName before runBridgedMode issues any
// JoinBridge call, so a conflicting request never reaches LinkAdd or
// LinkSetMaster.
func checkBridgeConsistency(p params) error {
	if p.outerface == "" {
		return nil
	}
	if isBridge(p.iface) {
		return fmt.Errorf("%w: %s is itself a bridge", ErrInconsistentParameters, p.iface)
	}
	if isBridge(p.outerface) {
		return fmt.Errorf("%w: %s is itself a bridge", ErrInconsistentParameters, p.outerface)
	}
	if other, ok := currentBridgeOf(p.iface); ok && other != p.bridge {
		return fmt.Errorf("%w: %s is already bridged to %s, not %s", ErrInconsistentParameters, p.iface, other, p.bridge)
	}
	return nil
}

// isBridge reports whether name names an existing netlink.Bridge link.
// A name that does not resolve at all is not itself a bridge as far
// as this check is concerned; unresolvable names are reported later
// when the capture/sendraw abilities themselves try to use them.
func isBridge(name string) bool {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return false
	}
	_, ok := link.(*netlink.Bridge)
	return ok
}

// currentBridgeOf returns the name of the bridge name is already
// enslaved to, if any.
func currentBridgeOf(name string) (bridge string, enslaved bool) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return "", false
	}
	masterIdx := link.Attrs().MasterIndex
	if masterIdx == 0 {
		return "", false
	}
	master, err := netlink.LinkByIndex(masterIdx)
	if err != nil {
		return "", false
	}
	return master.Attrs().Name, true
}

func runOrchestrator(ctx context.Context, inst *ability.Instance, opts *option.Set, reg *factory.Registry, desc *ability.Descriptor) (any, error) {
	p, err := readParams(opts)
	if err != nil {
		return nil, err
	}
	if err := checkConsistency(p); err != nil {
		return nil, err
	}

	bpf := buildBPF(p.macSrc, p.macDst, p.ipSrc, p.ipDst, p.protocol, p.portSrc, p.portDst)
	if err := validateBPF(bpf); err != nil {
		return nil, err
	}

	if p.outerface != "" {
		if err := checkBridgeConsistency(p); err != nil {
			return nil, err
		}
		return runBridgedMode(ctx, inst, reg, desc, p, bpf)
	}
	return runSingleInterfaceMode(ctx, inst, reg, desc, p, bpf)
}

func runSingleInterfaceMode(ctx context.Context, inst *ability.Instance, reg *factory.Registry, desc *ability.Descriptor, p params, bpf string) (any, error) {
	sniff, err := reg.GetDependency(desc, "capture", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalSystem, err)
	}
	if err := sniff.Options().Set(abilities.OptBPF, bpf); err != nil {
		return nil, err
	}
	if err := sniff.Options().Set(abilities.OptInputInterface, p.iface); err != nil {
		return nil, err
	}
	ability.TransferOut(inst, sniff)
	if err := sniff.Start(ctx); err != nil {
		return nil, err
	}

	wasSource := inst.IsSource()
	var sender *ability.Instance
	if !wasSource {
		sender, err = reg.GetDependency(desc, "sendraw", nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFatalSystem, err)
		}
		if err := sender.Options().Set(abilities.OptOutputInterface, p.iface); err != nil {
			return nil, err
		}
		ability.TransferIn(inst, sender)
		if err := sender.Start(ctx); err != nil {
			return nil, err
		}
	}

	<-ctx.Done()

	sniff.Stop()
	sniff.Wait()
	if sender != nil {
		sender.Stop()
		sender.Wait()
	}
	return nil, nil
}

func runBridgedMode(ctx context.Context, inst *ability.Instance, reg *factory.Registry, desc *ability.Descriptor, p params, bpf string) (any, error) {
	brName, created, err := abilities.JoinBridge(p.bridge, p.outerface)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalSystem, err)
	}

	fw, err := reg.GetDependency(desc, "netfilter", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalSystem, err)
	}
	setFirewallOptions(fw.Options(), p)
	if err := fw.Start(ctx); err != nil {
		return nil, err
	}

	sniff, err := reg.GetDependency(desc, "capture", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalSystem, err)
	}
	if err := sniff.Options().Set(abilities.OptBPF, bpf); err != nil {
		return nil, err
	}
	if err := sniff.Options().Set(abilities.OptInputInterface, brName); err != nil {
		return nil, err
	}
	ability.TransferOut(inst, sniff)
	if err := sniff.Start(ctx); err != nil {
		return nil, err
	}

	wasSource := inst.IsSource()
	var demuxInst, sender1, sender2 *ability.Instance
	if !wasSource {
		if p.mux {
			primary := ability.NewPipe(ability.DefaultPipeBuffer)
			secondary := ability.NewPipe(ability.DefaultPipeBuffer)

			sender1, err = reg.GetDependency(desc, "sendraw", nil)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFatalSystem, err)
			}
			if err := sender1.Options().Set(abilities.OptOutputInterface, p.iface); err != nil {
				return nil, err
			}
			sender1.AddInPipe(primary)

			sender2, err = reg.GetDependency(desc, "sendraw", nil)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFatalSystem, err)
			}
			if err := sender2.Options().Set(abilities.OptOutputInterface, p.outerface); err != nil {
				return nil, err
			}
			sender2.AddInPipe(secondary)

			routes := map[byte]*ability.Pipe{
				ability.TagPrimary:   primary,
				ability.TagSecondary: secondary,
			}
			demuxDesc := abilities.NewDemuxDescriptor(routes, p.quiet, nil)
			demuxInst = ability.NewInstance(demuxDesc)
			ability.TransferIn(inst, demuxInst)

			if err := ability.StartMany(ctx, sender1, sender2, demuxInst); err != nil {
				return nil, err
			}
		} else {
			sender1, err = reg.GetDependency(desc, "sendraw", nil)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFatalSystem, err)
			}
			if err := sender1.Options().Set(abilities.OptOutputInterface, p.outerface); err != nil {
				return nil, err
			}
			ability.TransferIn(inst, sender1)
			if err := sender1.Start(ctx); err != nil {
				return nil, err
			}
		}
	}

	if _, _, err := abilities.JoinBridge(brName, p.iface); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalSystem, err)
	}

	<-ctx.Done()

	sniff.Stop()
	sniff.Wait()

	if !wasSource {
		if p.mux {
			demuxInst.Stop()
			sender1.Stop()
			sender2.Stop()
			demuxInst.Wait()
			sender1.Wait()
			sender2.Wait()
		} else {
			sender1.Stop()
			sender1.Wait()
		}
	}

	fw.Stop()
	fw.Wait()

	if err := abilities.Unbridge(brName, []string{p.iface, p.outerface}, created); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalSystem, err)
	}
	return nil, nil
}

func setFirewallOptions(opts *option.Set, p params) {
	opts.Set(abilities.OptInputInterface, p.iface)
	opts.Set(abilities.OptOutputInterface, p.outerface)
	if p.macSrc != nil {
		opts.Set(abilities.OptMacSrc, p.macSrc)
	}
	if p.macDst != nil {
		opts.Set(abilities.OptMacDst, p.macDst)
	}
	if p.ipSrc != nil {
		opts.Set(abilities.OptIPSrc, p.ipSrc)
	}
	if p.ipDst != nil {
		opts.Set(abilities.OptIPDst, p.ipDst)
	}
	if p.protocol != nil {
		opts.Set(abilities.OptProtocol, p.protocol)
	}
	if p.portSrc != nil {
		opts.Set(abilities.OptPortSrc, p.portSrc)
	}
	if p.portDst != nil {
		opts.Set(abilities.OptPortDst, p.portDst)
	}
}
