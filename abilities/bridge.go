// SPDX-License-Identifier: GPL-3.0-or-later

package abilities

import (
	"context"
	"fmt"

	"github.com/vishvananda/netlink"

	"github.com/ANSSI-FR/packetweaver/ability"
	"github.com/ANSSI-FR/packetweaver/option"
)

const bridgeNamePrefix = "pwbr"

// BridgeDescriptor joins one or more NICs into a Linux bridge,
// creating it if the named bridge does not already exist, and tears
// the bridge down on stop (restoring the member interfaces to their
// own, standalone state). Grounded on
// original_source/libs/sys/bridge.py's bridge_iface_together/unbridge
// pair, reimplemented with vishvananda/netlink in place of pyroute2.
var BridgeDescriptor = &ability.Descriptor{
	Name:    "bridge",
	Package: "abilities",
	Comment: "Bridge interfaces together at L2",
	Type:    ability.Component,
	Options: []option.Descriptor{
		option.NewNIC(OptInputInterface, option.WithNICComment("First interface to add to the bridge")),
		option.NewNIC(OptOutputInterface, option.WithNICComment("Second interface to add to the bridge")),
		option.NewString("bridge", option.WithStringDefault(""), option.WithStringOptional(true),
			option.WithStringComment("Name of the bridge to join or create; a fresh pwbrN name is picked if empty")),
	},
	Main: runBridge,
}

func runBridge(ctx context.Context, inst *ability.Instance, opts *option.Set) (any, error) {
	iface, err := optString(opts, OptInputInterface)
	if err != nil {
		return nil, err
	}
	outerface, err := optString(opts, OptOutputInterface)
	if err != nil {
		return nil, err
	}
	requestedName, err := optString(opts, "bridge")
	if err != nil {
		return nil, err
	}

	var members []string
	if iface != "" {
		members = append(members, iface)
	}
	if outerface != "" {
		members = append(members, outerface)
	}

	brName, created, err := JoinBridge(requestedName, members...)
	if err != nil {
		return nil, err
	}

	<-ctx.Done()

	if err := Unbridge(brName, members, created); err != nil {
		return brName, err
	}
	return brName, nil
}

// JoinBridge adds every interface in members to the named bridge,
// creating and bringing it up first if it does not already exist
// (picking a fresh pwbrN name when requestedName is empty). It is the
// direct Go counterpart of the original's bridge_iface_together
// library call: both the MITM orchestrator (which bridges one
// interface at a time, see mitm.py's two-phase bridging) and
// [BridgeDescriptor] use it.
func JoinBridge(requestedName string, members ...string) (brName string, created bool, err error) {
	brName, created, err = ensureBridge(requestedName)
	if err != nil {
		return "", false, err
	}
	brLink, err := netlink.LinkByName(brName)
	if err != nil {
		return "", false, fmt.Errorf("abilities: bridge: %w", err)
	}
	for _, name := range members {
		if name == "" {
			continue
		}
		link, err := netlink.LinkByName(name)
		if err != nil {
			return brName, created, fmt.Errorf("abilities: bridge: %s: %w", name, err)
		}
		if err := netlink.LinkSetMaster(link, brLink.(*netlink.Bridge)); err != nil {
			return brName, created, fmt.Errorf("abilities: bridge: enslave %s: %w", name, err)
		}
	}
	return brName, created, nil
}

// Unbridge removes every interface in members from the named bridge,
// brings each back up standalone, and deletes the bridge itself if
// created is true (mirroring the original's unbridge, which always
// deletes; created lets a caller that joined a pre-existing bridge
// leave it behind undisturbed).
func Unbridge(brName string, members []string, created bool) error {
	for _, name := range members {
		if name == "" {
			continue
		}
		link, err := netlink.LinkByName(name)
		if err != nil {
			continue
		}
		netlink.LinkSetNoMaster(link)
		netlink.LinkSetUp(link)
	}
	if !created {
		return nil
	}
	brLink, err := netlink.LinkByName(brName)
	if err != nil {
		return fmt.Errorf("abilities: bridge: %w", err)
	}
	netlink.LinkSetDown(brLink)
	if err := netlink.LinkDel(brLink); err != nil {
		return fmt.Errorf("abilities: bridge: delete %s: %w", brName, err)
	}
	return nil
}

// ensureBridge returns an existing bridge by name, or creates and
// brings up a freshly named one when name is empty, mirroring the
// original's pwbrN auto-naming scheme.
func ensureBridge(name string) (brName string, created bool, err error) {
	if name != "" {
		if _, err := netlink.LinkByName(name); err == nil {
			return name, false, nil
		}
	} else {
		name = nextBridgeName()
	}

	br := &netlink.Bridge{LinkAttrs: netlink.LinkAttrs{Name: name}}
	if err := netlink.LinkAdd(br); err != nil {
		return "", false, fmt.Errorf("abilities: bridge: create %s: %w", name, err)
	}
	if err := netlink.LinkSetUp(br); err != nil {
		return "", false, fmt.Errorf("abilities: bridge: up %s: %w", name, err)
	}
	return name, true, nil
}

func nextBridgeName() string {
	links, err := netlink.LinkList()
	if err != nil {
		return nextBridgeNameFrom(nil)
	}
	names := make([]string, len(links))
	for i, l := range links {
		names[i] = l.Attrs().Name
	}
	return nextBridgeNameFrom(names)
}

// nextBridgeNameFrom picks the lowest-numbered unused pwbrN name given
// the set of interface names already present.
func nextBridgeNameFrom(names []string) string {
	used := make(map[int]bool)
	for _, name := range names {
		if len(name) > len(bridgeNamePrefix) && name[:len(bridgeNamePrefix)] == bridgeNamePrefix {
			var n int
			if _, err := fmt.Sscanf(name[len(bridgeNamePrefix):], "%d", &n); err == nil && n >= 0 {
				used[n] = true
			}
		}
	}
	n := 0
	for used[n] {
		n++
	}
	return fmt.Sprintf("%s%d", bridgeNamePrefix, n)
}
