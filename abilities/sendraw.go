// SPDX-License-Identifier: GPL-3.0-or-later

package abilities

import (
	"context"
	"fmt"
	"time"

	"github.com/google/gopacket/pcap"

	"github.com/ANSSI-FR/packetweaver/ability"
	"github.com/ANSSI-FR/packetweaver/option"
)

// SendRawDescriptor reads L2 frames off its input pipe and writes
// them to a NIC, grounded on
// original_source/abilities/osi/phy_l1/send_raw_pkts.py.
var SendRawDescriptor = &ability.Descriptor{
	Name:    "sendraw",
	Package: "abilities",
	Comment: "Read L2 frames from the pipe and write them on a NIC",
	Type:    ability.Component,
	Options: []option.Descriptor{
		option.NewNIC(OptOutputInterface, option.WithNICComment("NIC to send traffic on")),
	},
	Main: runSendRaw,
}

func runSendRaw(ctx context.Context, inst *ability.Instance, opts *option.Set) (any, error) {
	iface, err := optString(opts, OptOutputInterface)
	if err != nil {
		return nil, err
	}

	handle, err := pcap.OpenLive(iface, captureSnaplen, false, captureReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("abilities: sendraw: open %s: %w", iface, err)
	}
	defer handle.Close()

	var count int
	for {
		ready, err := inst.Poll(ctx, 100*time.Millisecond)
		if err != nil {
			return count, err
		}
		if !ready {
			continue
		}
		msg, ok, err := inst.Recv(ctx)
		if err != nil || !ok {
			return count, err
		}
		if err := handle.WritePacketData(msg); err != nil {
			return count, fmt.Errorf("abilities: sendraw: write: %w", err)
		}
		count++
	}
}
