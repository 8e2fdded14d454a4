// SPDX-License-Identifier: GPL-3.0-or-later

package abilities

import (
	"context"
	"fmt"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"

	"github.com/ANSSI-FR/packetweaver/ability"
	"github.com/ANSSI-FR/packetweaver/option"
)

const captureSnaplen = 65535

// captureReadTimeout bounds how long pcap.OpenLive blocks waiting for
// a frame before handing control back so the capture loop can observe
// context cancellation promptly.
const captureReadTimeout = 200 * time.Millisecond

// CaptureDescriptor sniffs frames off a NIC and writes them to every
// output pipe, grounded on
// original_source/abilities/osi/phy_l1/capture.py.
var CaptureDescriptor = &ability.Descriptor{
	Name:    "capture",
	Package: "abilities",
	Comment: "Sniff frames on a NIC and send them to the pipe",
	Type:    ability.Component,
	Options: []option.Descriptor{
		option.NewString(OptBPF, option.WithStringDefault(""), option.WithStringComment("Filter to apply to received frames")),
		option.NewNIC(OptInputInterface, option.WithNICComment("NIC to sniff on")),
	},
	Main: runCapture,
}

func runCapture(ctx context.Context, inst *ability.Instance, opts *option.Set) (any, error) {
	iface, err := optString(opts, OptInputInterface)
	if err != nil {
		return nil, err
	}
	bpf, err := optString(opts, OptBPF)
	if err != nil {
		return nil, err
	}

	handle, err := pcap.OpenLive(iface, captureSnaplen, true, captureReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("abilities: capture: open %s: %w", iface, err)
	}
	defer handle.Close()

	if bpf != "" {
		if err := handle.SetBPFFilter(bpf); err != nil {
			return nil, fmt.Errorf("abilities: capture: bpf %q: %w", bpf, err)
		}
	}

	go func() {
		<-ctx.Done()
		handle.Close()
	}()

	source := gopacket.NewPacketSource(handle, handle.LinkType())
	var count int
	for packet := range source.Packets() {
		if ctx.Err() != nil {
			break
		}
		data := append([]byte(nil), packet.Data()...)
		if err := inst.Send(data); err != nil && err != ability.ErrNoOutputPipe {
			break
		}
		count++
	}
	return count, nil
}

func optString(opts *option.Set, name string) (string, error) {
	v, err := opts.Get(name, true, false)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}
