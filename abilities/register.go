// SPDX-License-Identifier: GPL-3.0-or-later

package abilities

import "github.com/ANSSI-FR/packetweaver/ability"

// Descriptors returns every ability this package exports, in the
// shape a [factory.Registry] expects to Register them. Demux is not
// included: it needs per-invocation routing pipes, so callers build
// it with [NewDemuxDescriptor] instead of resolving it by name.
func Descriptors() []*ability.Descriptor {
	return []*ability.Descriptor{
		CaptureDescriptor,
		SendRawDescriptor,
		NetfilterDescriptor,
		BridgeDescriptor,
	}
}
