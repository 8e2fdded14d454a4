// SPDX-License-Identifier: GPL-3.0-or-later

package abilities

import (
	"context"
	"log/slog"

	"github.com/ANSSI-FR/packetweaver/ability"
	"github.com/ANSSI-FR/packetweaver/option"
)

// NewDemuxDescriptor builds a demux ability that reads
// [ability.Frame]-encoded messages from its single input pipe and
// forwards each frame's payload to whichever pipe routes[frame.Tag]
// names, dropping (and optionally logging) frames whose tag has no
// route. This directly implements scenario S6 and is grounded on
// original_source/abilities/osi/app_l7/demux.py, with the original's
// single-byte dict-keyed prefixes replaced by [ability.Frame]'s typed
// Tag field.
func NewDemuxDescriptor(routes map[byte]*ability.Pipe, quiet bool, logger *slog.Logger) *ability.Descriptor {
	return &ability.Descriptor{
		Name:    "demux",
		Package: "abilities",
		Comment: "Demultiplex frames based on their tag",
		Type:    ability.Component,
		Options: []option.Descriptor{},
		Main: func(ctx context.Context, inst *ability.Instance, opts *option.Set) (any, error) {
			var count int
			for {
				msg, ok, err := inst.Recv(ctx)
				if err != nil || !ok {
					return count, err
				}
				var f ability.Frame
				if uerr := f.UnmarshalBinary(msg); uerr != nil {
					if !quiet && logger != nil {
						logger.Warn("demux: malformed frame", "error", uerr)
					}
					continue
				}
				route, ok := routes[f.Tag]
				if !ok {
					if !quiet && logger != nil {
						logger.Warn("demux: no route for tag", "tag", f.Tag)
					}
					continue
				}
				if err := route.Send(f.Payload); err != nil {
					if !quiet && logger != nil {
						logger.Warn("demux: send failed", "error", err)
					}
					continue
				}
				count++
			}
		},
	}
}
