// SPDX-License-Identifier: GPL-3.0-or-later

package ability

import "context"

// Chain wires a's output to b's input via a single new [Pipe] and
// returns that pipe; callers Start both instances and Stop/Wait on
// them themselves. It is the Go equivalent of the original's `a | b`
// ability composition operator (spec §3).
func Chain(a, b *Instance) *Pipe {
	p := NewPipe(DefaultPipeBuffer)
	a.AddOutPipe(p)
	b.AddInPipe(p)
	return p
}

// TransferIn moves every one of src's input pipes onto dst: dst gains
// them, and src no longer has any. Used when an orchestrator has
// collected a caller's input pipes before it knows which delegate
// ability should actually consume them.
func TransferIn(src, dst *Instance) {
	src.mu.Lock()
	pipes := src.inPipes
	src.inPipes = nil
	src.mu.Unlock()
	for _, p := range pipes {
		dst.AddInPipe(p)
	}
}

// TransferOut moves every one of src's output pipes onto dst: dst
// gains them, and src no longer has any. This is how the MITM
// orchestrator hands its own caller-supplied output pipes to the
// capture ability it delegates sniffing to, so sniffed frames reach
// the caller directly without passing back through the orchestrator.
func TransferOut(src, dst *Instance) {
	src.mu.Lock()
	pipes := src.outPipes
	src.outPipes = nil
	src.mu.Unlock()
	for _, p := range pipes {
		dst.AddOutPipe(p)
	}
}

// DupOut copies (without removing from src) every one of src's
// output pipes onto dst, so the same downstream pipe receives
// messages written by either instance.
func DupOut(src, dst *Instance) {
	src.mu.Lock()
	pipes := append([]*Pipe(nil), src.outPipes...)
	src.mu.Unlock()
	for _, p := range pipes {
		dst.AddOutPipe(p)
	}
}

// StartMany starts every instance given, stopping at the first
// error and returning it.
func StartMany(ctx context.Context, insts ...*Instance) error {
	for _, inst := range insts {
		if err := inst.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopMany requests cooperative cancellation on every instance
// given.
func StopMany(insts ...*Instance) {
	for _, inst := range insts {
		inst.Stop()
	}
}

// StartWaitAndStop starts every instance, waits for ctx to be done,
// then stops and waits for all of them to return. This is the
// pattern a driver program uses to run a pipe chain until cancelled
// (spec scenario S3).
func StartWaitAndStop(ctx context.Context, insts ...*Instance) error {
	if err := StartMany(ctx, insts...); err != nil {
		return err
	}
	<-ctx.Done()
	StopMany(insts...)
	for _, inst := range insts {
		inst.Wait()
	}
	return nil
}
