// SPDX-License-Identifier: GPL-3.0-or-later

package ability

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/ANSSI-FR/packetweaver/netops"
	"github.com/ANSSI-FR/packetweaver/option"
)

// Main is the body of an ability: the function the original calls
// run(). It receives the running [Instance] so it can Recv/Send on
// its pipes and observe ctx cancellation, and its configured
// [option.Set]. Its return value becomes the Instance's Result.
type Main func(ctx context.Context, inst *Instance, opts *option.Set) (any, error)

// Instance is a single run of an ability: a [Descriptor]'s Main bound
// to a configured [option.Set] and a set of input/output pipes. It
// carries the NEW -> CONFIGURED -> RUNNING -> STOPPED lifecycle
// (spec §4.4, invariant 9: Start ever spawns at most one worker).
type Instance struct {
	desc   *Descriptor
	opts   *option.Set
	spanID string

	mu      sync.Mutex
	state   State
	inPipes  []*Pipe
	outPipes []*Pipe

	startOnce sync.Once
	stopOnce  sync.Once
	stopFn    context.CancelFunc
	done      chan struct{}

	result any
	err    error
}

// NewInstance builds a fresh [option.Set] from desc's option template
// and returns an unconfigured Instance in state NEW. The descriptor
// itself is shared across instances; giving each instance its own
// option values mirrors the original's "each run gets its own option
// clone" behavior.
func NewInstance(desc *Descriptor) *Instance {
	return &Instance{
		desc:   desc,
		opts:   desc.NewOptionSet(),
		spanID: netops.NewSpanID(),
		state:  StateNew,
		done:   make(chan struct{}),
	}
}

// Options returns the instance's option set, for configuration prior
// to Start.
func (inst *Instance) Options() *option.Set { return inst.opts }

// SpanID returns the UUIDv7 this instance was tagged with at
// construction, for correlating its log entries across the lifetime
// of a single run (the same scheme netops itself uses via
// [netops.NewSpanID]).
func (inst *Instance) SpanID() string { return inst.spanID }

// State reports the current lifecycle state.
func (inst *Instance) State() State {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.state
}

// AddInPipe wires p as an additional input. Adding the same pipe
// twice is a no-op, matching the original's set-like pipe
// bookkeeping.
func (inst *Instance) AddInPipe(p *Pipe) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	for _, existing := range inst.inPipes {
		if existing == p {
			return
		}
	}
	inst.inPipes = append(inst.inPipes, p)
}

// AddOutPipe wires p as an additional output.
func (inst *Instance) AddOutPipe(p *Pipe) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	for _, existing := range inst.outPipes {
		if existing == p {
			return
		}
	}
	inst.outPipes = append(inst.outPipes, p)
}

// IsSource reports whether the instance has no input pipes, i.e. it
// only produces data (spec §3's source/sink classification).
func (inst *Instance) IsSource() bool {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return len(inst.inPipes) == 0
}

// IsSink reports whether the instance has no output pipes.
func (inst *Instance) IsSink() bool {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return len(inst.outPipes) == 0
}

// Start configures the instance (if not already) and spawns its
// worker goroutine exactly once; subsequent calls return
// ErrAlreadyStarted without spawning anything, matching invariant 9.
func (inst *Instance) Start(ctx context.Context) error {
	first := false
	inst.startOnce.Do(func() {
		first = true
		inst.mu.Lock()
		inst.state = StateRunning
		runCtx, cancel := context.WithCancel(ctx)
		inst.stopFn = cancel
		inst.mu.Unlock()

		inst.opts.MarkStarted()
		go inst.executeMain(runCtx)
	})
	if !first {
		return ErrAlreadyStarted
	}
	return nil
}

// executeMain runs desc.Main, records its outcome, tears down every
// pipe deterministically (closing outputs so downstream readers see
// EOF, draining inputs so upstream senders never block forever on a
// dead reader), and marks the instance STOPPED.
func (inst *Instance) executeMain(ctx context.Context) {
	defer close(inst.done)
	defer inst.teardownPipes()
	defer func() {
		inst.mu.Lock()
		inst.state = StateStopped
		inst.mu.Unlock()
	}()

	result, err := inst.desc.Main(ctx, inst, inst.opts)

	inst.mu.Lock()
	inst.result = result
	inst.err = err
	inst.mu.Unlock()
}

// teardownPipes closes every pipe this instance owns in both
// directions: outputs, so downstream consumers observe end-of-stream,
// and inputs, so upstream producers stop blocking on a reader that is
// gone. This matches spec §4.4/invariant 7's deterministic, two-way
// pipe teardown on run completion.
func (inst *Instance) teardownPipes() {
	inst.mu.Lock()
	outs := append([]*Pipe(nil), inst.outPipes...)
	ins := append([]*Pipe(nil), inst.inPipes...)
	inst.mu.Unlock()
	for _, p := range outs {
		p.Close()
	}
	for _, p := range ins {
		p.Close()
	}
}

// Stop requests cooperative cancellation by cancelling the context
// passed to Main. It is idempotent and does not block; use Wait or
// Join to observe completion.
func (inst *Instance) Stop() {
	inst.stopOnce.Do(func() {
		inst.mu.Lock()
		cancel := inst.stopFn
		inst.mu.Unlock()
		if cancel != nil {
			cancel()
		}
	})
}

// Wait blocks until the instance's worker goroutine has returned.
func (inst *Instance) Wait() {
	<-inst.done
}

// Join blocks until the instance stops or ctx is done, whichever
// comes first.
func (inst *Instance) Join(ctx context.Context) error {
	select {
	case <-inst.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Result returns Main's return value and error. It is only
// meaningful after Wait or Join has returned.
func (inst *Instance) Result() (any, error) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.result, inst.err
}

// Poll reports whether at least one input pipe has a message ready
// to Recv without blocking, waiting up to timeout. A zero timeout
// polls once without waiting. This is the cooperative poll(timeout)
// operation from spec §3: abilities that multiplex several inputs
// call it before Recv to avoid starving any one pipe.
func (inst *Instance) Poll(ctx context.Context, timeout time.Duration) (bool, error) {
	inst.mu.Lock()
	pipes := append([]*Pipe(nil), inst.inPipes...)
	inst.mu.Unlock()
	if len(pipes) == 0 {
		return false, ErrNoInputPipe
	}

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		for _, p := range pipes {
			if p.Len() > 0 || p.IsClosed() {
				return true, nil
			}
		}
		if timeout <= 0 {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				return false, nil
			}
		}
	}
}

// Recv reads one message from whichever input pipe becomes ready
// first, using reflect.Select for an unbiased choice among a
// dynamic number of channels (no starvation, matching spec §9's
// fairness requirement). It returns ok=false once every input pipe
// has been closed and drained, or when ctx is done.
func (inst *Instance) Recv(ctx context.Context) (msg []byte, ok bool, err error) {
	inst.mu.Lock()
	pipes := append([]*Pipe(nil), inst.inPipes...)
	inst.mu.Unlock()
	if len(pipes) == 0 {
		return nil, false, ErrNoInputPipe
	}

	for len(pipes) > 0 {
		cases := make([]reflect.SelectCase, 0, len(pipes)+1)
		for _, p := range pipes {
			cases = append(cases, reflect.SelectCase{
				Dir:  reflect.SelectRecv,
				Chan: reflect.ValueOf(p.ch),
			})
		}
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(ctx.Done()),
		})

		chosen, value, recvOK := reflect.Select(cases)
		if chosen == len(cases)-1 {
			return nil, false, ctx.Err()
		}
		if !recvOK {
			pipes = append(pipes[:chosen], pipes[chosen+1:]...)
			continue
		}
		return value.Interface().([]byte), true, nil
	}
	return nil, false, nil
}

// Send writes msg to every output pipe. It returns ErrNoOutputPipe
// for a sink with nothing to fan out to, and stops at the first pipe
// found closed, reporting that pipe's error.
func (inst *Instance) Send(msg []byte) error {
	inst.mu.Lock()
	pipes := append([]*Pipe(nil), inst.outPipes...)
	inst.mu.Unlock()
	if len(pipes) == 0 {
		return ErrNoOutputPipe
	}
	for _, p := range pipes {
		if err := p.Send(msg); err != nil {
			return err
		}
	}
	return nil
}
