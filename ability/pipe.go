// SPDX-License-Identifier: GPL-3.0-or-later

package ability

import "sync"

// DefaultPipeBuffer is the channel capacity new pipes are created
// with, matching spec §9's "bounded message channels" design note.
const DefaultPipeBuffer = 64

// Pipe is a unidirectional, point-to-point, order-preserving message
// channel carrying opaque byte payloads (spec §3). It is owned
// jointly by the two abilities it connects and is safe to close from
// either side.
type Pipe struct {
	ch chan []byte

	mu     sync.Mutex
	closed bool
}

// NewPipe creates a pipe with the given buffer capacity.
func NewPipe(buffer int) *Pipe {
	if buffer <= 0 {
		buffer = DefaultPipeBuffer
	}
	return &Pipe{ch: make(chan []byte, buffer)}
}

// Send enqueues msg. It reports an error if the pipe is already
// closed instead of blocking or panicking.
func (p *Pipe) Send(msg []byte) (err error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errPipeClosed
	}
	p.mu.Unlock()

	defer func() {
		if recover() != nil {
			err = errPipeClosed
		}
	}()
	p.ch <- msg
	return nil
}

// Len reports the number of messages currently buffered, used by
// Poll as a non-consuming readiness probe.
func (p *Pipe) Len() int { return len(p.ch) }

// IsClosed reports whether Close has been called.
func (p *Pipe) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Close closes the pipe. It is idempotent.
func (p *Pipe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.ch)
}

var errPipeClosed = pipeClosedError{}

type pipeClosedError struct{}

func (pipeClosedError) Error() string { return "ability: pipe closed" }
