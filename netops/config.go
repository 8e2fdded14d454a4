// SPDX-License-Identifier: GPL-3.0-or-later

package netops

import (
	"net"
	"time"
)

// Config holds common configuration for netops operations.
//
// Pass this to constructor functions to pre-wire dependencies.
// All fields have sensible defaults set by [NewConfig].
type Config struct {
	// Dialer is used by [*ConnectFunc].
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time

	// SpanID, when non-empty, tags every log entry emitted through
	// constructors built from this Config with a "spanID" attribute
	// (see [WithSpanID]), so logs from concurrently running abilities
	// stay attributable to the run that produced them.
	//
	// Left empty by [NewConfig]; callers set it to an
	// ability.Instance's SpanID() before building operations from it.
	SpanID string
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialer:        &net.Dialer{},
		ErrClassifier: DefaultErrClassifier,
		TimeNow:       time.Now,
	}
}
