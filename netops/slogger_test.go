// SPDX-License-Identifier: GPL-3.0-or-later

package netops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSLogger(t *testing.T) {
	logger := DefaultSLogger()

	// Should return a non-nil logger
	assert.NotNil(t, logger)

	// Should be able to call Debug and Info without panic (discards output)
	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "key", "value")
}

func TestDiscardSLogger(t *testing.T) {
	logger := discardSLogger{}

	// Verify it implements SLogger
	var _ SLogger = logger

	// Should be able to call Debug and Info without panic (discards output)
	logger.Debug("debug message", "key1", "value1", "key2", 42)
	logger.Info("info message", "key1", "value1", "key2", 42)
}

type recordingSLogger struct {
	msg  string
	args []any
}

func (r *recordingSLogger) Debug(msg string, args ...any) { r.msg, r.args = msg, args }
func (r *recordingSLogger) Info(msg string, args ...any)  { r.msg, r.args = msg, args }

func TestWithSpanIDAppendsSpanIDAttribute(t *testing.T) {
	rec := &recordingSLogger{}
	logger := WithSpanID(rec, "01900000-0000-7000-8000-000000000000")

	logger.Info("connectStart", "protocol", "tcp")

	assert.Equal(t, "connectStart", rec.msg)
	assert.Equal(t, []any{"protocol", "tcp", "spanID", "01900000-0000-7000-8000-000000000000"}, rec.args)
}

func TestWithSpanIDPassesThroughWhenEmpty(t *testing.T) {
	rec := &recordingSLogger{}
	logger := WithSpanID(rec, "")

	assert.Same(t, SLogger(rec), logger)
}
