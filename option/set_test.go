// SPDX-License-Identifier: GPL-3.0-or-later

package option_test

import (
	"testing"

	"github.com/ANSSI-FR/packetweaver/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSetNonGeneratorRoundTrips grounds invariant 2: after
// Set(n, r) with IsValid(r) true and r not a generator name,
// Get(n, interpreted=false) == r.
func TestSetNonGeneratorRoundTrips(t *testing.T) {
	ip := option.NewIP("target")
	set := option.NewSet(ip)

	require.NoError(t, set.Set("target", "10.1.2.3"))
	v, err := set.Get("target", false, false)
	require.NoError(t, err)
	assert.Equal(t, "10.1.2.3", v)
}

// TestSetGetIsIdempotentWithoutBypass grounds invariant 3: Get is
// idempotent without bypass_cache=true.
func TestSetGetIsIdempotentWithoutBypass(t *testing.T) {
	n := option.NewNumber("count")
	set := option.NewSet(n)

	require.NoError(t, set.Set("count", "RandByte"))
	first, err := set.Get("count", true, false)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := set.Get("count", true, false)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSetUnknownOption(t *testing.T) {
	set := option.NewSet(option.NewIP("target"))
	assert.ErrorIs(t, set.Set("nope", "1.2.3.4"), option.ErrUnknownOption)
	_, err := set.Get("nope", true, false)
	assert.ErrorIs(t, err, option.ErrUnknownOption)
}

func TestSetRejectsMutationAfterStart(t *testing.T) {
	set := option.NewSet(option.NewIP("target"))
	set.MarkStarted()
	assert.ErrorIs(t, set.Set("target", "10.0.0.1"), option.ErrStarted)
}

func TestSetClearRestoresLayeredDefault(t *testing.T) {
	mode := option.NewChoice("mode", []string{"a", "b", "c"}, option.WithChoiceDefault("a"))
	set := option.NewSet(mode)

	require.NoError(t, set.SetCallerDefault("mode", "b"))
	require.NoError(t, set.Set("mode", "c"))
	require.NoError(t, set.Clear("mode"))

	v, err := set.Get("mode", true, false)
	require.NoError(t, err)
	assert.Equal(t, "b", v, "Clear should restore the caller-supplied default, not the descriptor default")
}

func TestSetExplicitGeneratorInvocation(t *testing.T) {
	ip := option.NewIP("target")
	set := option.NewSet(ip)

	require.NoError(t, set.Set("target", "RandIP4()"))
	raw, err := set.Get("target", false, false)
	require.NoError(t, err)
	assert.NotEqual(t, "RandIP4()", raw, "explicit generator invocation should be materialized immediately")
}
