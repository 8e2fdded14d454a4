// SPDX-License-Identifier: GPL-3.0-or-later

package option_test

import (
	"testing"

	"github.com/ANSSI-FR/packetweaver/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberValidation(t *testing.T) {
	n := option.NewNumber("count")
	assert.True(t, n.IsValid("42"))
	assert.True(t, n.IsValid("3.14"))
	assert.True(t, n.IsValid("RandByte"))
	assert.False(t, n.IsValid("not-a-number"))
}

func TestNumberGeneratorsStayInRange(t *testing.T) {
	n := option.NewNumber("count")
	v, err := n.GenerateOneValue("RandByte")
	require.NoError(t, err)
	b := v.(int64)
	assert.GreaterOrEqual(t, b, int64(0))
	assert.LessOrEqual(t, b, int64(255))
}

func TestPortValidation(t *testing.T) {
	p := option.NewPort("dst")
	assert.True(t, p.IsValid("80"))
	assert.True(t, p.IsValid(65535))
	assert.False(t, p.IsValid("65536"))
	assert.False(t, p.IsValid(-1))
	assert.True(t, p.IsValid("RandPrivilegedPort"))
}

func TestPortPrivilegedGeneratorRange(t *testing.T) {
	p := option.NewPort("dst")
	v, err := p.GenerateOneValue("RandPrivilegedPort")
	require.NoError(t, err)
	n := v.(int64)
	assert.GreaterOrEqual(t, n, int64(1))
	assert.LessOrEqual(t, n, int64(1024))
}
