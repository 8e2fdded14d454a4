// SPDX-License-Identifier: GPL-3.0-or-later

package option_test

import (
	"testing"

	"github.com/ANSSI-FR/packetweaver/option"
	"github.com/stretchr/testify/assert"
)

func TestMACValidation(t *testing.T) {
	mac := option.NewMAC("target")
	assert.True(t, mac.IsValid("aa:bb:cc:dd:ee:ff"))
	assert.True(t, mac.IsValid("aa:*:cc:dd:ee:ff"))
	assert.True(t, mac.IsValid("aabbccddeeff"))
	assert.True(t, mac.IsValid("RandMac"))
	assert.True(t, mac.IsValid("MacFF"))
	assert.False(t, mac.IsValid("not-a-mac"))
	assert.False(t, mac.IsValid("aa:bb:cc:dd:ee"))
}

func TestMACNamedGenerators(t *testing.T) {
	mac := option.NewMAC("target")
	v, err := mac.GenerateOneValue("MacFF")
	assert.NoError(t, err)
	assert.Equal(t, "ff:ff:ff:ff:ff:ff", v)

	v, err = mac.GenerateOneValue("Mac00")
	assert.NoError(t, err)
	assert.Equal(t, "00:00:00:00:00:00", v)
}

func TestMACOptionalGeneratesNilForAbsent(t *testing.T) {
	mac := option.NewMAC("target", option.WithMACOptional(true))
	v, err := mac.GenerateOneValue("None")
	assert.NoError(t, err)
	assert.Nil(t, v)
}
