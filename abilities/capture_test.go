// SPDX-License-Identifier: GPL-3.0-or-later

package abilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureDescriptorOptions(t *testing.T) {
	assert.Equal(t, "capture", CaptureDescriptor.Name)
	set := CaptureDescriptor.NewOptionSet()
	assert.ElementsMatch(t, []string{OptBPF, OptInputInterface}, set.Names())
}

func TestSendRawDescriptorOptions(t *testing.T) {
	assert.Equal(t, "sendraw", SendRawDescriptor.Name)
	set := SendRawDescriptor.NewOptionSet()
	assert.ElementsMatch(t, []string{OptOutputInterface}, set.Names())
}
