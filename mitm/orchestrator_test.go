// SPDX-License-Identifier: GPL-3.0-or-later

package mitm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckConsistencyRequiresInputInterface(t *testing.T) {
	err := checkConsistency(params{})
	assert.ErrorIs(t, err, ErrInconsistentParameters)
}

func TestCheckConsistencyRejectsPortWithoutProtocol(t *testing.T) {
	p := params{iface: "eth0", portSrc: 80}
	err := checkConsistency(p)
	assert.ErrorIs(t, err, ErrInconsistentParameters)
}

func TestCheckConsistencyRejectsMuxWithoutOuterface(t *testing.T) {
	p := params{iface: "eth0", mux: true}
	err := checkConsistency(p)
	assert.ErrorIs(t, err, ErrInconsistentParameters)
}

func TestCheckConsistencyRejectsSameInterfaceTwice(t *testing.T) {
	p := params{iface: "eth0", outerface: "eth0"}
	err := checkConsistency(p)
	assert.ErrorIs(t, err, ErrInconsistentParameters)
}

func TestCheckConsistencyAcceptsValidSingleInterface(t *testing.T) {
	p := params{iface: "eth0"}
	assert.NoError(t, checkConsistency(p))
}

func TestCheckConsistencyAcceptsValidBridgedMux(t *testing.T) {
	p := params{iface: "eth0", outerface: "eth1", mux: true, protocol: "tcp", portSrc: 80}
	assert.NoError(t, checkConsistency(p))
}

func TestCheckBridgeConsistencySkipsSingleInterfaceMode(t *testing.T) {
	p := params{iface: "eth0"}
	assert.NoError(t, checkBridgeConsistency(p))
}

func TestCheckBridgeConsistencyAcceptsUnresolvableInterfaces(t *testing.T) {
	p := params{iface: "pw-test-nonexistent-0", outerface: "pw-test-nonexistent-1"}
	assert.NoError(t, checkBridgeConsistency(p), "names that don't resolve to links are validated later, not here")
}

func TestIsBridgeReturnsFalseForUnresolvableName(t *testing.T) {
	assert.False(t, isBridge("pw-test-nonexistent-0"))
}

func TestCurrentBridgeOfReturnsFalseForUnresolvableName(t *testing.T) {
	_, enslaved := currentBridgeOf("pw-test-nonexistent-0")
	assert.False(t, enslaved)
}
