// SPDX-License-Identifier: GPL-3.0-or-later

package mitm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBPFEmptyWhenNoParameters(t *testing.T) {
	assert.Equal(t, "", buildBPF(nil, nil, nil, nil, nil, nil, nil))
}

func TestBuildBPFCombinesClauses(t *testing.T) {
	bpf := buildBPF("aa:bb:cc:dd:ee:ff", nil, "10.0.0.1", nil, "tcp", nil, 443)
	assert.Contains(t, bpf, "(ether src aa:bb:cc:dd:ee:ff)")
	assert.Contains(t, bpf, "(src host 10.0.0.1)")
	assert.Contains(t, bpf, "(ip or ip6)")
	assert.Contains(t, bpf, "(tcp)")
	assert.Contains(t, bpf, "(dst port 443)")
}

func TestBuildBPFDedupesIPClause(t *testing.T) {
	bpf := buildBPF(nil, nil, "10.0.0.1", "10.0.0.2", nil, nil, nil)
	assert.Equal(t, 1, countOccurrences(bpf, "ip or ip6"))
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
		}
	}
	return count
}

func TestValidateBPFAcceptsEmpty(t *testing.T) {
	assert.NoError(t, validateBPF(""))
}

func TestValidateBPFRejectsGarbage(t *testing.T) {
	err := validateBPF("this is not a valid bpf expression &&&")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrFatalSystem)
}
