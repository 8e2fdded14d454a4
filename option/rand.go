// SPDX-License-Identifier: GPL-3.0-or-later

package option

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
)

// rng is the shared random source behind every "Rand*" generator name,
// adapted from the original source's libs/gen/rand_draw.py RandDraw.
type rng struct{}

var defaultRNG = rng{}

func (rng) byteInRange(lo, hi byte) byte {
	if hi <= lo {
		return lo
	}
	return lo + byte(mrand.IntN(int(hi-lo)+1))
}

// ipv4Class draws a dotted-quad IPv4 address with the first octet
// restricted to [lo, hi] and the remaining octets fully random,
// mirroring the classful generators (RandIP_classA..E).
func (r rng) ipv4Class(lo, hi byte) string {
	return fmt.Sprintf("%d.%d.%d.%d", r.byteInRange(lo, hi),
		mrand.IntN(256), mrand.IntN(256), mrand.IntN(256))
}

func (r rng) ipv4() string {
	return r.ipv4Class(0, 255)
}

func (rng) ipv6() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%x:%x:%x:%x:%x:%x:%x:%x",
		uint16(b[0])<<8|uint16(b[1]), uint16(b[2])<<8|uint16(b[3]),
		uint16(b[4])<<8|uint16(b[5]), uint16(b[6])<<8|uint16(b[7]),
		uint16(b[8])<<8|uint16(b[9]), uint16(b[10])<<8|uint16(b[11]),
		uint16(b[12])<<8|uint16(b[13]), uint16(b[14])<<8|uint16(b[15]))
}

func (rng) mac() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", b[0], b[1], b[2], b[3], b[4], b[5])
}

// multicastMAC draws a MAC within the IPv4-multicast OUI range
// 01:00:5e:00-7f:xx:xx, mirroring RandMulticastMac.
func (r rng) multicastMAC() string {
	b := make([]byte, 2)
	_, _ = rand.Read(b)
	return fmt.Sprintf("01:00:5e:%02x:%02x:%02x", r.byteInRange(0x00, 0x7f), b[0], b[1])
}

func (rng) number(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	n := new(big.Int).Sub(big.NewInt(hi), big.NewInt(lo))
	n.Add(n, big.NewInt(1))
	v, err := rand.Int(rand.Reader, n)
	if err != nil {
		return lo
	}
	return lo + v.Int64()
}

func (rng) str() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	n := 8 + mrand.IntN(8)
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[mrand.IntN(len(alphabet))]
	}
	return string(out)
}
