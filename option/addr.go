// SPDX-License-Identifier: GPL-3.0-or-later

package option

import (
	"math/big"
	"net/netip"
)

// addrUsableCount returns the number of usable host addresses in p,
// excluding the network and broadcast addresses for IPv4 (and only
// the network address for IPv6, which has no broadcast address),
// matching spec §4.1's Prefix invariant.
func addrUsableCount(p netip.Prefix) uint64 {
	bits := p.Addr().BitLen() - p.Bits()
	if bits <= 0 {
		return 0
	}
	total := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	if p.Addr().Is4() {
		total.Sub(total, big.NewInt(2))
	} else {
		total.Sub(total, big.NewInt(1))
	}
	if total.Sign() < 0 {
		return 0
	}
	if !total.IsUint64() {
		return ^uint64(0)
	}
	return total.Uint64()
}

// addrAt returns the address obtained by adding n to the network
// address of p.
func addrAt(p netip.Prefix, n uint64) netip.Addr {
	base := p.Masked().Addr()
	raw := base.AsSlice()
	v := new(big.Int).SetBytes(raw)
	v.Add(v, new(big.Int).SetUint64(n))
	out := v.Bytes()
	buf := make([]byte, len(raw))
	copy(buf[len(buf)-len(out):], out)
	addr, _ := netip.AddrFromSlice(buf)
	if base.Is4() {
		addr = addr.Unmap()
	}
	return addr
}
