// SPDX-License-Identifier: GPL-3.0-or-later

package option

import "math/big"

// cyclicPermutation visits the integers 1..count exactly once, in an
// order derived from a multiplicative generator modulo the smallest
// odd prime p >= count+1, per spec §9's "Cyclic permuted prefix
// enumeration" design note. Adapted from the original source's
// libs/gen/cyclic_rng.py CyclicPRNG, reimplemented on math/big so that
// both the primality test (Rabin-Miller, via ProbablyPrime) and the
// primitive-root search work for arbitrarily large prefixes.
type cyclicPermutation struct {
	p       *big.Int
	g       *big.Int
	acc     *big.Int
	count   uint64
	emitted uint64
	steps   uint64
	maxStep uint64
}

func newCyclicPermutation(count uint64) *cyclicPermutation {
	c := &cyclicPermutation{count: count}
	if count == 0 {
		return c
	}
	p := nextPrimeAtLeast(count + 1)
	c.p = p
	c.g = primitiveRoot(p)
	c.acc = new(big.Int).Set(c.g)
	c.maxStep = new(big.Int).Sub(p, big.NewInt(1)).Uint64()
	return c
}

// next returns the next value in the permutation, or (0, false) once
// all `count` values have been emitted.
func (c *cyclicPermutation) next() (uint64, bool) {
	if c.count == 0 || c.emitted >= c.count {
		return 0, false
	}
	one := big.NewInt(1)
	for c.steps < c.maxStep {
		v := c.acc.Uint64()
		c.acc.Mul(c.acc, c.g)
		c.acc.Mod(c.acc, c.p)
		c.steps++
		if v >= 1 && v <= c.count {
			c.emitted++
			_ = one
			return v, true
		}
	}
	return 0, false
}

func nextPrimeAtLeast(n uint64) *big.Int {
	cand := new(big.Int).SetUint64(n)
	two := big.NewInt(2)
	if cand.Bit(0) == 0 {
		cand.Add(cand, big.NewInt(1))
	}
	if cand.Cmp(two) < 0 {
		cand.SetInt64(2)
	}
	for !cand.ProbablyPrime(20) {
		cand.Add(cand, big.NewInt(2))
	}
	return cand
}

// primeFactors returns the distinct prime factors of n via trial
// division, mirroring CyclicPRNG.pFactors.
func primeFactors(n *big.Int) []*big.Int {
	var factors []*big.Int
	rem := new(big.Int).Set(n)
	two := big.NewInt(2)
	if new(big.Int).Mod(rem, two).Sign() == 0 {
		factors = append(factors, big.NewInt(2))
		for new(big.Int).Mod(rem, two).Sign() == 0 {
			rem.Div(rem, two)
		}
	}
	d := big.NewInt(3)
	dSq := new(big.Int)
	for dSq.Mul(d, d); dSq.Cmp(rem) <= 0; dSq.Mul(d, d) {
		m := new(big.Int).Mod(rem, d)
		if m.Sign() == 0 {
			factors = append(factors, new(big.Int).Set(d))
			for new(big.Int).Mod(rem, d).Sign() == 0 {
				rem.Div(rem, d)
			}
		}
		d.Add(d, two)
	}
	if rem.Cmp(big.NewInt(1)) > 0 {
		factors = append(factors, rem)
	}
	return factors
}

// primitiveRoot finds a generator of the multiplicative group mod p,
// for prime p, via the factorization of p-1.
func primitiveRoot(p *big.Int) *big.Int {
	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
	factors := primeFactors(pMinus1)
	one := big.NewInt(1)
	for g := int64(2); ; g++ {
		gb := big.NewInt(g)
		if gb.Cmp(p) >= 0 {
			return one // unreachable for any prefix PacketWeaver deals with
		}
		ok := true
		for _, f := range factors {
			e := new(big.Int).Div(pMinus1, f)
			if new(big.Int).Exp(gb, e, p).Cmp(one) == 0 {
				ok = false
				break
			}
		}
		if ok {
			return gb
		}
	}
}
