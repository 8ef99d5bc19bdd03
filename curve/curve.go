// Package curve is the bilinear-group arithmetic adapter: a thin
// contract over github.com/fentec-project/bn256, providing the scalar,
// G1/G2/GT point operations and pairing the rest of the scheme packages
// are built on. Nothing in this package is probabilistic except
// RandomScalar, RandomInvertibleScalar, RandomG1 and RandomG2.
package curve

import (
	"io"
	"math/big"

	"github.com/fentec-project/bn256"
)

// Order is the prime order of G1, G2 and GT, and the modulus of the
// scalar field F.
var Order = bn256.Order

// Encoded byte lengths of bn256's Marshal output (uncompressed affine
// coordinates; no point compression is used), fixed here once so the
// codec package can derive wire sizes without hard-coding library
// internals in two places.
const (
	G1Size = 64
	G2Size = 128
	GTSize = 384
)

// G1 is a point in the first source group.
type G1 struct{ p *bn256.G1 }

// G2 is a point in the second source group.
type G2 struct{ p *bn256.G2 }

// GT is a point in the pairing target group.
type GT struct{ p *bn256.GT }

// RandomScalar draws a uniform scalar in [0, Order) from r.
func RandomScalar(r io.Reader) (*big.Int, error) {
	k, err := randFieldElement(r)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// RandomInvertibleScalar draws a uniform scalar in [0, Order), rejecting
// until the result is invertible mod Order (i.e. nonzero, since Order is
// prime). Spec.md §4.1: "Scalars are sampled by rejection until
// invertible in the scalar field."
func RandomInvertibleScalar(r io.Reader) (*big.Int, error) {
	for {
		k, err := randFieldElement(r)
		if err != nil {
			return nil, err
		}
		if k.Sign() != 0 {
			return k, nil
		}
	}
}

func randFieldElement(r io.Reader) (*big.Int, error) {
	k, err := big.NewInt(0), error(nil)
	k, err = randBigInt(r, Order)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// randBigInt draws a uniform value in [0, max) using rejection sampling
// against the smallest power-of-two superset, matching the approach
// bn256's own RandomG1/RandomG2 helpers use internally.
func randBigInt(r io.Reader, max *big.Int) (*big.Int, error) {
	bitLen := max.BitLen()
	byteLen := (bitLen + 7) / 8
	buf := make([]byte, byteLen)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		// Mask off the high bits beyond bitLen so the rejection rate
		// stays below 2x.
		excess := uint(byteLen*8 - bitLen)
		buf[0] &= byte(0xFF >> excess)
		k := new(big.Int).SetBytes(buf)
		if k.Cmp(max) < 0 {
			return k, nil
		}
	}
}

// G1Generator returns the canonical base point of G1.
func G1Generator() *G1 {
	return &G1{new(bn256.G1).ScalarBaseMult(big.NewInt(1))}
}

// G2Generator returns the canonical base point of G2.
func G2Generator() *G2 {
	return &G2{new(bn256.G2).ScalarBaseMult(big.NewInt(1))}
}

// RandomG1 samples a uniform point in G1.
func RandomG1(r io.Reader) (*G1, error) {
	k, err := RandomScalar(r)
	if err != nil {
		return nil, err
	}
	return &G1{new(bn256.G1).ScalarBaseMult(k)}, nil
}

// RandomG2 samples a uniform point in G2.
func RandomG2(r io.Reader) (*G2, error) {
	k, err := RandomScalar(r)
	if err != nil {
		return nil, err
	}
	return &G2{new(bn256.G2).ScalarBaseMult(k)}, nil
}

// Add returns a+b.
func (a *G1) Add(b *G1) *G1 { return &G1{new(bn256.G1).Add(a.p, b.p)} }

// ScalarMult returns a*k.
func (a *G1) ScalarMult(k *big.Int) *G1 { return &G1{new(bn256.G1).ScalarMult(a.p, k)} }

// ScalarBaseMultG1 returns g1*k for the canonical generator g1.
func ScalarBaseMultG1(k *big.Int) *G1 { return &G1{new(bn256.G1).ScalarBaseMult(k)} }

// Neg returns -a.
func (a *G1) Neg() *G1 { return &G1{new(bn256.G1).Neg(a.p)} }

// Equal reports whether a and b encode the same point.
func (a *G1) Equal(b *G1) bool { return string(a.Marshal()) == string(b.Marshal()) }

// Marshal returns the canonical (uncompressed) encoding of a.
func (a *G1) Marshal() []byte { return a.p.Marshal() }

// UnmarshalG1 decodes a G1 point in the encoding Marshal produces.
func UnmarshalG1(data []byte) (*G1, error) {
	p := new(bn256.G1)
	if _, err := p.Unmarshal(data); err != nil {
		return nil, err
	}
	return &G1{p}, nil
}

// Add returns a+b.
func (a *G2) Add(b *G2) *G2 { return &G2{new(bn256.G2).Add(a.p, b.p)} }

// ScalarMult returns a*k.
func (a *G2) ScalarMult(k *big.Int) *G2 { return &G2{new(bn256.G2).ScalarMult(a.p, k)} }

// ScalarBaseMultG2 returns g2*k for the canonical generator g2.
func ScalarBaseMultG2(k *big.Int) *G2 { return &G2{new(bn256.G2).ScalarBaseMult(k)} }

// Equal reports whether a and b encode the same point.
func (a *G2) Equal(b *G2) bool { return string(a.Marshal()) == string(b.Marshal()) }

// Marshal returns the canonical (uncompressed) encoding of a.
func (a *G2) Marshal() []byte { return a.p.Marshal() }

// UnmarshalG2 decodes a G2 point in the encoding Marshal produces.
func UnmarshalG2(data []byte) (*G2, error) {
	p := new(bn256.G2)
	if _, err := p.Unmarshal(data); err != nil {
		return nil, err
	}
	return &G2{p}, nil
}

// Add returns a+b.
func (a *GT) Add(b *GT) *GT { return &GT{new(bn256.GT).Add(a.p, b.p)} }

// Sub returns a-b.
func (a *GT) Sub(b *GT) *GT { return a.Add(b.Neg()) }

// Neg returns -a.
func (a *GT) Neg() *GT { return &GT{new(bn256.GT).Neg(a.p)} }

// ScalarMult returns a*k.
func (a *GT) ScalarMult(k *big.Int) *GT { return &GT{new(bn256.GT).ScalarMult(a.p, k)} }

// Equal reports whether a and b encode the same point.
func (a *GT) Equal(b *GT) bool { return string(a.Marshal()) == string(b.Marshal()) }

// Marshal returns the canonical encoding of a.
func (a *GT) Marshal() []byte { return a.p.Marshal() }

// UnmarshalGT decodes a GT element.
func UnmarshalGT(data []byte) (*GT, error) {
	p := new(bn256.GT)
	if _, err := p.Unmarshal(data); err != nil {
		return nil, err
	}
	return &GT{p}, nil
}

// ZeroGT is the identity element of GT (i.e. the encoding of 1 in the
// multiplicative target group, written additively here).
func ZeroGT() *GT { return &GT{new(bn256.GT).ScalarBaseMult(big.NewInt(0))} }

// Pair computes the optimal-ate pairing e(a, b) in GT.
func Pair(a *G1, b *G2) *GT {
	return &GT{bn256.Pair(a.p, b.p)}
}
