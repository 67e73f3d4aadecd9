// Copyright 2025 The Meridian Authors
// This file is part of Meridian.
//
// Meridian is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Meridian is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Meridian. If not, see <http://www.gnu.org/licenses/>.

// Package bls12381 wraps gnark-crypto's BLS12-381 arithmetic with the
// EIP-2537 byte framing: field elements padded to 64 bytes with 16 zero
// top bytes, uncompressed points, all-zero meaning the point at infinity.
package bls12381

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Affine point and scalar types of the underlying library.
type (
	G1Affine      = bls12381.G1Affine
	G2Affine      = bls12381.G2Affine
	ScalarElement = fr.Element
)

// Encoded operand widths per EIP-2537.
const (
	FieldElementLength = 64
	G1PointLength      = 2 * FieldElementLength
	G2PointLength      = 4 * FieldElementLength
	ScalarLength       = 32
	G1MsmItemLength    = G1PointLength + ScalarLength
	G2MsmItemLength    = G2PointLength + ScalarLength
	PairLength         = G1PointLength + G2PointLength
)

var (
	ErrInvalidFieldElementTopBytes = errors.New("invalid field element top bytes")
	ErrInvalidFieldElementLength   = errors.New("invalid field element length")
	ErrInvalidPointLength          = errors.New("invalid point encoding length")
	ErrPointNotOnCurve             = errors.New("invalid point: not on curve")
)

// DecodeFieldElement decodes a 64-byte padded, big-endian base field
// element. The 16 top bytes must be zero and the value must be canonical.
func DecodeFieldElement(in []byte) (fp.Element, error) {
	var el fp.Element
	if len(in) != FieldElementLength {
		return el, ErrInvalidFieldElementLength
	}
	// check the padding
	for i := 0; i < 16; i++ {
		if in[i] != byte(0x00) {
			return el, ErrInvalidFieldElementTopBytes
		}
	}
	if err := el.SetBytesCanonical(in[16:]); err != nil {
		return el, err
	}
	return el, nil
}

// DecodeScalar reads a 32-byte big-endian scalar, reduced modulo the group
// order. MSM scalars are not required to be canonical.
func DecodeScalar(in []byte) fr.Element {
	var s fr.Element
	s.SetBytes(in)
	return s
}

// DecodePointG1 decodes a 128-byte G1 point. The all-zero encoding is the
// point at infinity. Subgroup membership is NOT checked here; operations
// that require it check explicitly.
func DecodePointG1(in []byte) (*bls12381.G1Affine, error) {
	if len(in) != G1PointLength {
		return nil, ErrInvalidPointLength
	}
	var p bls12381.G1Affine
	var err error
	if p.X, err = DecodeFieldElement(in[:FieldElementLength]); err != nil {
		return nil, err
	}
	if p.Y, err = DecodeFieldElement(in[FieldElementLength:]); err != nil {
		return nil, err
	}
	if !p.IsOnCurve() {
		return nil, ErrPointNotOnCurve
	}
	return &p, nil
}

// EncodePointG1 encodes a G1 point into the 128-byte EIP-2537 form.
func EncodePointG1(p *bls12381.G1Affine) []byte {
	out := make([]byte, G1PointLength)
	if !p.IsInfinity() {
		x := p.X.Bytes()
		y := p.Y.Bytes()
		copy(out[16:], x[:])
		copy(out[16+FieldElementLength:], y[:])
	}
	return out
}

// DecodePointG2 decodes a 256-byte G2 point, real part of each Fp2
// coordinate first. The all-zero encoding is the point at infinity.
func DecodePointG2(in []byte) (*bls12381.G2Affine, error) {
	if len(in) != G2PointLength {
		return nil, ErrInvalidPointLength
	}
	var p bls12381.G2Affine
	var err error
	if p.X.A0, err = DecodeFieldElement(in[:FieldElementLength]); err != nil {
		return nil, err
	}
	if p.X.A1, err = DecodeFieldElement(in[FieldElementLength : 2*FieldElementLength]); err != nil {
		return nil, err
	}
	if p.Y.A0, err = DecodeFieldElement(in[2*FieldElementLength : 3*FieldElementLength]); err != nil {
		return nil, err
	}
	if p.Y.A1, err = DecodeFieldElement(in[3*FieldElementLength:]); err != nil {
		return nil, err
	}
	if !p.IsOnCurve() {
		return nil, ErrPointNotOnCurve
	}
	return &p, nil
}

// EncodePointG2 encodes a G2 point into the 256-byte EIP-2537 form.
func EncodePointG2(p *bls12381.G2Affine) []byte {
	out := make([]byte, G2PointLength)
	if !p.IsInfinity() {
		x0 := p.X.A0.Bytes()
		x1 := p.X.A1.Bytes()
		y0 := p.Y.A0.Bytes()
		y1 := p.Y.A1.Bytes()
		copy(out[16:], x0[:])
		copy(out[16+FieldElementLength:], x1[:])
		copy(out[16+2*FieldElementLength:], y0[:])
		copy(out[16+3*FieldElementLength:], y1[:])
	}
	return out
}

// MultiExpG1 computes the multi scalar multiplication over G1.
func MultiExpG1(points []bls12381.G1Affine, scalars []fr.Element) (*bls12381.G1Affine, error) {
	r := new(bls12381.G1Affine)
	if _, err := r.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return r, nil
}

// MultiExpG2 computes the multi scalar multiplication over G2.
func MultiExpG2(points []bls12381.G2Affine, scalars []fr.Element) (*bls12381.G2Affine, error) {
	r := new(bls12381.G2Affine)
	if _, err := r.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return r, nil
}

// MapToG1 maps a 64-byte encoded base field element to a G1 point using
// the SSWU map. The result is always in the r-order subgroup.
func MapToG1(in []byte) (*bls12381.G1Affine, error) {
	fe, err := DecodeFieldElement(in)
	if err != nil {
		return nil, err
	}
	p := bls12381.MapToG1(fe)
	return &p, nil
}

// MapToG2 maps a 128-byte encoded Fp2 element (real part first) to a G2
// point using the SSWU map. The result is always in the r-order subgroup.
func MapToG2(in []byte) (*bls12381.G2Affine, error) {
	if len(in) != 2*FieldElementLength {
		return nil, ErrInvalidFieldElementLength
	}
	c0, err := DecodeFieldElement(in[:FieldElementLength])
	if err != nil {
		return nil, err
	}
	c1, err := DecodeFieldElement(in[FieldElementLength:])
	if err != nil {
		return nil, err
	}
	p := bls12381.MapToG2(bls12381.E2{A0: c0, A1: c1})
	return &p, nil
}

// PairingCheck computes the product of Ate pairings over the given point
// pairs and reports whether the result equals one.
func PairingCheck(g1s []bls12381.G1Affine, g2s []bls12381.G2Affine) (bool, error) {
	return bls12381.PairingCheck(g1s, g2s)
}
