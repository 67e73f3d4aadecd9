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

// Package bn256 wraps gnark-crypto's alt_bn128 (bn254) arithmetic with the
// byte framing the EVM precompiles use: uncompressed big-endian coordinates,
// all-zero meaning the point at infinity, non-canonical encodings rejected.
// The package keeps the historical bn256 name the precompiles were specified
// under.
package bn256

import (
	"encoding/binary"
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// Affine point types of the underlying library.
type (
	G1Affine = bn254.G1Affine
	G2Affine = bn254.G2Affine
)

var (
	errInvalidInputSize = errors.New("invalid input size")
	errSubgroupCheck    = errors.New("invalid point: subgroup check failed")
)

// UnmarshalCurvePoint unmarshals a [32-byte X | 32-byte Y] slice to a
// G1Affine point. The all-zero encoding is the point at infinity.
func UnmarshalCurvePoint(input []byte, point *G1Affine) error {
	if len(input) != 64 {
		return errInvalidInputSize
	}

	isAllZeroes := true
	for i := 0; i < 64; i += 8 {
		if 0 != binary.BigEndian.Uint64(input[i:i+8]) {
			isAllZeroes = false
			break
		}
	}
	if isAllZeroes {
		return nil
	}

	// read X and Y coordinates
	if err := point.X.SetBytesCanonical(input[:32]); err != nil {
		return err
	}
	if err := point.Y.SetBytesCanonical(input[32:64]); err != nil {
		return err
	}

	// subgroup check
	if !point.IsInSubGroup() {
		return errSubgroupCheck
	}
	return nil
}

// MarshalCurvePoint marshals a G1Affine point to a byte slice in
// [32-byte X | 32-byte Y] form.
func MarshalCurvePoint(point *G1Affine, ret []byte) []byte {
	xBytes := point.X.Bytes()
	yBytes := point.Y.Bytes()
	ret = append(ret, xBytes[:]...)
	ret = append(ret, yBytes[:]...)
	return ret
}

// UnmarshalTwistPoint unmarshals a 128-byte G2 point. The EVM orders each
// Fp2 coordinate imaginary-part first. The all-zero encoding is the point
// at infinity.
func UnmarshalTwistPoint(input []byte, point *G2Affine) error {
	if len(input) != 128 {
		return errInvalidInputSize
	}

	isAllZeroes := true
	for i := 0; i < 128; i += 8 {
		if 0 != binary.BigEndian.Uint64(input[i:i+8]) {
			isAllZeroes = false
			break
		}
	}
	if isAllZeroes {
		return nil
	}

	if err := point.X.A1.SetBytesCanonical(input[:32]); err != nil {
		return err
	}
	if err := point.X.A0.SetBytesCanonical(input[32:64]); err != nil {
		return err
	}
	if err := point.Y.A1.SetBytesCanonical(input[64:96]); err != nil {
		return err
	}
	if err := point.Y.A0.SetBytesCanonical(input[96:128]); err != nil {
		return err
	}

	if !point.IsOnCurve() || !point.IsInSubGroup() {
		return errSubgroupCheck
	}
	return nil
}

// PairingCheck computes the Ate pairing over the given point pairs and
// reports whether the result equals one.
func PairingCheck(g1s []G1Affine, g2s []G2Affine) (bool, error) {
	return bn254.PairingCheck(g1s, g2s)
}
