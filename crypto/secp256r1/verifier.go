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

// Package secp256r1 implements ECDSA verification on the NIST P-256 curve
// for the P256VERIFY precompile.
package secp256r1

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"
)

// Verify checks an ECDSA signature (r, s) over a 32-byte message hash
// against the public key (x, y). All component checks (scalar range,
// coordinates on curve) are performed here; an out-of-range or off-curve
// input yields false, never a panic.
func Verify(hash []byte, r, s, x, y *big.Int) bool {
	curve := elliptic.P256()
	n := curve.Params().N

	if r.Sign() <= 0 || s.Sign() <= 0 || r.Cmp(n) >= 0 || s.Cmp(n) >= 0 {
		return false
	}
	// IsOnCurve rejects coordinates outside [0, P) and the point at infinity.
	if !curve.IsOnCurve(x, y) {
		return false
	}

	pub := &ecdsa.PublicKey{Curve: curve, X: x, Y: y}
	return ecdsa.Verify(pub, hash, r, s)
}
