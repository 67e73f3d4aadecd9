// Copyright 2014 The go-ethereum Authors
// (original work)
// Copyright 2025 The Meridian Authors
// (modifications)
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

package vm

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck

	"github.com/meridianchain/meridian/common"
	"github.com/meridianchain/meridian/crypto"
	"github.com/meridianchain/meridian/crypto/blake2b"
	bls "github.com/meridianchain/meridian/crypto/bls12381"
	"github.com/meridianchain/meridian/crypto/bn256"
	"github.com/meridianchain/meridian/crypto/kzg"
	"github.com/meridianchain/meridian/crypto/secp256r1"
	"github.com/meridianchain/meridian/params"
)

// PrecompiledContract is the basic interface for native Go contracts. The
// implementation requires a deterministic gas count based on the input size
// of the Run method of the contract.
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64  // RequiredGas calculates the contract gas use
	Run(input []byte) ([]byte, error) // Run runs the precompiled contract
}

// RunPrecompiledContract runs and evaluates the output of a precompiled
// contract. It charges the gas before execution: if suppliedGas does not
// cover the requirement, ErrOutOfGas is returned and no work is done.
func RunPrecompiledContract(p PrecompiledContract, input []byte, suppliedGas uint64, logger *zerolog.Logger) (ret []byte, remainingGas uint64, err error) {
	gasCost := p.RequiredGas(input)
	if suppliedGas < gasCost {
		return nil, 0, ErrOutOfGas
	}
	suppliedGas -= gasCost
	ret, err = p.Run(input)
	if err != nil && logger != nil {
		logger.Debug().Err(err).Msg("precompiled contract fault")
	}
	return ret, suppliedGas, err
}

var (
	errInvalidSignature = errors.New("invalid signature")

	errModExpBaseLengthTooLarge     = errors.New("base length is too large")
	errModExpExponentLengthTooLarge = errors.New("exponent length is too large")
	errModExpModulusLengthTooLarge  = errors.New("modulus length is too large")

	errBadPairingInput = errors.New("bad elliptic curve pairing size")

	errBlake2FInvalidInputLength = errors.New("invalid input length")
	errBlake2FInvalidFinalFlag   = errors.New("invalid final flag")

	errBLS12381InvalidInputLength = errors.New("invalid input length")
	errBLS12381G1PointSubgroup    = errors.New("g1 point is not on correct subgroup")
	errBLS12381G2PointSubgroup    = errors.New("g2 point is not on correct subgroup")
)

var (
	true32Byte  = []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	false32Byte = make([]byte, 32)
)

// ECRECOVER implemented as a native contract.
type ecrecover struct{}

func (c *ecrecover) RequiredGas(input []byte) uint64 {
	return params.EcrecoverGas
}

func (c *ecrecover) Run(input []byte) ([]byte, error) {
	const ecRecoverInputLength = 128

	input = common.RightPadBytes(input, ecRecoverInputLength)
	// "input" is (hash, v, r, s), each 32 bytes
	// but for ecrecover we want (r, s, v)

	r := new(big.Int).SetBytes(input[64:96])
	s := new(big.Int).SetBytes(input[96:128])
	v := input[63] - 27

	// tighter sig s values input homestead only apply to tx sigs
	if !allZero(input[32:63]) || !crypto.ValidateSignatureValues(v, r, s, false) {
		return nil, errInvalidSignature
	}
	// We must make sure not to modify the 'input', so placing the 'v' along
	// with the signature needs to be done on a new allocation
	sig := make([]byte, 65)
	copy(sig, input[64:128])
	sig[64] = v
	// v needs to be at the end for libsecp256k1
	pubKey, err := crypto.Ecrecover(input[:32], sig)
	// make sure the public key is a valid one
	if err != nil {
		return nil, errInvalidSignature
	}

	// the first byte of pubkey is bitcoin heritage
	h := crypto.Keccak256Hash(pubKey[1:])
	return common.LeftPadBytes(h[12:], 32), nil
}

// SHA256 implemented as a native contract.
type sha256hash struct{}

// RequiredGas returns the gas required to execute the pre-compiled contract.
//
// This method does not require any overflow checking as the input size gas
// costs required for anything significant is so high it's impossible to pay
// for.
func (c *sha256hash) RequiredGas(input []byte) uint64 {
	return uint64(len(input)+31)/32*params.Sha256PerWordGas + params.Sha256BaseGas
}

func (c *sha256hash) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// RIPEMD160 implemented as a native contract.
type ripemd160hash struct{}

func (c *ripemd160hash) RequiredGas(input []byte) uint64 {
	return uint64(len(input)+31)/32*params.Ripemd160PerWordGas + params.Ripemd160BaseGas
}

func (c *ripemd160hash) Run(input []byte) ([]byte, error) {
	ripemd := ripemd160.New()
	ripemd.Write(input)
	return common.LeftPadBytes(ripemd.Sum(nil), 32), nil
}

// data copy implemented as a native contract.
type dataCopy struct{}

func (c *dataCopy) RequiredGas(input []byte) uint64 {
	return uint64(len(input)+31)/32*params.IdentityPerWordGas + params.IdentityBaseGas
}

func (c *dataCopy) Run(in []byte) ([]byte, error) {
	return common.Copy(in), nil
}

// bigModExp implements a native big integer exponential modular operation.
type bigModExp struct {
	eip2565 bool
	osaka   bool
}

var (
	big1      = big.NewInt(1)
	big3      = big.NewInt(3)
	big7      = big.NewInt(7)
	big8      = big.NewInt(8)
	big32     = big.NewInt(32)
	big64     = big.NewInt(64)
	big96     = big.NewInt(96)
	big480    = big.NewInt(480)
	big1024   = big.NewInt(1024)
	big3072   = big.NewInt(3072)
	big199680 = big.NewInt(199680)
)

func bigMax(x, y *big.Int) *big.Int {
	if x.Cmp(y) < 0 {
		return y
	}
	return x
}

// modexpMultComplexity implements mult_complexity from EIP-198:
//
//	def mult_complexity(x):
//		if x <= 64: return x ** 2
//		elif x <= 1024: return x ** 2 // 4 + 96 * x - 3072
//		else: return x ** 2 // 16 + 480 * x - 199680
//
// where x is max(length_of_MODULUS, length_of_BASE)
func modexpMultComplexity(x *big.Int) *big.Int {
	switch {
	case x.Cmp(big64) <= 0:
		x.Mul(x, x) // x ** 2
	case x.Cmp(big1024) <= 0:
		// (x ** 2 // 4 ) + ( 96 * x - 3072)
		x = new(big.Int).Add(
			new(big.Int).Rsh(new(big.Int).Mul(x, x), 2),
			new(big.Int).Sub(new(big.Int).Mul(big96, x), big3072),
		)
	default:
		// (x ** 2 // 16) + (480 * x - 199680)
		x = new(big.Int).Add(
			new(big.Int).Rsh(new(big.Int).Mul(x, x), 4),
			new(big.Int).Sub(new(big.Int).Mul(big480, x), big199680),
		)
	}
	return x
}

// RequiredGas returns the gas required to execute the pre-compiled contract.
func (c *bigModExp) RequiredGas(input []byte) uint64 {
	if c.osaka {
		return c.requiredGasEIP7883(input)
	}
	var (
		baseLen = new(big.Int).SetBytes(getData(input, 0, 32))
		expLen  = new(big.Int).SetBytes(getData(input, 32, 32))
		modLen  = new(big.Int).SetBytes(getData(input, 64, 32))
	)
	if len(input) > 96 {
		input = input[96:]
	} else {
		input = input[:0]
	}
	// Retrieve the head 32 bytes of exp for the adjusted exponent length
	var expHead *big.Int
	if big.NewInt(int64(len(input))).Cmp(baseLen) <= 0 {
		expHead = new(big.Int)
	} else {
		if expLen.Cmp(big32) > 0 {
			expHead = new(big.Int).SetBytes(getData(input, baseLen.Uint64(), 32))
		} else {
			expHead = new(big.Int).SetBytes(getData(input, baseLen.Uint64(), expLen.Uint64()))
		}
	}
	// Calculate the adjusted exponent length
	var msb int
	if bitlen := expHead.BitLen(); bitlen > 0 {
		msb = bitlen - 1
	}
	adjExpLen := new(big.Int)
	if expLen.Cmp(big32) > 0 {
		adjExpLen.Sub(expLen, big32)
		adjExpLen.Mul(big8, adjExpLen)
	}
	adjExpLen.Add(adjExpLen, big.NewInt(int64(msb)))
	// Calculate the gas cost of the operation
	gas := new(big.Int).Set(bigMax(modLen, baseLen))
	if c.eip2565 {
		// EIP-2565: multiplication complexity is ceiling(x/8)^2, the
		// divisor GQUADDIVISOR becomes 3, and a floor price applies.
		gas.Add(gas, big7)
		gas.Rsh(gas, 3)
		gas.Mul(gas, gas)

		gas.Mul(gas, bigMax(adjExpLen, big1))
		gas.Div(gas, big3)
		if gas.BitLen() > 64 {
			return math.MaxUint64
		}
		if gas.Uint64() < params.ModExpMinGasEIP2565 {
			return params.ModExpMinGasEIP2565
		}
		return gas.Uint64()
	}
	gas = modexpMultComplexity(gas)
	gas.Mul(gas, bigMax(adjExpLen, big1))
	gas.Div(gas, new(big.Int).SetUint64(params.ModExpQuadCoeffDivEIP198))

	if gas.BitLen() > 64 {
		return math.MaxUint64
	}
	return gas.Uint64()
}

// requiredGasEIP7883 prices the modexp call under EIP-7883: the complexity
// for operands over 32 bytes doubles, the exponent length multiplier grows
// to 16 and the floor price becomes 500.
func (c *bigModExp) requiredGasEIP7883(input []byte) uint64 {
	baseLen, overflowBase := new(uint256.Int).SetBytes(getData(input, 0, 32)).Uint64WithOverflow()
	expLen, overflowExp := new(uint256.Int).SetBytes(getData(input, 32, 32)).Uint64WithOverflow()
	modLen, overflowMod := new(uint256.Int).SetBytes(getData(input, 64, 32)).Uint64WithOverflow()
	if overflowBase || overflowExp || overflowMod {
		return math.MaxUint64
	}
	if len(input) > 96 {
		input = input[96:]
	} else {
		input = input[:0]
	}
	var expHead *uint256.Int
	if uint64(len(input)) <= baseLen {
		expHead = new(uint256.Int)
	} else if expLen > 32 {
		expHead = new(uint256.Int).SetBytes(getData(input, baseLen, 32))
	} else {
		expHead = new(uint256.Int).SetBytes(getData(input, baseLen, expLen))
	}
	var msb uint64
	if bitlen := expHead.BitLen(); bitlen > 0 {
		msb = uint64(bitlen - 1)
	}
	iterCount := new(uint256.Int)
	if expLen > 32 {
		iterCount.SetUint64(expLen - 32)
		iterCount.Mul(iterCount, uint256.NewInt(16))
	}
	iterCount.Add(iterCount, uint256.NewInt(msb))
	if iterCount.IsZero() {
		iterCount.SetOne()
	}

	maxLen := baseLen
	if modLen > maxLen {
		maxLen = modLen
	}
	multComplexity := uint256.NewInt(16)
	if maxLen > 32 {
		// maxLen + 7 can exceed 64 bits, keep the word count in uint256
		words := new(uint256.Int).AddUint64(uint256.NewInt(maxLen), 7)
		words.Rsh(words, 3)
		multComplexity.Mul(words, words)
		multComplexity.Mul(multComplexity, uint256.NewInt(2))
	}

	gas := new(uint256.Int).Mul(multComplexity, iterCount)
	gas.Div(gas, uint256.NewInt(3))
	gasU64, overflow := gas.Uint64WithOverflow()
	if overflow {
		return math.MaxUint64
	}
	if gasU64 < params.ModExpMinGasEIP7883 {
		return params.ModExpMinGasEIP7883
	}
	return gasU64
}

func (c *bigModExp) Run(input []byte) ([]byte, error) {
	var (
		baseLen = new(big.Int).SetBytes(getData(input, 0, 32)).Uint64()
		expLen  = new(big.Int).SetBytes(getData(input, 32, 32)).Uint64()
		modLen  = new(big.Int).SetBytes(getData(input, 64, 32)).Uint64()
	)
	if c.osaka {
		// EIP-7823 bounds all operand lengths
		if baseLen > params.ModExpMaxInputLenEIP7823 {
			return nil, errModExpBaseLengthTooLarge
		}
		if expLen > params.ModExpMaxInputLenEIP7823 {
			return nil, errModExpExponentLengthTooLarge
		}
		if modLen > params.ModExpMaxInputLenEIP7823 {
			return nil, errModExpModulusLengthTooLarge
		}
	}
	if len(input) > 96 {
		input = input[96:]
	} else {
		input = input[:0]
	}
	// Handle a special case when both the base and mod length are zero
	if baseLen == 0 && modLen == 0 {
		return []byte{}, nil
	}
	// Retrieve the operands and execute the exponentiation
	var (
		base = new(big.Int).SetBytes(getData(input, 0, baseLen))
		exp  = new(big.Int).SetBytes(getData(input, baseLen, expLen))
		mod  = new(big.Int).SetBytes(getData(input, baseLen+expLen, modLen))
		v    []byte
	)
	switch {
	case mod.BitLen() == 0:
		// Modulo 0 is undefined, return zero
		v = []byte{}
	case base.BitLen() == 1: // a bit length of 1 means it's 1 (or -1)
		// If base == 1, then we can just return base % mod (if mod >= 1, which it is)
		v = base.Mod(base, mod).Bytes()
	default:
		v = base.Exp(base, exp, mod).Bytes()
	}
	return common.LeftPadBytes(v, int(modLen)), nil
}

// runBn254Add implements the Bn254Add precompile, referenced by both
// Byzantium and Istanbul operations.
func runBn254Add(input []byte) ([]byte, error) {
	var p, q bn256.G1Affine
	if err := bn256.UnmarshalCurvePoint(getData(input, 0, 64), &p); err != nil {
		return nil, err
	}
	if err := bn256.UnmarshalCurvePoint(getData(input, 64, 64), &q); err != nil {
		return nil, err
	}
	p.Add(&p, &q)
	return bn256.MarshalCurvePoint(&p, make([]byte, 0, 64)), nil
}

// bn254AddIstanbul implements a native elliptic curve point addition
// conforming to Istanbul consensus rules.
type bn254AddIstanbul struct{}

func (c *bn254AddIstanbul) RequiredGas(input []byte) uint64 {
	return params.Bn254AddGasIstanbul
}

func (c *bn254AddIstanbul) Run(input []byte) ([]byte, error) {
	return runBn254Add(input)
}

// bn254AddByzantium implements a native elliptic curve point addition
// conforming to Byzantium consensus rules.
type bn254AddByzantium struct{}

func (c *bn254AddByzantium) RequiredGas(input []byte) uint64 {
	return params.Bn254AddGasByzantium
}

func (c *bn254AddByzantium) Run(input []byte) ([]byte, error) {
	return runBn254Add(input)
}

// runBn254ScalarMul implements the Bn254ScalarMul precompile, referenced by
// both Byzantium and Istanbul operations.
func runBn254ScalarMul(input []byte) ([]byte, error) {
	var p bn256.G1Affine
	if err := bn256.UnmarshalCurvePoint(getData(input, 0, 64), &p); err != nil {
		return nil, err
	}
	p.ScalarMultiplication(&p, new(big.Int).SetBytes(getData(input, 64, 32)))
	return bn256.MarshalCurvePoint(&p, make([]byte, 0, 64)), nil
}

// bn254ScalarMulIstanbul implements a native elliptic curve scalar
// multiplication conforming to Istanbul consensus rules.
type bn254ScalarMulIstanbul struct{}

func (c *bn254ScalarMulIstanbul) RequiredGas(input []byte) uint64 {
	return params.Bn254ScalarMulGasIstanbul
}

func (c *bn254ScalarMulIstanbul) Run(input []byte) ([]byte, error) {
	return runBn254ScalarMul(input)
}

// bn254ScalarMulByzantium implements a native elliptic curve scalar
// multiplication conforming to Byzantium consensus rules.
type bn254ScalarMulByzantium struct{}

func (c *bn254ScalarMulByzantium) RequiredGas(input []byte) uint64 {
	return params.Bn254ScalarMulGasByzantium
}

func (c *bn254ScalarMulByzantium) Run(input []byte) ([]byte, error) {
	return runBn254ScalarMul(input)
}

// runBn254Pairing implements the Bn254Pairing precompile, referenced by
// both Byzantium and Istanbul operations.
func runBn254Pairing(input []byte) ([]byte, error) {
	// Handle some corner cases cheaply
	if len(input)%192 > 0 {
		return nil, errBadPairingInput
	}
	// An empty product is the identity, which satisfies the check
	if len(input) == 0 {
		return true32Byte, nil
	}
	pairCount := len(input) / 192
	g1s := make([]bn256.G1Affine, 0, pairCount)
	g2s := make([]bn256.G2Affine, 0, pairCount)
	for i := 0; i < pairCount; i++ {
		var p bn256.G1Affine
		if err := bn256.UnmarshalCurvePoint(input[i*192:i*192+64], &p); err != nil {
			return nil, err
		}
		var q bn256.G2Affine
		if err := bn256.UnmarshalTwistPoint(input[i*192+64:(i+1)*192], &q); err != nil {
			return nil, err
		}
		g1s = append(g1s, p)
		g2s = append(g2s, q)
	}
	ok, err := bn256.PairingCheck(g1s, g2s)
	if err != nil {
		return nil, err
	}
	if ok {
		return true32Byte, nil
	}
	return false32Byte, nil
}

// bn254PairingIstanbul implements a pairing pre-compile for the bn254 curve
// conforming to Istanbul consensus rules.
type bn254PairingIstanbul struct{}

func (c *bn254PairingIstanbul) RequiredGas(input []byte) uint64 {
	return params.Bn254PairingBaseGasIstanbul + uint64(len(input)/192)*params.Bn254PairingPerPointGasIstanbul
}

func (c *bn254PairingIstanbul) Run(input []byte) ([]byte, error) {
	return runBn254Pairing(input)
}

// bn254PairingByzantium implements a pairing pre-compile for the bn254 curve
// conforming to Byzantium consensus rules.
type bn254PairingByzantium struct{}

func (c *bn254PairingByzantium) RequiredGas(input []byte) uint64 {
	return params.Bn254PairingBaseGasByzantium + uint64(len(input)/192)*params.Bn254PairingPerPointGasByzantium
}

func (c *bn254PairingByzantium) Run(input []byte) ([]byte, error) {
	return runBn254Pairing(input)
}

// blake2F implements the BLAKE2b compression function F precompile
// introduced by EIP-152.
type blake2F struct{}

const (
	blake2FInputLength        = 213
	blake2FFinalBlockBytes    = byte(1)
	blake2FNonFinalBlockBytes = byte(0)
)

func (c *blake2F) RequiredGas(input []byte) uint64 {
	// If the input is malformed, we can't calculate the gas, return 0 and
	// let the actual call choke and fault.
	if len(input) != blake2FInputLength {
		return 0
	}
	return uint64(binary.BigEndian.Uint32(input[0:4]))
}

func (c *blake2F) Run(input []byte) ([]byte, error) {
	// Make sure the input is valid (correct length and final flag)
	if len(input) != blake2FInputLength {
		return nil, errBlake2FInvalidInputLength
	}
	if input[212] != blake2FNonFinalBlockBytes && input[212] != blake2FFinalBlockBytes {
		return nil, errBlake2FInvalidFinalFlag
	}
	// Parse the input into the Blake2b call parameters
	var (
		rounds = binary.BigEndian.Uint32(input[0:4])
		final  = input[212] == blake2FFinalBlockBytes

		h [8]uint64
		m [16]uint64
		t [2]uint64
	)
	for i := 0; i < 8; i++ {
		offset := 4 + i*8
		h[i] = binary.LittleEndian.Uint64(input[offset : offset+8])
	}
	for i := 0; i < 16; i++ {
		offset := 68 + i*8
		m[i] = binary.LittleEndian.Uint64(input[offset : offset+8])
	}
	t[0] = binary.LittleEndian.Uint64(input[196:204])
	t[1] = binary.LittleEndian.Uint64(input[204:212])

	// Execute the compression function, extract and return the result
	blake2b.F(&h, m, t, final, rounds)

	output := make([]byte, 64)
	for i := 0; i < 8; i++ {
		offset := i * 8
		binary.LittleEndian.PutUint64(output[offset:offset+8], h[i])
	}
	return output, nil
}

// pointEvaluation implements the EIP-4844 point evaluation precompile. The
// KZG backend is fixed at construction time.
type pointEvaluation struct {
	backend kzg.Backend
}

func (c *pointEvaluation) RequiredGas(input []byte) uint64 {
	return params.PointEvaluationGas
}

func (c *pointEvaluation) Run(input []byte) ([]byte, error) {
	return kzg.PointEvaluationPrecompile(c.backend, input)
}

// bls12381G1Add implements EIP-2537 G1Add precompile.
type bls12381G1Add struct{}

func (c *bls12381G1Add) RequiredGas(input []byte) uint64 {
	return params.Bls12381G1AddGas
}

func (c *bls12381G1Add) Run(input []byte) ([]byte, error) {
	// G1 addition call expects 256 bytes as input: two encoded G1 points.
	// Addition inputs are exempt from the subgroup check.
	if len(input) != 2*bls.G1PointLength {
		return nil, errBLS12381InvalidInputLength
	}
	p0, err := bls.DecodePointG1(input[:bls.G1PointLength])
	if err != nil {
		return nil, err
	}
	p1, err := bls.DecodePointG1(input[bls.G1PointLength:])
	if err != nil {
		return nil, err
	}
	p0.Add(p0, p1)
	return bls.EncodePointG1(p0), nil
}

// bls12381G1MultiExp implements EIP-2537 G1MSM precompile.
type bls12381G1MultiExp struct{}

func (c *bls12381G1MultiExp) RequiredGas(input []byte) uint64 {
	// Calculate G1 point, scalar value pair length
	k := len(input) / bls.G1MsmItemLength
	if k == 0 {
		// Return 0 gas for small input length
		return 0
	}
	// Lookup discount value for G1 point, scalar value pair length
	var discount uint64
	if dLen := len(params.Bls12381G1MultiExpDiscountTable); k < dLen {
		discount = params.Bls12381G1MultiExpDiscountTable[k-1]
	} else {
		discount = params.Bls12381G1MultiExpDiscountTable[dLen-1]
	}
	// Calculate gas and return the result
	return (uint64(k) * params.Bls12381G1MulGas * discount) / 1000
}

func (c *bls12381G1MultiExp) Run(input []byte) ([]byte, error) {
	k := len(input) / bls.G1MsmItemLength
	if len(input) == 0 || len(input)%bls.G1MsmItemLength != 0 {
		return nil, errBLS12381InvalidInputLength
	}
	points := make([]bls.G1Affine, k)
	scalars := make([]bls.ScalarElement, k)
	for i := 0; i < k; i++ {
		off := bls.G1MsmItemLength * i
		p, err := bls.DecodePointG1(input[off : off+bls.G1PointLength])
		if err != nil {
			return nil, err
		}
		// MSM inputs require the full subgroup check
		if !p.IsInSubGroup() {
			return nil, errBLS12381G1PointSubgroup
		}
		points[i] = *p
		scalars[i] = bls.DecodeScalar(input[off+bls.G1PointLength : off+bls.G1MsmItemLength])
	}
	r, err := bls.MultiExpG1(points, scalars)
	if err != nil {
		return nil, err
	}
	return bls.EncodePointG1(r), nil
}

// bls12381G2Add implements EIP-2537 G2Add precompile.
type bls12381G2Add struct{}

func (c *bls12381G2Add) RequiredGas(input []byte) uint64 {
	return params.Bls12381G2AddGas
}

func (c *bls12381G2Add) Run(input []byte) ([]byte, error) {
	// G2 addition call expects 512 bytes as input: two encoded G2 points.
	// Addition inputs are exempt from the subgroup check.
	if len(input) != 2*bls.G2PointLength {
		return nil, errBLS12381InvalidInputLength
	}
	p0, err := bls.DecodePointG2(input[:bls.G2PointLength])
	if err != nil {
		return nil, err
	}
	p1, err := bls.DecodePointG2(input[bls.G2PointLength:])
	if err != nil {
		return nil, err
	}
	p0.Add(p0, p1)
	return bls.EncodePointG2(p0), nil
}

// bls12381G2MultiExp implements EIP-2537 G2MSM precompile.
type bls12381G2MultiExp struct{}

func (c *bls12381G2MultiExp) RequiredGas(input []byte) uint64 {
	// Calculate G2 point, scalar value pair length
	k := len(input) / bls.G2MsmItemLength
	if k == 0 {
		// Return 0 gas for small input length
		return 0
	}
	// Lookup discount value for G2 point, scalar value pair length
	var discount uint64
	if dLen := len(params.Bls12381G2MultiExpDiscountTable); k < dLen {
		discount = params.Bls12381G2MultiExpDiscountTable[k-1]
	} else {
		discount = params.Bls12381G2MultiExpDiscountTable[dLen-1]
	}
	// Calculate gas and return the result
	return (uint64(k) * params.Bls12381G2MulGas * discount) / 1000
}

func (c *bls12381G2MultiExp) Run(input []byte) ([]byte, error) {
	k := len(input) / bls.G2MsmItemLength
	if len(input) == 0 || len(input)%bls.G2MsmItemLength != 0 {
		return nil, errBLS12381InvalidInputLength
	}
	points := make([]bls.G2Affine, k)
	scalars := make([]bls.ScalarElement, k)
	for i := 0; i < k; i++ {
		off := bls.G2MsmItemLength * i
		p, err := bls.DecodePointG2(input[off : off+bls.G2PointLength])
		if err != nil {
			return nil, err
		}
		// MSM inputs require the full subgroup check
		if !p.IsInSubGroup() {
			return nil, errBLS12381G2PointSubgroup
		}
		points[i] = *p
		scalars[i] = bls.DecodeScalar(input[off+bls.G2PointLength : off+bls.G2MsmItemLength])
	}
	r, err := bls.MultiExpG2(points, scalars)
	if err != nil {
		return nil, err
	}
	return bls.EncodePointG2(r), nil
}

// bls12381Pairing implements EIP-2537 Pairing precompile.
type bls12381Pairing struct{}

func (c *bls12381Pairing) RequiredGas(input []byte) uint64 {
	return params.Bls12381PairingBaseGas + uint64(len(input)/bls.PairLength)*params.Bls12381PairingPerPairGas
}

func (c *bls12381Pairing) Run(input []byte) ([]byte, error) {
	// Pairing call expects k*384 bytes as input, k > 0: pairs of an encoded
	// G1 point and an encoded G2 point.
	k := len(input) / bls.PairLength
	if len(input) == 0 || len(input)%bls.PairLength != 0 {
		return nil, errBLS12381InvalidInputLength
	}
	g1s := make([]bls.G1Affine, 0, k)
	g2s := make([]bls.G2Affine, 0, k)
	for i := 0; i < k; i++ {
		off := bls.PairLength * i
		p, err := bls.DecodePointG1(input[off : off+bls.G1PointLength])
		if err != nil {
			return nil, err
		}
		q, err := bls.DecodePointG2(input[off+bls.G1PointLength : off+bls.PairLength])
		if err != nil {
			return nil, err
		}
		// Pairing inputs require the full subgroup check on both sides
		if !p.IsInSubGroup() {
			return nil, errBLS12381G1PointSubgroup
		}
		if !q.IsInSubGroup() {
			return nil, errBLS12381G2PointSubgroup
		}
		g1s = append(g1s, *p)
		g2s = append(g2s, *q)
	}
	ok, err := bls.PairingCheck(g1s, g2s)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 32)
	if ok {
		out[31] = 1
	}
	return out, nil
}

// bls12381MapFpToG1 implements EIP-2537 MapFpToG1 precompile.
type bls12381MapFpToG1 struct{}

func (c *bls12381MapFpToG1) RequiredGas(input []byte) uint64 {
	return params.Bls12381MapFpToG1Gas
}

func (c *bls12381MapFpToG1) Run(input []byte) ([]byte, error) {
	// Map_To_G1 call expects 64 bytes as input: an encoded base field element
	if len(input) != bls.FieldElementLength {
		return nil, errBLS12381InvalidInputLength
	}
	r, err := bls.MapToG1(input)
	if err != nil {
		return nil, err
	}
	return bls.EncodePointG1(r), nil
}

// bls12381MapFp2ToG2 implements EIP-2537 MapFp2ToG2 precompile.
type bls12381MapFp2ToG2 struct{}

func (c *bls12381MapFp2ToG2) RequiredGas(input []byte) uint64 {
	return params.Bls12381MapFp2ToG2Gas
}

func (c *bls12381MapFp2ToG2) Run(input []byte) ([]byte, error) {
	// Map_To_G2 call expects 128 bytes as input: an encoded Fp2 element
	if len(input) != 2*bls.FieldElementLength {
		return nil, errBLS12381InvalidInputLength
	}
	r, err := bls.MapToG2(input)
	if err != nil {
		return nil, err
	}
	return bls.EncodePointG2(r), nil
}

// p256Verify implements the secp256r1 signature verification precompile
// (RIP-7212, repriced by EIP-7951).
type p256Verify struct {
	eip7951 bool
}

func (c *p256Verify) RequiredGas(input []byte) uint64 {
	if c.eip7951 {
		return params.P256VerifyGasEIP7951
	}
	return params.P256VerifyGas
}

func (c *p256Verify) Run(input []byte) ([]byte, error) {
	// Required input length is 160 bytes
	const p256VerifyInputLength = 160
	// Check the input length. A malformed input yields an empty result, not
	// an error: the contract reports verification failure.
	if len(input) != p256VerifyInputLength {
		return nil, nil
	}
	// Extract the hash, r, s, x, y from the input
	hash := input[0:32]
	r, s := new(big.Int).SetBytes(input[32:64]), new(big.Int).SetBytes(input[64:96])
	x, y := new(big.Int).SetBytes(input[96:128]), new(big.Int).SetBytes(input[128:160])

	// Verify the secp256r1 signature
	if secp256r1.Verify(hash, r, s, x, y) {
		// Signature is valid
		return true32Byte, nil
	}
	// Signature is invalid
	return nil, nil
}
