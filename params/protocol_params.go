// Copyright 2015 The go-ethereum Authors
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

// Package params holds the protocol gas constants of the precompiled
// contracts. Values are normative; changing any of them is consensus
// breaking.
package params

const (
	EcrecoverGas uint64 = 3000 // Elliptic curve sender recovery gas price

	Sha256BaseGas       uint64 = 60  // Base price for a SHA256 operation
	Sha256PerWordGas    uint64 = 12  // Per-word price for a SHA256 operation
	Ripemd160BaseGas    uint64 = 600 // Base price for a RIPEMD160 operation
	Ripemd160PerWordGas uint64 = 120 // Per-word price for a RIPEMD160 operation
	IdentityBaseGas     uint64 = 15  // Base price for a data copy operation
	IdentityPerWordGas  uint64 = 3   // Per-word price for a data copy operation

	ModExpQuadCoeffDivEIP198 uint64 = 20  // Divisor for the quadratic particle of the EIP-198 modexp cost
	ModExpMinGasEIP2565      uint64 = 200 // Floor price of the EIP-2565 modexp
	ModExpMinGasEIP7883      uint64 = 500 // Floor price of the EIP-7883 modexp
	ModExpMaxInputLenEIP7823 uint64 = 1024

	Bn254AddGasByzantium             uint64 = 500    // Gas needed for a bn254 addition
	Bn254AddGasIstanbul              uint64 = 150    // EIP-1108 repricing
	Bn254ScalarMulGasByzantium       uint64 = 40000  // Gas needed for a bn254 scalar multiplication
	Bn254ScalarMulGasIstanbul        uint64 = 6000   // EIP-1108 repricing
	Bn254PairingBaseGasByzantium     uint64 = 100000 // Base price for a bn254 pairing check
	Bn254PairingBaseGasIstanbul      uint64 = 45000  // EIP-1108 repricing
	Bn254PairingPerPointGasByzantium uint64 = 80000  // Per-point price for a bn254 pairing check
	Bn254PairingPerPointGasIstanbul  uint64 = 34000  // EIP-1108 repricing

	Bls12381G1AddGas          uint64 = 375   // Price for BLS12-381 G1 point addition
	Bls12381G1MulGas          uint64 = 12000 // Per-term price of a BLS12-381 G1 multi scalar multiplication
	Bls12381G2AddGas          uint64 = 600   // Price for BLS12-381 G2 point addition
	Bls12381G2MulGas          uint64 = 22500 // Per-term price of a BLS12-381 G2 multi scalar multiplication
	Bls12381PairingBaseGas    uint64 = 37700 // Base price for a BLS12-381 pairing check
	Bls12381PairingPerPairGas uint64 = 32600 // Per-pair price for a BLS12-381 pairing check
	Bls12381MapFpToG1Gas      uint64 = 5500  // Price for mapping an Fp element to G1
	Bls12381MapFp2ToG2Gas     uint64 = 23800 // Price for mapping an Fp2 element to G2

	PointEvaluationGas uint64 = 50000 // Price of the EIP-4844 point evaluation precompile

	P256VerifyGas        uint64 = 3450 // Price of a secp256r1 signature verification (RIP-7212)
	P256VerifyGasEIP7951 uint64 = 6900 // EIP-7951 repricing
)

// Bls12381G1MultiExpDiscountTable holds the per-mille MSM discount of
// EIP-2537 for G1, indexed by operand count - 1 and capped at the last
// entry for larger counts.
var Bls12381G1MultiExpDiscountTable = [128]uint64{1000, 949, 848, 797, 764, 750, 738, 728, 719, 712, 705, 698, 692, 687, 682, 677, 673, 669, 665, 661, 658, 654, 651, 648, 645, 642, 640, 637, 635, 632, 630, 627, 625, 623, 621, 619, 617, 615, 613, 611, 609, 608, 606, 604, 603, 601, 599, 598, 596, 595, 593, 592, 591, 589, 588, 586, 585, 584, 582, 581, 580, 579, 577, 576, 575, 574, 573, 572, 570, 569, 568, 567, 566, 565, 564, 563, 562, 561, 560, 559, 558, 557, 556, 555, 554, 553, 552, 551, 550, 549, 548, 547, 547, 546, 545, 544, 543, 542, 541, 540, 540, 539, 538, 537, 536, 536, 535, 534, 533, 532, 532, 531, 530, 529, 528, 528, 527, 526, 525, 525, 524, 523, 522, 522, 521, 520, 520, 519}

// Bls12381G2MultiExpDiscountTable is the EIP-2537 G2 MSM discount curve.
var Bls12381G2MultiExpDiscountTable = [128]uint64{1000, 1000, 923, 884, 855, 832, 812, 796, 782, 770, 759, 749, 740, 732, 724, 717, 711, 704, 699, 693, 688, 683, 679, 674, 670, 666, 663, 659, 655, 652, 649, 646, 643, 640, 637, 634, 632, 629, 627, 624, 622, 620, 618, 615, 613, 611, 609, 607, 606, 604, 602, 600, 598, 597, 595, 593, 592, 590, 589, 587, 586, 584, 583, 582, 580, 579, 578, 576, 575, 574, 573, 571, 570, 569, 568, 567, 566, 565, 563, 562, 561, 560, 559, 558, 557, 556, 555, 554, 553, 552, 552, 551, 550, 549, 548, 547, 546, 545, 545, 544, 543, 542, 541, 541, 540, 539, 538, 537, 537, 536, 535, 535, 534, 533, 532, 532, 531, 530, 530, 529, 528, 528, 527, 526, 526, 525, 524, 524}
