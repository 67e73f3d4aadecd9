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

package vm

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/meridianchain/meridian/chain"
	"github.com/meridianchain/meridian/common"
	"github.com/meridianchain/meridian/crypto/kzg"
)

// tableConfig holds construction-time choices for an ActivationTable.
type tableConfig struct {
	kzgBackend kzg.Backend
}

// Option customizes activation table construction.
type Option func(*tableConfig)

// WithKZGBackend selects the library backing the point evaluation
// precompile. The default is kzg.BackendGoKZG.
func WithKZGBackend(b kzg.Backend) Option {
	return func(cfg *tableConfig) {
		cfg.kzgBackend = b
	}
}

type binding struct {
	addr     common.Address
	contract PrecompiledContract
}

func addr(b byte) common.Address {
	return common.BytesToAddress([]byte{b})
}

// forkDeltas returns, per hardfork, the bindings it introduces or replaces.
// A later entry for an address shadows the earlier one, which is how the
// EIP-1108, EIP-2565 and EIP-7883 repricings are expressed.
func forkDeltas(cfg *tableConfig) map[chain.Hardfork][]binding {
	return map[chain.Hardfork][]binding{
		chain.Frontier: {
			{addr(0x01), &ecrecover{}},
			{addr(0x02), &sha256hash{}},
			{addr(0x03), &ripemd160hash{}},
			{addr(0x04), &dataCopy{}},
		},
		chain.Byzantium: {
			{addr(0x05), &bigModExp{}},
			{addr(0x06), &bn254AddByzantium{}},
			{addr(0x07), &bn254ScalarMulByzantium{}},
			{addr(0x08), &bn254PairingByzantium{}},
		},
		chain.Istanbul: {
			{addr(0x06), &bn254AddIstanbul{}},
			{addr(0x07), &bn254ScalarMulIstanbul{}},
			{addr(0x08), &bn254PairingIstanbul{}},
			{addr(0x09), &blake2F{}},
		},
		chain.Berlin: {
			{addr(0x05), &bigModExp{eip2565: true}},
		},
		chain.Cancun: {
			{addr(0x0a), &pointEvaluation{backend: cfg.kzgBackend}},
		},
		chain.Prague: {
			{addr(0x0b), &bls12381G1Add{}},
			{addr(0x0c), &bls12381G1MultiExp{}},
			{addr(0x0d), &bls12381G2Add{}},
			{addr(0x0e), &bls12381G2MultiExp{}},
			{addr(0x0f), &bls12381Pairing{}},
			{addr(0x10), &bls12381MapFpToG1{}},
			{addr(0x11), &bls12381MapFp2ToG2{}},
		},
		chain.Osaka: {
			{addr(0x05), &bigModExp{eip2565: true, osaka: true}},
			{common.BytesToAddress([]byte{0x01, 0x00}), &p256Verify{}},
		},
	}
}

// ActivationTable is the immutable set of precompiles active under one
// hardfork. Construction is the only mutation; afterwards the table is safe
// for concurrent use.
type ActivationTable struct {
	fork      chain.Hardfork
	contracts map[common.Address]PrecompiledContract
	addresses []common.Address
}

// NewActivationTable composes the activation deltas of every hardfork up to
// and including fork. It panics on an unknown hardfork: the fork identifier
// is part of the caller's static configuration, not runtime input.
func NewActivationTable(fork chain.Hardfork, opts ...Option) *ActivationTable {
	if !fork.Valid() {
		panic(fmt.Sprintf("unknown hardfork %d", uint32(fork)))
	}
	var cfg tableConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	deltas := forkDeltas(&cfg)
	contracts := make(map[common.Address]PrecompiledContract)
	for _, f := range chain.Hardforks() {
		if f > fork {
			break
		}
		for _, b := range deltas[f] {
			contracts[b.addr] = b.contract
		}
	}

	addresses := make([]common.Address, 0, len(contracts))
	for a := range contracts {
		addresses = append(addresses, a)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return bytes.Compare(addresses[i][:], addresses[j][:]) < 0
	})

	log.Debug().
		Stringer("fork", fork).
		Int("precompiles", len(addresses)).
		Stringer("kzgBackend", cfg.kzgBackend).
		Msg("built precompile activation table")

	return &ActivationTable{
		fork:      fork,
		contracts: contracts,
		addresses: addresses,
	}
}

// Fork returns the hardfork the table was built for.
func (t *ActivationTable) Fork() chain.Hardfork {
	return t.fork
}

// Precompile returns the contract bound at addr, if any.
func (t *ActivationTable) Precompile(a common.Address) (PrecompiledContract, bool) {
	p, ok := t.contracts[a]
	return p, ok
}

// IsPrecompile reports whether addr hosts an active precompile.
func (t *ActivationTable) IsPrecompile(a common.Address) bool {
	_, ok := t.contracts[a]
	return ok
}

// ActiveAddresses returns the active precompile addresses in ascending
// order. The returned slice is a copy.
func (t *ActivationTable) ActiveAddresses() []common.Address {
	out := make([]common.Address, len(t.addresses))
	copy(out, t.addresses)
	return out
}
