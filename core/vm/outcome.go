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
	"fmt"
	"sync"

	"github.com/meridianchain/meridian/chain"
	"github.com/meridianchain/meridian/common"
)

// Outcome is the result of one precompile call. A non-nil Err means the
// call failed and GasUsed holds what the failure consumed: the full limit
// for ErrOutOfGas, the computed charge for an execution fault. On success
// Err is nil, Output holds the result bytes and GasUsed the charge.
type Outcome struct {
	Output  []byte
	GasUsed uint64
	Err     error
}

// Failed reports whether the call consumed gas without producing output.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Execute dispatches one precompile call under the table's hardfork.
//
// An address with no active precompile yields ErrNotPrecompile as the
// second return value and a zero Outcome: the caller mistook a regular
// account for a precompile and no gas accounting applies. Every other
// failure mode is an Outcome with a non-nil Err.
func (t *ActivationTable) Execute(a common.Address, input []byte, gasLimit uint64) (Outcome, error) {
	p, ok := t.contracts[a]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s under %s", ErrNotPrecompile, a.Hex(), t.fork)
	}
	gasCost := p.RequiredGas(input)
	if gasLimit < gasCost {
		return Outcome{GasUsed: gasLimit, Err: ErrOutOfGas}, nil
	}
	output, err := p.Run(input)
	if err != nil {
		return Outcome{GasUsed: gasCost, Err: err}, nil
	}
	return Outcome{Output: output, GasUsed: gasCost}, nil
}

var (
	defaultTableOnce [chain.Latest + 1]sync.Once
	defaultTables    [chain.Latest + 1]*ActivationTable
)

// DefaultActivationTable returns the shared, default-configured table for
// fork, building it on first use. Panics on an unknown hardfork.
func DefaultActivationTable(fork chain.Hardfork) *ActivationTable {
	if !fork.Valid() {
		panic(fmt.Sprintf("unknown hardfork %d", uint32(fork)))
	}
	defaultTableOnce[fork].Do(func() {
		defaultTables[fork] = NewActivationTable(fork)
	})
	return defaultTables[fork]
}

// Execute dispatches one precompile call against the default activation
// table of the given hardfork.
func Execute(a common.Address, input []byte, gasLimit uint64, fork chain.Hardfork) (Outcome, error) {
	return DefaultActivationTable(fork).Execute(a, input, gasLimit)
}
