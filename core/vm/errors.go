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

import "errors"

var (
	// ErrOutOfGas is returned in the Outcome when the supplied gas limit
	// does not cover the precompile's charge.
	ErrOutOfGas = errors.New("out of gas")

	// ErrNotPrecompile is returned by Execute when the address is not an
	// active precompile under the table's hardfork. It signals a dispatch
	// error, not an execution failure: no gas is consumed.
	ErrNotPrecompile = errors.New("not a precompiled contract")
)
