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

// Package chain defines the ordered protocol ruleset identifiers.
package chain

import "fmt"

// Hardfork identifies a protocol ruleset. The values are ordered: a later
// hardfork inherits the activation set of every earlier one, modified by its
// own deltas. The host selects the active hardfork per call or per VM
// instance; nothing here depends on block numbers or timestamps.
type Hardfork uint32

const (
	Frontier Hardfork = iota
	Homestead
	Byzantium
	Istanbul
	Berlin
	London
	Shanghai
	Cancun
	Prague
	Osaka

	// Latest aliases the most recent supported ruleset.
	Latest = Osaka
)

var hardforkNames = [...]string{
	Frontier:  "frontier",
	Homestead: "homestead",
	Byzantium: "byzantium",
	Istanbul:  "istanbul",
	Berlin:    "berlin",
	London:    "london",
	Shanghai:  "shanghai",
	Cancun:    "cancun",
	Prague:    "prague",
	Osaka:     "osaka",
}

// Hardforks returns every supported hardfork in activation order.
func Hardforks() []Hardfork {
	all := make([]Hardfork, 0, len(hardforkNames))
	for i := range hardforkNames {
		all = append(all, Hardfork(i))
	}
	return all
}

// Valid reports whether f is a supported hardfork identifier.
func (f Hardfork) Valid() bool { return f <= Latest }

func (f Hardfork) String() string {
	if !f.Valid() {
		return fmt.Sprintf("hardfork(%d)", uint32(f))
	}
	return hardforkNames[f]
}
