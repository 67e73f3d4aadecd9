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
	"github.com/meridianchain/meridian/common"
)

// getData returns a slice from the data based on the start and size and pads
// up to size with zero's. This function is overflow safe.
func getData(data []byte, start uint64, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	return common.RightPadBytes(data[start:end], int(size))
}

// allZero reports whether b contains only zero bytes.
func allZero(b []byte) bool {
	for _, byt := range b {
		if byt != 0 {
			return false
		}
	}
	return true
}
