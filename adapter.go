// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tegrai2c

import (
	"fmt"

	"github.com/platinasystems/i2c"
)

// Do runs an SMBus style operation through the packet engine, in
// the same vocabulary the linux i2c-dev wrapper uses, so callers
// written against that API can drive a memory mapped controller
// unchanged.
func (b *Bus) Do(rw i2c.RW, addr uint8, command uint8, size i2c.SMBusSize, data *i2c.SMBusData) error {
	switch size {
	case i2c.Quick:
		var p [1]byte
		return b.Write(addr, p[:1])
	case i2c.Byte:
		if rw == i2c.Read {
			return b.Read(addr, data[:1])
		}
		return b.Write(addr, data[:1])
	case i2c.ByteData:
		if rw == i2c.Read {
			return b.ReadRegister(addr, uint(command), 1, data[:1])
		}
		return b.WriteRegister(addr, uint(command), 1, data[:1])
	case i2c.WordData:
		if rw == i2c.Read {
			return b.ReadRegister(addr, uint(command), 1, data[:2])
		}
		return b.WriteRegister(addr, uint(command), 1, data[:2])
	}
	return fmt.Errorf("smbus size %d not supported", size)
}
