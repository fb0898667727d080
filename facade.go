// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tegrai2c

import "github.com/platinasystems/log"

// Write sends p to the device at 7 bit address addr.  An empty
// payload returns nil without touching hardware.
func (b *Bus) Write(addr uint8, p []byte) error {
	if !b.inited {
		return &Error{Kind: BusNotReady}
	}
	t := trans{address: addr << 1, buf: p, isWrite: true}
	err := b.transfer(&t)
	if err != nil {
		log.Printf("i2c%d: write 0x%x: %s", b.id, addr, err)
	}
	return err
}

// Read fills p from the device at 7 bit address addr.
func (b *Bus) Read(addr uint8, p []byte) error {
	if !b.inited {
		return &Error{Kind: BusNotReady}
	}
	t := trans{address: addr<<1 | 1, buf: p}
	err := b.transfer(&t)
	if err != nil {
		log.Printf("i2c%d: read 0x%x: %s", b.id, addr, err)
	}
	return err
}

// Probe addresses the device with a single zero byte write and
// reports whether it acknowledged.
func (b *Bus) Probe(addr uint8) bool {
	var reg [1]byte
	return b.Write(addr, reg[:]) == nil
}

// Device registers are addressed with one or two bytes.
func addrOk(alen int) bool { return alen == 1 || alen == 2 }

// ReadRegister reads len(p) bytes starting at device register
// addr, sending the big endian register address ahead of each data
// byte.
func (b *Bus) ReadRegister(chip uint8, addr uint, alen int, p []byte) error {
	if !addrOk(alen) {
		return &Error{Kind: UnsupportedAddressWidth}
	}
	var a [2]byte
	for offset := range p {
		for i := 0; i < alen; i++ {
			a[alen-i-1] = byte((addr + uint(offset)) >> (8 * uint(i)))
		}
		if err := b.Write(chip, a[:alen]); err != nil {
			return err
		}
		if err := b.Read(chip, p[offset:offset+1]); err != nil {
			return err
		}
	}
	return nil
}

// WriteRegister writes len(p) bytes starting at device register
// addr, one register address plus data byte packet per byte.
func (b *Bus) WriteRegister(chip uint8, addr uint, alen int, p []byte) error {
	if !addrOk(alen) {
		return &Error{Kind: UnsupportedAddressWidth}
	}
	var data [3]byte
	for offset := range p {
		for i := 0; i < alen; i++ {
			data[alen-i-1] = byte((addr + uint(offset)) >> (8 * uint(i)))
		}
		data[alen] = p[offset]
		if err := b.Write(chip, data[:alen+1]); err != nil {
			return err
		}
	}
	return nil
}
