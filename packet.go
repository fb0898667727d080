// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tegrai2c

import (
	"encoding/binary"

	"github.com/platinasystems/tegra-i2c/regs"
)

// trans describes one packet transaction: an 8 bit hardware
// address (the 7 bit device address shifted up, low bit set for a
// read), the payload and its direction.  It lives only for the
// duration of the transfer call.
type trans struct {
	address uint8
	buf     []byte
	isWrite bool
	is10Bit bool // never set; 10 bit addressing is unsupported
}

// sendHeaders writes the three packet header words to the tx fifo.
// Header fifo space is bounded by protocol design so occupancy is
// not checked between words.
func (b *Bus) sendHeaders(t *trans, packetID uint32) {
	// Header size 0, protocol I2C, packet type 0.
	data := uint32(regs.ProtocolTypeI2c) << regs.Hdr1ProtocolShift
	data |= packetID << regs.Hdr1PktIdShift
	data |= uint32(b.id) << regs.Hdr1CtlrIdShift
	b.io.Set(b.ctlr.TxFifo, data)

	// Payload byte count is encoded less one.
	b.io.Set(b.ctlr.TxFifo,
		uint32(len(t.buf)-1)<<regs.Hdr2PayloadSizeShift)

	data = uint32(t.address) << regs.Hdr3SlaveAddrShift
	if !t.isWrite {
		data |= regs.Hdr3ReadMode
	}
	b.io.Set(b.ctlr.TxFifo, data)
}

// transfer moves the payload through the data fifo one 32 bit word
// at a time.  On any failure it aborts without completing the
// remaining words, resets the controller and returns the original
// error.
func (b *Bus) transfer(t *trans) error {
	if len(t.buf) == 0 {
		return nil
	}

	// Clear XFER_COMPLETE, NOACK etc. left over from the
	// previous transaction.
	b.io.Set(b.ctlr.IntStatus, b.io.Get(b.ctlr.IntStatus))

	b.sendHeaders(t, 1)

	words := (len(t.buf) + 3) / 4
	lastBytes := len(t.buf) & 3
	off := 0

	var err error
	for w := 0; w < words; w++ {
		if t.isWrite {
			var local uint32
			if off+4 <= len(t.buf) {
				local = binary.LittleEndian.Uint32(t.buf[off:])
			} else {
				// Partial final word; hardware still
				// takes a full width write.
				var staging [4]byte
				copy(staging[:], t.buf[off:])
				local = binary.LittleEndian.Uint32(staging[:])
			}
			b.io.Set(b.ctlr.TxFifo, local)
			if err = b.waitTxFifoEmpty(); err != nil {
				break
			}
		} else {
			if err = b.waitRxFifoNotEmpty(); err != nil {
				break
			}
			var staging [4]byte
			binary.LittleEndian.PutUint32(staging[:],
				b.io.Get(b.ctlr.RxFifo))
			n := 4
			if w == words-1 && lastBytes != 0 {
				// Short final word; the caller's buffer
				// may not hold a full one.
				n = lastBytes
			}
			copy(t.buf[off:], staging[:n])
		}
		off += 4
	}

	if err == nil {
		err = b.waitTransferComplete()
	}
	if err != nil {
		b.reset()
	}
	return err
}
