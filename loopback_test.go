// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tegrai2c

import (
	"encoding/binary"

	"github.com/platinasystems/tegra-i2c/regs"
)

// fakeDev simulates one controller register block.  Writes are
// looped back: the payload of the last write packet is served, a
// word at a time, to the next read packet.  Fault flags inject the
// hardware error conditions.
type fakeDev struct {
	ctlr *regs.Ctlr

	cnfg, slCnfg, ctrl3, clkDiv uint32
	status                      uint32 // INT_STATUS

	cmd  []uint32 // tx fifo words of the transaction in progress
	rx   []uint32 // rx fifo words pending
	hdr  [3]uint32
	data []uint32 // payload words of the last write packet
	last []byte   // loopback payload

	nTxWords, nRxReads int

	stallTx, stallRx bool
	noAck, arbLost   bool
	faulted          bool

	cnfgWrites int
}

func (f *fakeDev) Get(o uint32) uint32 {
	switch o {
	case f.ctlr.FifoStatus:
		var v uint32
		if !f.stallTx {
			v |= regs.FifoDepth << regs.TxFifoEmptyCntShift
		}
		if n := len(f.rx); n != 0 && !f.stallRx {
			if n > 0xf {
				n = 0xf
			}
			v |= uint32(n) << regs.RxFifoFullCntShift
		}
		return v
	case f.ctlr.RxFifo:
		f.nRxReads++
		if len(f.rx) == 0 {
			return 0
		}
		v := f.rx[0]
		f.rx = f.rx[1:]
		return v
	case f.ctlr.IntStatus:
		return f.status
	case f.ctlr.Cnfg:
		return f.cnfg
	case f.ctlr.SlCnfg:
		return f.slCnfg
	case f.ctlr.Ctrl3:
		return f.ctrl3
	case f.ctlr.ClkDiv:
		return f.clkDiv
	}
	return 0
}

func (f *fakeDev) Set(o uint32, v uint32) {
	switch o {
	case f.ctlr.TxFifo:
		f.nTxWords++
		f.cmd = append(f.cmd, v)
		f.step()
	case f.ctlr.IntStatus:
		// Write 1 to clear.
		f.status &^= v
	case f.ctlr.Cnfg:
		// Reprogramming CNFG follows a controller reset;
		// model the reset by dropping transaction state.
		f.cnfg = v
		f.cnfgWrites++
		f.cmd = nil
		f.rx = nil
		f.status = 0
		f.faulted = false
	case f.ctlr.SlCnfg:
		f.slCnfg = v
	case f.ctlr.Ctrl3:
		f.ctrl3 = v
	}
}

func (f *fakeDev) step() {
	if f.faulted {
		// A real controller ignores the fifo until reset.
		f.cmd = nil
		return
	}
	if len(f.cmd) < 3 {
		return
	}
	payLen := int(f.cmd[1]&0xfff) + 1
	read := f.cmd[2]&regs.Hdr3ReadMode != 0
	if len(f.cmd) == 3 {
		copy(f.hdr[:], f.cmd)
		switch {
		case f.noAck:
			f.status |= regs.IntNoAck
			f.faulted = true
			f.cmd = nil
		case f.arbLost:
			f.status |= regs.IntArbitrationLost
			f.faulted = true
			f.cmd = nil
		case read:
			buf := make([]byte, (payLen+3)&^3)
			copy(buf, f.last)
			for i := 0; i < len(buf); i += 4 {
				f.rx = append(f.rx,
					binary.LittleEndian.Uint32(buf[i:]))
			}
			f.status |= regs.IntXferComplete
			f.cmd = nil
		}
		return
	}
	words := (payLen + 3) / 4
	if len(f.cmd) == 3+words {
		f.data = append([]uint32(nil), f.cmd[3:]...)
		buf := make([]byte, words*4)
		for i, w := range f.cmd[3:] {
			binary.LittleEndian.PutUint32(buf[i*4:], w)
		}
		f.last = append(f.last[:0], buf[:payLen]...)
		f.status |= regs.IntXferComplete
		f.cmd = nil
	}
}

type fakePlatform struct {
	clocks []int
	resets int
	muxes  []int
}

func (p *fakePlatform) StartClock(id PeriphID, rateHz int) {
	p.clocks = append(p.clocks, rateHz)
}
func (p *fakePlatform) Reset(id PeriphID) { p.resets++ }
func (p *fakePlatform) SelectMux(id PeriphID, cfg int) {
	p.muxes = append(p.muxes, cfg)
}

func testBus(index int, dvc, scs bool) (*Bus, *fakeDev, *fakePlatform) {
	ctlr := &regs.I2c
	if dvc {
		ctlr = &regs.Dvc
	}
	f := &fakeDev{ctlr: ctlr}
	p := &fakePlatform{}
	b := Configure(Config{Index: index, Periph: 12 + index, Dvc: dvc, Scs: scs}, f, p)
	return b, f, p
}
