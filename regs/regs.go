// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Register layout of the NVIDIA Tegra I2C and DVC controllers.
// Offsets and bit fields are hardware defined and must match the
// TRM exactly.
package regs

// Ctlr gives the byte offsets of one controller's registers.  The
// DVC controller shares the packet protocol but places its I2C
// registers behind the DVC control block.
type Ctlr struct {
	Cnfg   uint32
	SlCnfg uint32 // standard controller only
	Ctrl3  uint32 // DVC controller only
	ClkDiv uint32 // standard controller only

	// Packet FIFO block.
	TxFifo       uint32
	RxFifo       uint32
	PacketStatus uint32
	FifoControl  uint32
	FifoStatus   uint32
	IntMask      uint32
	IntStatus    uint32
}

var I2c = Ctlr{
	Cnfg:   0x00,
	SlCnfg: 0x1c,
	ClkDiv: 0x6c,

	TxFifo:       0x50,
	RxFifo:       0x54,
	PacketStatus: 0x58,
	FifoControl:  0x5c,
	FifoStatus:   0x60,
	IntMask:      0x64,
	IntStatus:    0x68,
}

var Dvc = Ctlr{
	Ctrl3: 0x08,
	Cnfg:  0x40,

	TxFifo:       0x60,
	RxFifo:       0x64,
	PacketStatus: 0x68,
	FifoControl:  0x6c,
	FifoStatus:   0x70,
	IntMask:      0x74,
	IntStatus:    0x78,
}

const (
	// CNFG
	CnfgPacketMode   = 1 << 10
	CnfgNewMasterFsm = 1 << 11

	// SL_CNFG
	SlCnfgNewsl = 1 << 2

	// DVC_CTRL_REG3
	Ctrl3I2cHwSwProg = 1 << 26

	// FIFO_STATUS; counts are in FIFO words.
	RxFifoFullCntShift  = 0
	RxFifoFullCntMask   = 0xf << RxFifoFullCntShift
	TxFifoEmptyCntShift = 4
	TxFifoEmptyCntMask  = 0xf << TxFifoEmptyCntShift

	FifoDepth = 8

	// INT_STATUS; write 1 to clear.
	IntArbitrationLost = 1 << 2
	IntNoAck           = 1 << 3
	IntXferComplete    = 1 << 7

	// Packet header word 1.
	ProtocolTypeI2c   = 1
	Hdr1ProtocolShift = 4
	Hdr1CtlrIdShift   = 12
	Hdr1PktIdShift    = 16

	// Packet header word 2; payload byte count less one.
	Hdr2PayloadSizeShift = 0

	// Packet header word 3.
	Hdr3SlaveAddrShift = 0
	Hdr3ReadMode       = 1 << 19

	// CLK_DIVISOR; std/fast mode divisor read back from hardware.
	ClkDivStdFastShift = 16

	ClkMultStdFast = 8
)
