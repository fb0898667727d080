// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tegrai2c drives the packet mode master interface of the
// NVIDIA Tegra I2C and DVC controllers.
package tegrai2c

import (
	"github.com/platinasystems/log"

	"github.com/platinasystems/tegra-i2c/hw"
	"github.com/platinasystems/tegra-i2c/regs"
)

// NumControllers is the size of the fixed controller table.
const NumControllers = 4

const DefaultSpeedHz = 100000

// PeriphID names a controller's peripheral clock to the platform.
type PeriphID int

// Platform is the clock tree and pin multiplexing collaborator.
// On Tegra this is the CAR and pinmux blocks, which belong to the
// board support code, not to this driver.
type Platform interface {
	// StartClock starts the peripheral's clock source at the
	// given rate in Hz.
	StartClock(id PeriphID, rateHz int)

	// Reset pulses the peripheral's hardware reset.
	Reset(id PeriphID)

	// SelectMux applies the controller's pin multiplexing
	// selection.
	SelectMux(id PeriphID, config int)
}

// Bus is one I2C or DVC controller.  The table entry is zero until
// Configure populates it; it accepts transactions only once inited
// is set, which happens exactly once, after the first successful
// reset and configure.
type Bus struct {
	id       int
	periph   PeriphID
	speed    int
	pinmux   int
	io       hw.Io
	ctlr     *regs.Ctlr
	isDvc    bool
	isScs    bool // single clock source (T114+)
	inited   bool
	platform Platform
}

var controllers [NumControllers]Bus

// Config describes one controller as found by discovery.
type Config struct {
	Index   int
	Periph  int
	SpeedHz int
	PinMux  int
	Dvc     bool
	Scs     bool
}

// Configure populates the controller table slot named by
// cfg.Index, initializes the controller and marks it usable.
func Configure(cfg Config, io hw.Io, p Platform) *Bus {
	b := &controllers[cfg.Index]
	b.id = cfg.Index
	b.periph = PeriphID(cfg.Periph)
	b.speed = cfg.SpeedHz
	if b.speed == 0 {
		b.speed = DefaultSpeedHz
	}
	b.pinmux = cfg.PinMux
	b.io = io
	b.platform = p
	b.isDvc = cfg.Dvc
	b.isScs = cfg.Scs
	b.ctlr = &regs.I2c
	if b.isDvc {
		b.ctlr = &regs.Dvc
	}
	b.initController()
	b.inited = true
	return b
}

// Index returns the bus at the given controller index, or
// BusNotReady when the slot was never configured.
func Index(i int) (*Bus, error) {
	if i < 0 || i >= NumControllers || !controllers[i].inited {
		return nil, &Error{Kind: BusNotReady}
	}
	return &controllers[i], nil
}

// DvcIndex returns the controller index of the DVC bus, or -1 if
// no DVC controller was configured.
func DvcIndex() int {
	for i := range controllers {
		if b := &controllers[i]; b.inited && b.isDvc {
			return i
		}
	}
	return -1
}

func (b *Bus) setPacketMode() {
	config := uint32(regs.CnfgNewMasterFsm | regs.CnfgPacketMode)
	b.io.Set(b.ctlr.Cnfg, config)
	if !b.isDvc {
		// Program SL_CNFG.NEWSL to ENABLE.  Without it some
		// hardware revisions wrongly detect slave presence
		// while probing.
		b.io.Set(b.ctlr.SlCnfg, b.io.Get(b.ctlr.SlCnfg)|regs.SlCnfgNewsl)
	}
}

// reset returns the controller to a known good idle state.  It is
// run after every failed transaction; the failed transaction is
// not retried.
func (b *Bus) reset() {
	b.platform.Reset(b.periph)
	b.setPacketMode()
}

func (b *Bus) initController() {
	// The datasheet gives a divisor of 8 here but a factor of 16
	// is needed to hit the target rate.
	b.platform.StartClock(b.periph, b.speed*2*8)

	if b.isScs {
		// T114 went to a single clock source for standard,
		// fast and HS rates:
		//   SCL = source / (mult * (div + 1) * freq divisor)
		// The divisor register hangs until the controller
		// clock is running, hence the initial StartClock.
		div := int(b.io.Get(b.ctlr.ClkDiv) >> regs.ClkDivStdFastShift)
		log.Printf("i2c%d: std/fast mode clk div %d", b.id, div)
		b.platform.StartClock(b.periph,
			regs.ClkMultStdFast*(div+1)*b.speed*2)
	}

	b.reset()

	if b.isDvc {
		b.io.Set(b.ctlr.Ctrl3, b.io.Get(b.ctlr.Ctrl3)|regs.Ctrl3I2cHwSwProg)
	}

	b.platform.SelectMux(b.periph, b.pinmux)
}

// SetSpeed reprograms the bus clock and reinitializes the
// controller at the new rate.
func (b *Bus) SetSpeed(hz int) error {
	if !b.inited {
		return &Error{Kind: BusNotReady}
	}
	b.speed = hz
	b.initController()
	return nil
}
