// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tegrai2c

import (
	"bytes"
	"testing"

	"github.com/platinasystems/i2c"
	"github.com/platinasystems/tegra-i2c/regs"
)

func TestProbe(t *testing.T) {
	b, f, _ := testBus(0, false, false)

	if !b.Probe(0x50) {
		t.Error("device not seen on healthy bus")
	}
	f.noAck = true
	if b.Probe(0x50) {
		t.Error("device seen despite no acknowledge")
	}
}

func TestBusNotReady(t *testing.T) {
	if _, err := Index(3); !IsKind(err, BusNotReady) {
		t.Errorf("unconfigured slot: got %v", err)
	}
	if _, err := Index(-1); !IsKind(err, BusNotReady) {
		t.Errorf("negative index: got %v", err)
	}
	var b Bus
	if err := b.Write(0x50, []byte{0}); !IsKind(err, BusNotReady) {
		t.Errorf("zero bus write: got %v", err)
	}
	if err := b.SetSpeed(400000); !IsKind(err, BusNotReady) {
		t.Errorf("zero bus set speed: got %v", err)
	}
}

func TestRegisterAddressWidth(t *testing.T) {
	b, f, _ := testBus(0, false, false)

	p := make([]byte, 1)
	for _, alen := range []int{-1, 0, 3, 4} {
		if err := b.ReadRegister(0x50, 0x12, alen, p); !IsKind(err, UnsupportedAddressWidth) {
			t.Errorf("read alen %d: got %v", alen, err)
		}
		if err := b.WriteRegister(0x50, 0x12, alen, p); !IsKind(err, UnsupportedAddressWidth) {
			t.Errorf("write alen %d: got %v", alen, err)
		}
	}

	// Two byte register addresses go out big endian, ahead of the
	// data byte.
	if err := b.WriteRegister(0x50, 0x1234, 2, []byte{0x56}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f.last, []byte{0x12, 0x34, 0x56}) {
		t.Errorf("register write packet got % x", f.last)
	}
}

func TestRegisterReadAdvancesAddress(t *testing.T) {
	b, _, _ := testBus(0, false, false)

	p := make([]byte, 3)
	if err := b.ReadRegister(0x50, 0x10, 1, p); err != nil {
		t.Fatal(err)
	}
	// The loopback echoes the last written byte, which is each
	// iteration's register address.
	if !bytes.Equal(p, []byte{0x10, 0x11, 0x12}) {
		t.Errorf("got % x want 10 11 12", p)
	}
}

func TestSetSpeedSingleClockSource(t *testing.T) {
	f := &fakeDev{ctlr: &regs.I2c, clkDiv: 5 << regs.ClkDivStdFastShift}
	p := &fakePlatform{}
	b := Configure(Config{Index: 0, Periph: 12, Scs: true}, f, p)

	want := []int{
		DefaultSpeedHz * 2 * 8,
		regs.ClkMultStdFast * 6 * DefaultSpeedHz * 2,
	}
	if len(p.clocks) != 2 || p.clocks[0] != want[0] || p.clocks[1] != want[1] {
		t.Fatalf("init clocks got %v want %v", p.clocks, want)
	}

	if err := b.SetSpeed(400000); err != nil {
		t.Fatal(err)
	}
	want = append(want, 400000*2*8, regs.ClkMultStdFast*6*400000*2)
	if len(p.clocks) != 4 || p.clocks[2] != want[2] || p.clocks[3] != want[3] {
		t.Fatalf("set speed clocks got %v want %v", p.clocks, want)
	}
}

func TestDvc(t *testing.T) {
	b, f, _ := testBus(3, true, false)

	if f.ctrl3&regs.Ctrl3I2cHwSwProg == 0 {
		t.Error("dvc hw/sw prog bit not set at init")
	}
	if got := DvcIndex(); got != 3 {
		t.Errorf("dvc index got %d want 3", got)
	}
	if err := b.Write(0x50, []byte{1}); err != nil {
		t.Fatal(err)
	}
}

func TestSmbusAdapter(t *testing.T) {
	b, f, _ := testBus(0, false, false)

	var d i2c.SMBusData
	f.last = []byte{0x5a}
	if err := b.Do(i2c.Read, 0x50, 0, i2c.Byte, &d); err != nil {
		t.Fatal(err)
	}
	if d[0] != 0x5a {
		t.Errorf("byte read got 0x%x want 0x5a", d[0])
	}

	d[0] = 0x77
	if err := b.Do(i2c.Write, 0x50, 0x21, i2c.ByteData, &d); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f.last, []byte{0x21, 0x77}) {
		t.Errorf("byte data write packet got % x", f.last)
	}
}
