// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tegra-i2c reads and writes device registers through the
// Tegra packet mode I2C controllers described by the board's
// device tree.
//
//	tegra-i2c [-dtb FILE] [-scan] [BUS.ADDR[.REG][-END] [VALUE]]
//
// The -scan flag probes every device address on the given bus.
// Register addresses and values are hex, as in the goes i2c
// command.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/platinasystems/fdt"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"

	tegrai2c "github.com/platinasystems/tegra-i2c"
	"github.com/platinasystems/tegra-i2c/config"
	"github.com/platinasystems/tegra-i2c/hw"
)

const DfltDtb = "/boot/linux.dtb"

// The boot firmware leaves the controller clocks running and the
// pins muxed, so the live platform hooks are no-ops; recovery
// resets are the only operation lost without CAR access.
type bootPlatform struct{}

func (bootPlatform) StartClock(id tegrai2c.PeriphID, rateHz int) {}
func (bootPlatform) Reset(id tegrai2c.PeriphID)                  {}
func (bootPlatform) SelectMux(id tegrai2c.PeriphID, cfg int)     {}

func usage() error {
	return fmt.Errorf("usage: tegra-i2c [-dtb FILE] [-scan] BUS[.ADDR[.REG][-END]] [VALUE]")
}

func main() {
	if err := Main(os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, "tegra-i2c:", err)
		os.Exit(1)
	}
}

func Main(args ...string) error {
	flag, args := flags.New(args, "-scan")
	parm, args := parms.New(args, "-dtb")
	if len(parm.ByName["-dtb"]) == 0 {
		parm.ByName["-dtb"] = DfltDtb
	}

	if len(args) == 0 {
		return usage()
	}

	blob, err := ioutil.ReadFile(parm.ByName["-dtb"])
	if err != nil {
		return err
	}
	t := &fdt.Tree{Debug: false, IsLittleEndian: false}
	t.Parse(blob)

	var (
		b, a uint8
		cs   [2]uint8
	)
	nc := 2
	_, err = fmt.Sscanf(args[0], "%x.%x.%x-%x", &b, &a, &cs[0], &cs[1])
	if err != nil {
		nc = 1
		_, err = fmt.Sscanf(args[0], "%x.%x.%x", &b, &a, &cs[0])
		if err != nil {
			nc = 0
			_, err = fmt.Sscanf(args[0], "%x.%x", &b, &a)
			if err != nil && flag.ByName["-scan"] {
				_, err = fmt.Sscanf(args[0], "%x", &b)
			}
		}
	}
	if err != nil {
		return fmt.Errorf("%s: invalid BUS.ADDR[.REG]: %s", args[0], err)
	}

	for _, cfg := range config.Gather(t, tegrai2c.NumControllers) {
		io, err := hw.Map(uintptr(cfg.RegBase), 0x1000)
		if err != nil {
			return fmt.Errorf("i2c%d: %s", cfg.Index, err)
		}
		defer io.Close()
		tegrai2c.Configure(tegrai2c.Config{
			Index:   cfg.Index,
			Periph:  cfg.Periph,
			SpeedHz: cfg.SpeedHz,
			Dvc:     cfg.Dvc,
			Scs:     cfg.Scs,
		}, io, bootPlatform{})
		log.Printf("i2c%d: 0x%x speed %d dvc %v scs %v",
			cfg.Index, cfg.RegBase, cfg.SpeedHz, cfg.Dvc, cfg.Scs)
	}

	bus, err := tegrai2c.Index(int(b))
	if err != nil {
		return fmt.Errorf("bus %x: %s", b, err)
	}

	if flag.ByName["-scan"] {
		for addr := uint8(0x08); addr < 0x78; addr++ {
			if bus.Probe(addr) {
				fmt.Printf("%x.%02x present\n", b, addr)
			}
		}
		return nil
	}

	var d [1]byte
	dValid := len(args) > 1
	if dValid {
		if _, err = fmt.Sscanf(args[1], "%x", &d[0]); err != nil {
			return fmt.Errorf("%s: invalid value: %s", args[1], err)
		}
	}

	if nc == 0 {
		// No register; a bare byte stream transfer.
		if dValid {
			err = bus.Write(a, d[:])
		} else {
			err = bus.Read(a, d[:])
		}
		if err != nil {
			return err
		}
		fmt.Printf("%x.%02x = %02x\n", b, a, d[0])
		return nil
	}

	if nc < 2 {
		cs[1] = cs[0]
	}
	for c := cs[0]; ; c++ {
		if dValid {
			err = bus.WriteRegister(a, uint(c), 1, d[:])
		} else {
			err = bus.ReadRegister(a, uint(c), 1, d[:])
		}
		if err != nil {
			return err
		}
		fmt.Printf("%x.%02x.%02x = %02x\n", b, a, c, d[0])
		if c == cs[1] {
			break
		}
	}
	return nil
}
