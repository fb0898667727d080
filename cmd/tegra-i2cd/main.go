// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tegra-i2cd serves the Tegra I2C buses to other processes
// over net/rpc.  The controllers own no locks of their own, so all
// sharing goes through this daemon's request mutex.
//
//	tegra-i2cd [-dtb FILE] [-port PORT]
package main

import (
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"net/rpc"
	"os"
	"sync"
	"time"

	"github.com/platinasystems/fdt"
	"github.com/platinasystems/i2c"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"

	tegrai2c "github.com/platinasystems/tegra-i2c"
	"github.com/platinasystems/tegra-i2c/config"
	"github.com/platinasystems/tegra-i2c/hw"
)

const (
	DfltDtb  = "/boot/linux.dtb"
	DfltPort = "1233"

	MaxOps = 30
)

// I is one bus operation of a request batch.
type I struct {
	InUse     bool
	RW        i2c.RW
	RegOffset uint8
	BusSize   i2c.SMBusSize
	Data      [4]byte
	Bus       int
	Addr      int
	Delay     int
}

// R is the per-operation reply.
type R struct {
	D [4]byte
	E error
}

type I2cReq struct {
	mutex sync.Mutex
}

func (t *I2cReq) ReadWrite(g *[MaxOps]I, f *[MaxOps]R) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for x := 0; x < MaxOps; x++ {
		if !g[x].InUse {
			continue
		}
		bus, err := tegrai2c.Index(g[x].Bus)
		if err != nil {
			log.Printf("i2c%d: %s", g[x].Bus, err)
			return err
		}
		var data i2c.SMBusData
		copy(data[:], g[x].Data[:])
		err = bus.Do(g[x].RW, uint8(g[x].Addr), g[x].RegOffset,
			g[x].BusSize, &data)
		if err != nil {
			log.Printf("i2c%d: addr 0x%x offset 0x%x rw %d: %s",
				g[x].Bus, g[x].Addr, g[x].RegOffset, g[x].RW, err)
			return err
		}
		copy(f[x].D[:], data[:])
		if g[x].Delay > 0 {
			time.Sleep(time.Duration(g[x].Delay) * time.Millisecond)
		}
	}
	return nil
}

type bootPlatform struct{}

func (bootPlatform) StartClock(id tegrai2c.PeriphID, rateHz int) {}
func (bootPlatform) Reset(id tegrai2c.PeriphID)                  {}
func (bootPlatform) SelectMux(id tegrai2c.PeriphID, cfg int)     {}

func main() {
	if err := Main(os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, "tegra-i2cd:", err)
		os.Exit(1)
	}
}

func Main(args ...string) error {
	parm, args := parms.New(args, "-dtb", "-port")
	if len(parm.ByName["-dtb"]) == 0 {
		parm.ByName["-dtb"] = DfltDtb
	}
	if len(parm.ByName["-port"]) == 0 {
		parm.ByName["-port"] = DfltPort
	}
	if len(args) != 0 {
		return fmt.Errorf("%v: unexpected", args)
	}

	blob, err := ioutil.ReadFile(parm.ByName["-dtb"])
	if err != nil {
		return err
	}
	t := &fdt.Tree{Debug: false, IsLittleEndian: false}
	t.Parse(blob)

	for _, cfg := range config.Gather(t, tegrai2c.NumControllers) {
		io, err := hw.Map(uintptr(cfg.RegBase), 0x1000)
		if err != nil {
			return fmt.Errorf("i2c%d: %s", cfg.Index, err)
		}
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

	rpc.Register(&I2cReq{})
	rpc.HandleHTTP()
	l, err := net.Listen("tcp", ":"+parm.ByName["-port"])
	if err != nil {
		return err
	}
	log.Print("listen OKAY")
	return http.Serve(l, nil)
}
