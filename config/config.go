// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config discovers Tegra I2C controllers from a flattened
// device tree.
package config

import (
	"sort"
	"strings"

	"github.com/platinasystems/fdt"
	"github.com/platinasystems/log"
)

// Bus describes one controller found in the device tree.
type Bus struct {
	Index   int
	RegBase uint32
	Periph  int
	SpeedHz int
	Dvc     bool
	Scs     bool
}

var compatibles = []struct {
	name     string
	dvc, scs bool
}{
	// Newer single clock source ports first, then the T20/T30
	// ports, then DVC ports, matching the hardware probe order.
	{"nvidia,tegra114-i2c", false, true},
	{"nvidia,tegra20-i2c-dvc", true, false},
	{"nvidia,tegra20-i2c", false, false},
}

// hasCompatible matches a compatible list entry exactly; property
// values are NUL separated string lists and substring matches
// would confuse "tegra20-i2c" with "tegra20-i2c-dvc".
func hasCompatible(value, want string) bool {
	for _, s := range strings.Split(value, "\x00") {
		if s == want {
			return true
		}
	}
	return false
}

// Gather walks the tree and returns configured controllers in
// probe order, at most max entries.  Within each compatible group
// controllers are ordered by ascending register base, matching the
// hardware numbering.  Nodes without a register base are skipped;
// nodes carrying several matching compatibles are taken once, for
// the newest one.
func Gather(t *fdt.Tree, max int) (buses []Bus) {
	seen := make(map[*fdt.Node]bool)
	for _, c := range compatibles {
		var group []Bus
		t.EachProperty("compatible", c.name, func(n *fdt.Node, name, value string) {
			if seen[n] || !hasCompatible(value, c.name) {
				return
			}
			seen[n] = true
			b := Bus{Dvc: c.dvc, Scs: c.scs}
			if p, ok := n.Properties["reg"]; ok && len(p) >= 4 {
				b.RegBase = t.PropUint32(p)
			}
			if p, ok := n.Properties["clock-frequency"]; ok && len(p) >= 4 {
				b.SpeedHz = int(t.PropUint32(p))
			}
			// clocks = <&car ID>; the peripheral clock id is
			// the second cell.
			if p, ok := n.Properties["clocks"]; ok && len(p) >= 8 {
				b.Periph = int(t.PropUint32(p[4:]))
			}
			if b.RegBase == 0 {
				log.Print("i2c: skipping ", n.Name, ": no reg")
				return
			}
			group = append(group, b)
		})
		sort.Slice(group, func(i, j int) bool {
			return group[i].RegBase < group[j].RegBase
		})
		for _, b := range group {
			if len(buses) >= max {
				return
			}
			b.Index = len(buses)
			buses = append(buses, b)
		}
	}
	return
}
