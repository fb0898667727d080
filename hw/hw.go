// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Memory mapped register read/write.
package hw

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"
)

// Io reads and writes 32 bit registers at byte offsets within a
// controller's register block.  Hardware is reached through the
// /dev/mem backed Mem below; tests substitute a simulated block.
type Io interface {
	Get(offset uint32) uint32
	Set(offset uint32, v uint32)
}

// Mem maps a physical register block via /dev/mem.
type Mem struct {
	file *os.File
	mem  []byte
}

func Map(base uintptr, size uint) (*Mem, error) {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	b, err := syscall.Mmap(int(f.Fd()), int64(base), int(size),
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap 0x%x: %s", base, err)
	}
	return &Mem{file: f, mem: b}, nil
}

func (m *Mem) Close() (err error) {
	err = syscall.Munmap(m.mem)
	m.file.Close()
	m.mem = nil
	return
}

func (m *Mem) Get(offset uint32) uint32 {
	return *(*uint32)(unsafe.Pointer(&m.mem[offset]))
}

func (m *Mem) Set(offset uint32, v uint32) {
	*(*uint32)(unsafe.Pointer(&m.mem[offset])) = v
}
