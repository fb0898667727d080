// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tegrai2c

import (
	"time"

	"github.com/platinasystems/tegra-i2c/regs"
)

// Each wait point polls its condition every pollUsec until the
// shared budget is spent.  Polling is deliberate: this engine runs
// before any interrupt dispatcher is available.
const (
	timeoutUsec = 10000
	pollUsec    = 10
)

func (b *Bus) waitTxFifoEmpty() error {
	for us := timeoutUsec; us >= 0; us -= pollUsec {
		count := (b.io.Get(b.ctlr.FifoStatus) & regs.TxFifoEmptyCntMask) >>
			regs.TxFifoEmptyCntShift
		if count == regs.FifoDepth {
			return nil
		}
		time.Sleep(pollUsec * time.Microsecond)
	}
	return &Error{Kind: Timeout}
}

func (b *Bus) waitRxFifoNotEmpty() error {
	for us := timeoutUsec; us >= 0; us -= pollUsec {
		if b.io.Get(b.ctlr.FifoStatus)&regs.RxFifoFullCntMask != 0 {
			return nil
		}
		time.Sleep(pollUsec * time.Microsecond)
	}
	return &Error{Kind: Timeout}
}

// waitTransferComplete distinguishes hardware reported protocol
// errors from a plain timeout; the INT_STATUS snapshot rides along
// with the error.
func (b *Bus) waitTransferComplete() error {
	for us := timeoutUsec; us >= 0; us -= pollUsec {
		status := b.io.Get(b.ctlr.IntStatus)
		if status&regs.IntNoAck != 0 {
			return &Error{Kind: NoAcknowledge, Status: status}
		}
		if status&regs.IntArbitrationLost != 0 {
			return &Error{Kind: ArbitrationLost, Status: status}
		}
		if status&regs.IntXferComplete != 0 {
			return nil
		}
		time.Sleep(pollUsec * time.Microsecond)
	}
	return &Error{Kind: Timeout}
}
