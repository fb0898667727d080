// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tegrai2c

import "fmt"

// Kind classifies transaction failures.
type Kind int

const (
	Ok Kind = iota
	Timeout
	NoAcknowledge
	ArbitrationLost
	UnsupportedAddressWidth
	BusNotReady
)

var kind_strings = []string{
	Ok:                      "OK",
	Timeout:                 "timeout",
	NoAcknowledge:           "no acknowledge from device",
	ArbitrationLost:         "arbitration lost",
	UnsupportedAddressWidth: "unsupported address width",
	BusNotReady:             "bus not ready",
}

func (k Kind) String() string { return kind_strings[k] }

// Error carries the failure kind and, for hardware reported
// failures, the INT_STATUS snapshot observed when it was raised.
type Error struct {
	Kind   Kind
	Status uint32
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status 0x%x)", e.Kind, e.Status)
	}
	return e.Kind.String()
}

// IsKind reports whether err is a transaction failure of kind k.
func IsKind(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}
