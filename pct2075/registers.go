// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pct2075

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"periph.io/x/conn/v3/physic"
)

type access byte

const (
	readOnly access = iota
	readWrite
)

// register describes one addressable register of the device.
type register struct {
	index  byte
	width  int
	access access
}

// field is a run of bits inside a single byte register.
type field struct {
	reg    register
	offset uint8
	width  uint8
}

var (
	regTemp   = register{index: 0x00, width: 2, access: readOnly}
	regConfig = register{index: 0x01, width: 1, access: readWrite}
	regHyst   = register{index: 0x02, width: 2, access: readWrite}
	regOS     = register{index: 0x03, width: 2, access: readWrite}
	regIdle   = register{index: 0x04, width: 1, access: readWrite}

	// CONFIG bits 5-7 are reserved and left untouched.
	fieldShutdown   = field{reg: regConfig, offset: 0, width: 1}
	fieldMode       = field{reg: regConfig, offset: 1, width: 1}
	fieldPolarity   = field{reg: regConfig, offset: 2, width: 1}
	fieldFaultQueue = field{reg: regConfig, offset: 3, width: 2}
	fieldIdle       = field{reg: regIdle, offset: 0, width: 5}
)

var errReadOnly = errors.New("pct2075: register is read-only")

func (f field) mask() byte {
	return byte((1<<f.width)-1) << f.offset
}

// get extracts the field value from the register byte b.
func (f field) get(b byte) byte {
	return (b & f.mask()) >> f.offset
}

// set returns b with the field replaced by v. Bits outside the field are
// preserved.
func (f field) set(b, v byte) byte {
	return b&^f.mask() | (v<<f.offset)&f.mask()
}

// tempFormat describes how a temperature is packed into a 16 bit big-endian
// two's complement register: the count occupies the upper bits and is
// recovered with an arithmetic shift.
type tempFormat struct {
	shift      uint
	resolution physic.Temperature
}

var (
	// 11-bit reading in 1/8°C steps.
	readingFormat = tempFormat{shift: 5, resolution: 125 * physic.MilliKelvin}
	// 9-bit alert limits in 1/2°C steps.
	limitFormat = tempFormat{shift: 7, resolution: 500 * physic.MilliKelvin}
)

func (f tempFormat) decode(raw int16) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(raw>>f.shift)*f.resolution
}

// encode converts t to the register value, rounding to the nearest step. A
// temperature that does not fit in the register returns ErrTemperatureRange.
func (f tempFormat) encode(t physic.Temperature) (int16, error) {
	limit := float64(int64(1) << (15 - f.shift))
	count := math.Round(float64(t-physic.ZeroCelsius) / float64(f.resolution))
	if count < -limit || count > limit-1 {
		return 0, fmt.Errorf("%w: %s outside %s to %s", ErrTemperatureRange, t, f.min(), f.max())
	}
	return int16(count) << f.shift, nil
}

func (f tempFormat) min() physic.Temperature {
	return f.decode(math.MinInt16)
}

func (f tempFormat) max() physic.Temperature {
	return f.decode(math.MaxInt16)
}

// readRegister reads the full width of r.
func (dev *Dev) readRegister(r register) ([]byte, error) {
	b := make([]byte, r.width)
	if err := dev.d.Tx([]byte{r.index}, b); err != nil {
		return nil, err
	}
	return b, nil
}

// writeRegister writes b to r in a single transaction.
func (dev *Dev) writeRegister(r register, b []byte) error {
	if r.access != readWrite {
		return errReadOnly
	}
	w := make([]byte, 0, 1+len(b))
	w = append(w, r.index)
	w = append(w, b...)
	return dev.d.Tx(w, nil)
}

func (dev *Dev) readTemperature(r register, f tempFormat) (physic.Temperature, error) {
	b, err := dev.readRegister(r)
	if err != nil {
		return 0, err
	}
	return f.decode(int16(binary.BigEndian.Uint16(b))), nil
}

func (dev *Dev) writeInt16(r register, v int16) error {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(v))
	return dev.writeRegister(r, b)
}

func (dev *Dev) readField(f field) (byte, error) {
	b, err := dev.readRegister(f.reg)
	if err != nil {
		return 0, err
	}
	return f.get(b[0]), nil
}

// writeField does a read-modify-write of the register holding f.
func (dev *Dev) writeField(f field, v byte) error {
	b, err := dev.readRegister(f.reg)
	if err != nil {
		return err
	}
	b[0] = f.set(b[0], v)
	return dev.writeRegister(f.reg, b)
}

func boolToBit(v bool) byte {
	if v {
		return 1
	}
	return 0
}
