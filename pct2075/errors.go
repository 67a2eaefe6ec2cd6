// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pct2075

import "errors"

// Validation errors. They are returned before anything is written to the
// device. Transport errors are returned as received from the bus.
var (
	ErrTemperatureRange = errors.New("pct2075: temperature out of range")
	ErrHysteresis       = errors.New("pct2075: hysteresis must be less than the high temperature threshold")
	ErrFaultCount       = errors.New("pct2075: faults to alert must be 1, 2, 4 or 6")
	ErrDelay            = errors.New("pct2075: delay between measurements must be a multiple of 100ms from 100ms to 3.1s")
	ErrAlertMode        = errors.New("pct2075: invalid alert mode")
	ErrNotSupported     = errors.New("pct2075: continuous sensing not supported, poll Sense instead")
)
