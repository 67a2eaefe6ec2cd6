// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pct2075 provides a driver for the NXP PCT2075 I²C temperature
// sensor and thermal watchdog. The device is register compatible with the
// LM75 family, with an 11-bit temperature reading and a programmable idle
// time between conversions.
//
// Range: -55°C - 125°C
//
// Accuracy: +/- 1°C (-25°C - 100°C)
//
// Resolution: 0.125°C (reading), 0.5°C (alert threshold and hysteresis)
//
// The driver holds no copy of the device state. Every getter reads the
// device and every setter writes it, so Dev is not safe for concurrent use
// unless the caller serializes access.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/PCT2075.pdf
package pct2075
