// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pct2075

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// AlertMode selects how the OS (alert) output behaves.
type AlertMode byte

const (
	// ModeComparator keeps the OS output active while the temperature is
	// above the threshold, and releases it once the temperature drops
	// below the hysteresis.
	ModeComparator AlertMode = 0
	// ModeInterrupt pulses the OS output once per threshold crossing. The
	// output is cleared by reading any register.
	ModeInterrupt AlertMode = 1
)

func (m AlertMode) String() string {
	switch m {
	case ModeComparator:
		return "comparator"
	case ModeInterrupt:
		return "interrupt"
	default:
		return fmt.Sprintf("AlertMode(%d)", byte(m))
	}
}

// FaultCount is the number of consecutive over-threshold measurements
// required before the OS output is activated.
type FaultCount int

const (
	Fault1 FaultCount = 1
	Fault2 FaultCount = 2
	Fault4 FaultCount = 4
	Fault6 FaultCount = 6
)

// faultCodes maps the 2-bit fault queue code (the index) to its count.
var faultCodes = [4]FaultCount{Fault1, Fault2, Fault4, Fault6}

func (f FaultCount) code() (byte, error) {
	for code, count := range faultCodes {
		if count == f {
			return byte(code), nil
		}
	}
	return 0, fmt.Errorf("%w: got %d", ErrFaultCount, int(f))
}

const (
	// DefaultAddress is the address with the A0-A2 pins left floating, as on
	// the Adafruit breakout.
	DefaultAddress i2c.Addr = 0x37
	// AlternateAddress is the LM75 compatible address with A0-A2 tied low.
	AlternateAddress i2c.Addr = 0x48

	idleStep = 100 * time.Millisecond
	// MinDelay and MaxDelay bound the idle time between two measurements.
	MinDelay = idleStep
	MaxDelay = 31 * idleStep
)

// Opts is a complete alert and timing configuration for the device. Use
// DefaultOpts for the power-on values.
type Opts struct {
	Mode                     AlertMode
	HighTempActiveHigh       bool
	FaultsToAlert            FaultCount
	DelayBetweenMeasurements time.Duration
	HighTemperatureThreshold physic.Temperature
	TemperatureHysteresis    physic.Temperature
}

// DefaultOpts returns the device power-on configuration.
func DefaultOpts() *Opts {
	return &Opts{
		Mode:                     ModeComparator,
		HighTempActiveHigh:       false,
		FaultsToAlert:            Fault1,
		DelayBetweenMeasurements: MinDelay,
		HighTemperatureThreshold: physic.ZeroCelsius + 80*physic.Kelvin,
		TemperatureHysteresis:    physic.ZeroCelsius + 75*physic.Kelvin,
	}
}

// Configuration is a snapshot of the device settings as returned by
// Dev.Configuration.
type Configuration struct {
	Shutdown                 bool
	Mode                     AlertMode
	HighTempActiveHigh       bool
	FaultsToAlert            FaultCount
	DelayBetweenMeasurements time.Duration
	HighTemperatureThreshold physic.Temperature
	TemperatureHysteresis    physic.Temperature
}

// Dev represents a PCT2075 sensor.
type Dev struct {
	d *i2c.Dev
}

// New returns a PCT2075 bound to the given bus and address. No I/O is
// performed until a property is read or written.
func New(bus i2c.Bus, addr i2c.Addr) (*Dev, error) {
	return &Dev{d: &i2c.Dev{Bus: bus, Addr: uint16(addr)}}, nil
}

// Temperature returns the last measured temperature. Resolution is 0.125°C.
func (dev *Dev) Temperature() (physic.Temperature, error) {
	return dev.readTemperature(regTemp, readingFormat)
}

// HighTemperatureThreshold returns the temperature above which the OS
// output is activated. Resolution is 0.5°C.
func (dev *Dev) HighTemperatureThreshold() (physic.Temperature, error) {
	return dev.readTemperature(regOS, limitFormat)
}

// SetHighTemperatureThreshold sets the alert threshold, rounded to 0.5°C.
//
// The threshold must stay above the current hysteresis. To move both limits
// below the current hysteresis, lower the hysteresis first or use Configure.
func (dev *Dev) SetHighTemperatureThreshold(t physic.Temperature) error {
	raw, err := limitFormat.encode(t)
	if err != nil {
		return err
	}
	hyst, err := dev.TemperatureHysteresis()
	if err != nil {
		return err
	}
	if threshold := limitFormat.decode(raw); hyst >= threshold {
		return fmt.Errorf("%w: hysteresis %s, threshold %s", ErrHysteresis, hyst, threshold)
	}
	return dev.writeInt16(regOS, raw)
}

// TemperatureHysteresis returns the bottom of the band in which the
// temperature is still considered high. Resolution is 0.5°C.
func (dev *Dev) TemperatureHysteresis() (physic.Temperature, error) {
	return dev.readTemperature(regHyst, limitFormat)
}

// SetTemperatureHysteresis sets the hysteresis, rounded to 0.5°C. It must be
// lower than the current high temperature threshold.
func (dev *Dev) SetTemperatureHysteresis(t physic.Temperature) error {
	raw, err := limitFormat.encode(t)
	if err != nil {
		return err
	}
	threshold, err := dev.HighTemperatureThreshold()
	if err != nil {
		return err
	}
	if hyst := limitFormat.decode(raw); hyst >= threshold {
		return fmt.Errorf("%w: hysteresis %s, threshold %s", ErrHysteresis, hyst, threshold)
	}
	return dev.writeInt16(regHyst, raw)
}

// Mode returns the OS output mode.
func (dev *Dev) Mode() (AlertMode, error) {
	v, err := dev.readField(fieldMode)
	return AlertMode(v), err
}

// SetMode sets the OS output mode.
func (dev *Dev) SetMode(mode AlertMode) error {
	if mode != ModeComparator && mode != ModeInterrupt {
		return fmt.Errorf("%w: %d", ErrAlertMode, byte(mode))
	}
	return dev.writeField(fieldMode, byte(mode))
}

// Shutdown reports whether the measurement circuitry is turned off. The
// registers stay accessible while shut down.
func (dev *Dev) Shutdown() (bool, error) {
	v, err := dev.readField(fieldShutdown)
	return v == 1, err
}

// SetShutdown turns the measurement circuitry off (true) or on (false).
func (dev *Dev) SetShutdown(shutdown bool) error {
	return dev.writeField(fieldShutdown, boolToBit(shutdown))
}

// HighTempActiveHigh returns the OS output polarity. When false the output
// is pulled to ground on alert; when true it is released on alert.
func (dev *Dev) HighTempActiveHigh() (bool, error) {
	v, err := dev.readField(fieldPolarity)
	return v == 1, err
}

// SetHighTempActiveHigh sets the OS output polarity.
func (dev *Dev) SetHighTempActiveHigh(activeHigh bool) error {
	return dev.writeField(fieldPolarity, boolToBit(activeHigh))
}

// FaultsToAlert returns the number of consecutive faults needed to trigger
// the OS output.
func (dev *Dev) FaultsToAlert() (FaultCount, error) {
	v, err := dev.readField(fieldFaultQueue)
	if err != nil {
		return 0, err
	}
	return faultCodes[v], nil
}

// SetFaultsToAlert sets the fault queue length.
func (dev *Dev) SetFaultsToAlert(f FaultCount) error {
	code, err := f.code()
	if err != nil {
		return err
	}
	return dev.writeField(fieldFaultQueue, code)
}

// DelayBetweenMeasurements returns the idle time between two conversions.
func (dev *Dev) DelayBetweenMeasurements() (time.Duration, error) {
	v, err := dev.readField(fieldIdle)
	if err != nil {
		return 0, err
	}
	return time.Duration(v) * idleStep, nil
}

// SetDelayBetweenMeasurements sets the idle time between two conversions.
// d must be a multiple of 100ms between MinDelay and MaxDelay.
func (dev *Dev) SetDelayBetweenMeasurements(d time.Duration) error {
	steps, err := delayToSteps(d)
	if err != nil {
		return err
	}
	return dev.writeField(fieldIdle, steps)
}

func delayToSteps(d time.Duration) (byte, error) {
	if d < MinDelay || d > MaxDelay || d%idleStep != 0 {
		return 0, fmt.Errorf("%w: got %s", ErrDelay, d)
	}
	return byte(d / idleStep), nil
}

// Configure validates opts as a whole and writes it to the device. The
// limits are written in the order that keeps the hysteresis below the
// threshold at every step.
func (dev *Dev) Configure(opts *Opts) error {
	if opts.Mode != ModeComparator && opts.Mode != ModeInterrupt {
		return fmt.Errorf("%w: %d", ErrAlertMode, byte(opts.Mode))
	}
	code, err := opts.FaultsToAlert.code()
	if err != nil {
		return err
	}
	steps, err := delayToSteps(opts.DelayBetweenMeasurements)
	if err != nil {
		return err
	}
	rawOS, err := limitFormat.encode(opts.HighTemperatureThreshold)
	if err != nil {
		return err
	}
	rawHyst, err := limitFormat.encode(opts.TemperatureHysteresis)
	if err != nil {
		return err
	}
	if rawHyst >= rawOS {
		return fmt.Errorf("%w: hysteresis %s, threshold %s", ErrHysteresis,
			limitFormat.decode(rawHyst), limitFormat.decode(rawOS))
	}

	b, err := dev.readRegister(regConfig)
	if err != nil {
		return err
	}
	cfg := fieldMode.set(b[0], byte(opts.Mode))
	cfg = fieldPolarity.set(cfg, boolToBit(opts.HighTempActiveHigh))
	cfg = fieldFaultQueue.set(cfg, code)
	if err = dev.writeRegister(regConfig, []byte{cfg}); err != nil {
		return err
	}
	if err = dev.writeField(fieldIdle, steps); err != nil {
		return err
	}

	current, err := dev.HighTemperatureThreshold()
	if err != nil {
		return err
	}
	if limitFormat.decode(rawHyst) < current {
		if err = dev.writeInt16(regHyst, rawHyst); err != nil {
			return err
		}
		return dev.writeInt16(regOS, rawOS)
	}
	if err = dev.writeInt16(regOS, rawOS); err != nil {
		return err
	}
	return dev.writeInt16(regHyst, rawHyst)
}

// Configuration reads the current settings from the device.
func (dev *Dev) Configuration() (*Configuration, error) {
	b, err := dev.readRegister(regConfig)
	if err != nil {
		return nil, err
	}
	cfg := &Configuration{
		Shutdown:           fieldShutdown.get(b[0]) == 1,
		Mode:               AlertMode(fieldMode.get(b[0])),
		HighTempActiveHigh: fieldPolarity.get(b[0]) == 1,
		FaultsToAlert:      faultCodes[fieldFaultQueue.get(b[0])],
	}
	if cfg.DelayBetweenMeasurements, err = dev.DelayBetweenMeasurements(); err != nil {
		return nil, err
	}
	if cfg.HighTemperatureThreshold, err = dev.HighTemperatureThreshold(); err != nil {
		return nil, err
	}
	if cfg.TemperatureHysteresis, err = dev.TemperatureHysteresis(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sense reads the temperature and writes it to env. Implements
// physic.SenseEnv.
func (dev *Dev) Sense(env *physic.Env) error {
	env.Humidity = 0
	env.Pressure = 0
	t, err := dev.Temperature()
	if err != nil {
		return err
	}
	env.Temperature = t
	return nil
}

// SenseContinuous is not supported; callers poll Sense at the rate they
// need. Implements physic.SenseEnv.
func (dev *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	return nil, ErrNotSupported
}

// Precision returns the reading resolution of 0.125°C. Implements
// physic.SenseEnv.
func (dev *Dev) Precision(env *physic.Env) {
	env.Temperature = readingFormat.resolution
	env.Pressure = 0
	env.Humidity = 0
}

// Halt puts the device in shutdown. Implements conn.Resource.
func (dev *Dev) Halt() error {
	return dev.SetShutdown(true)
}

func (dev *Dev) String() string {
	return fmt.Sprintf("pct2075: %s", dev.d.String())
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
