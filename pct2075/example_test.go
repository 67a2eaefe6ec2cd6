// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pct2075_test

import (
	"log"
	"time"

	"github.com/GermanBionicSystems/tempsensors/pct2075"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// Example shows creating a PCT2075, setting an alert window and polling the
// temperature.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	dev, err := pct2075.New(bus, pct2075.DefaultAddress)
	if err != nil {
		log.Fatal(err)
	}

	opts := pct2075.DefaultOpts()
	opts.HighTemperatureThreshold = physic.ZeroCelsius + 30*physic.Kelvin
	opts.TemperatureHysteresis = physic.ZeroCelsius + 28*physic.Kelvin
	opts.DelayBetweenMeasurements = 500 * time.Millisecond
	if err = dev.Configure(opts); err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		t, err := dev.Temperature()
		if err != nil {
			log.Println(err)
		} else {
			log.Printf("Temperature: %s\n", t)
		}
		time.Sleep(500 * time.Millisecond)
	}
}
