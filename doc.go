// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tempsensors is a container for temperature sensor drivers built on
// periph.io.
package tempsensors
