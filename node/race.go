// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package node

// RaceEnabled is true when the race detector is active. Used by tests
// that deliberately violate the single-consumer contract to demonstrate
// the resulting corruption, which the race detector would otherwise
// flag as a crashing data race rather than a test assertion.
const RaceEnabled = true
