// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package node

import "fmt"

// newAllocError reports pool allocation failure. Nothing is partially
// initialized when this is returned.
func newAllocError(capacity int) error {
	return fmt.Errorf("node: pool capacity must be positive, got %d", capacity)
}
