// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package node

import "github.com/winksaville/mpscfifo/internal/asmhint"

// pad is cache line padding to prevent false sharing between the head and
// tail of a Queue.
type pad [asmhint.CacheLineBytes]byte
