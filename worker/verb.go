// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package worker

// Verb identifies what a command message asks a Worker to do. It is
// carried in a node's Arg1 field on the way in.
type Verb uint64

const (
	VerbDoNothing Verb = iota
	VerbConnect
	VerbDisconnectAll
	VerbStop
)

// String implements fmt.Stringer for log output.
func (v Verb) String() string {
	switch v {
	case VerbDoNothing:
		return "do-nothing"
	case VerbConnect:
		return "connect"
	case VerbDisconnectAll:
		return "disconnect-all"
	case VerbStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Result identifies the outcome a Worker stamps into Arg1 before routing
// a node back through ReplyOrRelease.
type Result uint64

const (
	ResultDidNothing Result = iota
	ResultConnected
	ResultDisconnected
	ResultStopped
	ResultUnknown
)

// String implements fmt.Stringer for log output.
func (r Result) String() string {
	switch r {
	case ResultDidNothing:
		return "did-nothing"
	case ResultConnected:
		return "connected"
	case ResultDisconnected:
		return "disconnected"
	case ResultStopped:
		return "stopped"
	case ResultUnknown:
		return "unknown"
	default:
		return "unrecognized"
	}
}
