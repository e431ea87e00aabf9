//go:build cgo

// Package zmqguard fails the build when the libzmq found by pkg-config is not
// a 3.x release at or above 3.3.0.
//
// Binding packages blank-import it so the check runs before they compile:
//
//	import _ "github.com/getkawai/zmqguard/zmqguard"
//
// cgo files that declare libzmq APIs should also include
// "zmq_version_guard.h" ahead of any other libzmq header.
//
// The go build cache does not notice when the system libzmq changes. After
// upgrading or downgrading libzmq, run `go clean -cache` or build with -a,
// or run `zmqguard check`, which reads the installed version every time.
package zmqguard

/*
#cgo pkg-config: libzmq
#include "zmq_version_guard.h"
*/
import "C"
