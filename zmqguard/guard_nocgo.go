//go:build !cgo

package zmqguard

// The libzmq version can only be checked by the C preprocessor.
var _ = zmqguard_requires_cgo_set_CGO_ENABLED_1
