package preflight

// Options selects where the libzmq version is read from. The first
// non-empty source wins: Version, Header, IncludeDirs, then pkg-config.
type Options struct {
	// Version is an explicit release string such as "3.3.0".
	Version string
	// Header is the path of a zmq.h to read.
	Header string
	// IncludeDirs are searched in order for zmq.h.
	IncludeDirs []string
	// PkgConfig is the pkg-config binary.
	PkgConfig string
	// Package is the pkg-config module name of libzmq.
	Package string
}

func (o *Options) normalize() {
	if o.PkgConfig == "" {
		o.PkgConfig = "pkg-config"
	}
	if o.Package == "" {
		o.Package = "libzmq"
	}
}
