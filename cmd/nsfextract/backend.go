package main

import (
	"errors"

	"github.com/sfingram/nsfnotate/internal/nsfemu"
)

// errNoBackend is returned by newBackend in the stock build.
var errNoBackend = errors.New("nsfextract: no emulator backend compiled into this binary")

// newBackend returns the nsfemu.Backend this binary was built with. The
// stock build ships no cgo-based NotSoFatSo binding — spec.md §1 treats
// the emulator as an external collaborator and DESIGN.md records why one
// isn't vendored here — so this always fails. A real deployment replaces
// this file with one that constructs a cgo-backed nsfemu.Backend.
func newBackend() (nsfemu.Backend, error) {
	return nil, errNoBackend
}
