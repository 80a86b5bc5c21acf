// Package memviz dumps the live reference graph of a running Console -
// CPU, PPU, APU, bus and cartridge all holding pointers back and forth -
// as a Graphviz dot file, for debugging the back-reference-cycle
// ownership the hardware packages rely on instead of import cycles.
package memviz

import (
	"os"

	"github.com/bradleyjkemp/memviz"
)

// Dump writes a dot-format memory graph of v to path. It is meant to be
// called from a debug build or a development command line flag, never
// from the hot emulation path.
func Dump(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, v)
	return nil
}
