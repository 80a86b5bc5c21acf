//go:build statsview
// +build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address is the host:port the statsview HTTP server listens on.
const Address = "localhost:12601"

const path = "/debug/statsview"

// Launch starts the statsview HTTP server in its own goroutine.
func Launch(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at %s%s\n", Address, path)
}

// Available reports whether a statsview is available to launch. It is
// always true when built with the statsview tag.
func Available() bool {
	return true
}
