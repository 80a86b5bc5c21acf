//go:build !statsview
// +build !statsview

package statsview

import "io"

// Launch is a no-op when built without the statsview tag.
func Launch(output io.Writer) {}

// Available reports false when built without the statsview tag.
func Available() bool { return false }
