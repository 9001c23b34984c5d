//go:build !unix

package jterm

import "os"

// Resize notification is not available without SIGWINCH. The next frame
// after any input still picks up the new size from Terminal.Size.
func notifyResize(chan<- os.Signal) {}

func stopResize(chan<- os.Signal) {}
