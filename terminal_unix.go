//go:build unix

package jterm

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// notifyResize delivers SIGWINCH to ch.
func notifyResize(ch chan<- os.Signal) {
	signal.Notify(ch, unix.SIGWINCH)
}

func stopResize(ch chan<- os.Signal) {
	signal.Stop(ch)
}
