//go:build unix

package jterm

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

// fdReader reads a terminal file descriptor, using select(2) so Poll
// never blocks past its timeout.
type fdReader struct {
	fd     int
	buf    []byte
	closed atomic.Bool
}

// NewStdinReader creates an InputReader for the given terminal input.
// The terminal should already be in raw mode when Poll is first called.
func NewStdinReader(in *os.File) (InputReader, error) {
	if in == nil {
		return nil, errors.New("jterm: nil input file")
	}
	return &fdReader{
		fd:  int(in.Fd()),
		buf: make([]byte, 256),
	}, nil
}

func (r *fdReader) Poll(timeout time.Duration) ([]byte, error) {
	if r.closed.Load() {
		return nil, io.EOF
	}
	ready, err := selectWithTimeout(r.fd, timeout)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	if !ready {
		return nil, nil
	}

	n, err := unix.Read(r.fd, r.buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, io.EOF
	}
	return bytes.Clone(r.buf[:n]), nil
}

func (r *fdReader) Close() error {
	r.closed.Store(true)
	return nil
}

// selectWithTimeout performs a select() call on the given fd with timeout.
// Returns (true, nil) if the fd is ready for reading.
// Returns (false, nil) on timeout.
// Returns (false, err) on error.
func selectWithTimeout(fd int, timeout time.Duration) (ready bool, err error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(fd)

	var tv *unix.Timeval
	if timeout >= 0 {
		tvVal := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &tvVal
	}

	n, err := unix.Select(fd+1, &readFds, nil, nil, tv)
	if err != nil {
		// EINTR is expected when signals arrive
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}
