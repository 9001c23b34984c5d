package jterm

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// InputReader is the byte source feeding the decoder. It is polled by a
// single goroutine.
type InputReader interface {
	// Poll waits up to timeout for input. It returns (nil, nil) on timeout
	// and io.EOF once the source is exhausted or closed.
	Poll(timeout time.Duration) ([]byte, error)

	// Close releases resources. Must be called when done.
	Close() error
}

// streamReader adapts any io.Reader to InputReader. A pump goroutine does
// the blocking reads and hands chunks over a channel.
type streamReader struct {
	src  io.Reader
	data chan []byte
	errc chan error
	done chan struct{}
	once sync.Once
	err  error
}

// NewReader wraps r as an InputReader. Close stops delivery but does not
// close r; a pump blocked in r.Read returns when r does.
func NewReader(r io.Reader) InputReader {
	sr := &streamReader{
		src:  r,
		data: make(chan []byte),
		errc: make(chan error, 1),
		done: make(chan struct{}),
	}
	go sr.pump()
	return sr
}

func (r *streamReader) pump() {
	buf := make([]byte, 256)
	for {
		n, err := r.src.Read(buf)
		if n > 0 {
			select {
			case r.data <- bytes.Clone(buf[:n]):
			case <-r.done:
				return
			}
		}
		if err != nil {
			r.errc <- err
			return
		}
	}
}

func (r *streamReader) Poll(timeout time.Duration) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case b := <-r.data:
		return b, nil
	case err := <-r.errc:
		r.err = err
		return nil, err
	case <-r.done:
		return nil, io.EOF
	case <-timer.C:
		return nil, nil
	}
}

func (r *streamReader) Close() error {
	r.once.Do(func() { close(r.done) })
	return nil
}
