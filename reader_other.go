//go:build !unix

package jterm

import (
	"errors"
	"os"
)

// NewStdinReader creates an InputReader for the given terminal input.
func NewStdinReader(in *os.File) (InputReader, error) {
	if in == nil {
		return nil, errors.New("jterm: nil input file")
	}
	return NewReader(in), nil
}
