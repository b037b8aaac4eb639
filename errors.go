package core

import (
	"fmt"

	"github.com/adder-codec/core/codecerr"
)

func wrapWriteFailure(err error) error {
	return fmt.Errorf("%w: %v", codecerr.ErrWriteFailure, err)
}

func wrapReadFailure(err error) error {
	return fmt.Errorf("%w: %v", codecerr.ErrReadFailure, err)
}

func wrapCorruptStream(err error) error {
	return fmt.Errorf("%w: %v", codecerr.ErrCorruptStream, err)
}

func wrapPrematureEOF(err error) error {
	return fmt.Errorf("%w: %v", codecerr.ErrPrematureEOF, err)
}
