package mggif

import "errors"

var (
	// ErrInvalidHeader is returned when the buffer is too short for a GIF
	// header or the signature is not GIF87a/GIF89a.
	ErrInvalidHeader = errors.New("mggif: invalid header")

	// ErrUnexpectedBlock is returned when a block introducer is neither an
	// image descriptor, an extension nor the trailer.
	ErrUnexpectedBlock = errors.New("mggif: unexpected block")

	// ErrTruncated is returned when the data ends before a structurally
	// complete unit (palette, sub-block chain, code).
	ErrTruncated = errors.New("mggif: unexpected end of data")

	// ErrMalformed is returned when a sub-block declares more bytes than the
	// buffer holds.
	ErrMalformed = errors.New("mggif: malformed sub-block")
)
