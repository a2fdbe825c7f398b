// Package frame delimits messages on a byte stream. Each frame is the payload
// length as an unsigned base-128 varint (the protobuf varint encoding) followed
// by exactly that many payload bytes.
//
// Frames carry no maximum size: a peer announcing a huge length makes Read
// allocate that much before the payload arrives.
package frame

import (
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

const binaryMaxVarintLen = 10

// ErrLengthOverflow is returned when the length prefix does not terminate within
// the ten bytes a 64-bit varint may occupy.
var ErrLengthOverflow = errors.New("frame length prefix overflows 64 bits")

// Encode returns the payload prefixed with its varint-encoded length.
func Encode(payload []byte) []byte {
	buf := make([]byte, 0, protowire.SizeVarint(uint64(len(payload)))+len(payload))
	buf = protowire.AppendVarint(buf, uint64(len(payload)))
	return append(buf, payload...)
}

// Write encodes payload and writes the whole frame with a single Write call.
func Write(w io.Writer, payload []byte) error {
	if _, err := w.Write(Encode(payload)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Read reads exactly one frame from r and returns its payload.
// The length prefix is consumed one byte at a time so that no byte belonging to
// the following frame is read. A stream that ends inside a frame yields an error
// wrapping io.ErrUnexpectedEOF; a stream that ends before the first byte yields io.EOF.
func Read(r io.Reader) ([]byte, error) {
	size, err := readLength(r)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, size)
	if _, err = io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read frame payload of %d bytes: %w", size, err)
	}

	return payload, nil
}

func readLength(r io.Reader) (uint64, error) {
	prefix := make([]byte, 0, binaryMaxVarintLen)
	var b [1]byte

	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			if len(prefix) > 0 && errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("read frame length: %w", err)
		}
		prefix = append(prefix, b[0])

		size, n := protowire.ConsumeVarint(prefix)
		if n > 0 {
			return size, nil
		}
		if parseErr := protowire.ParseError(n); !errors.Is(parseErr, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: %w", ErrLengthOverflow, parseErr)
		}
	}
}
