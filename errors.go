package h264

import (
	"errors"
	"fmt"
)

// Errors returned by ParsePayload/Depayload. Every one is recoverable: the
// caller is expected to drop the offending RTP packet and continue.
var (
	// ErrShortPayload is returned when an RTP payload is shorter than two
	// bytes, whatever its NAL unit type.
	ErrShortPayload = errors.New("h264: payload too short")

	// ErrTruncatedSTAPALength is returned when a STAP-A length field does
	// not fit within the remaining payload bytes.
	ErrTruncatedSTAPALength = errors.New("h264: STAP-A length field is truncated")

	// ErrTruncatedSTAPAData is returned when a STAP-A entry's declared
	// length exceeds the bytes actually remaining in the payload.
	ErrTruncatedSTAPAData = errors.New("h264: STAP-A data is truncated")

	// ErrUnsupportedNALType is returned for any NAL unit type this package
	// does not parse (25-27, 29, and any value outside 1..29).
	ErrUnsupportedNALType = errors.New("h264: unsupported NAL unit type")
)

func unsupportedNALTypeError(t NALType) error {
	return fmt.Errorf("%w: %d", ErrUnsupportedNALType, t)
}
