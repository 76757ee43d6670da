package h264

import "encoding/binary"

// PayloadDescriptor classifies a depacketized RTP payload.
type PayloadDescriptor struct {
	// FirstFragment is true for a Single NAL Unit payload, for a STAP-A
	// payload, and for the starting fragment of an FU-A; false for a
	// middle or ending FU-A fragment.
	FirstFragment bool
}

// Depacketizer parses RTP payloads carrying H.264 per RFC 6184 into Annex B
// (or, with IsAVC set, length-prefixed AVC) fragments. The zero value parses
// Annex B.
type Depacketizer struct {
	// IsAVC selects a 4-byte big-endian length prefix instead of a
	// 00 00 00 01 Annex B start code wherever a prefix is written (every
	// Single NAL Unit, every STAP-A entry, and an FU-A start fragment;
	// middle and ending FU-A fragments carry no prefix in either mode).
	IsAVC bool
}

// ParsePayload parses data, an RTP payload carrying H.264, and returns a
// PayloadDescriptor classifying it plus the reconstructed byte fragment.
// Concatenating, per ingress NAL unit, the fragments this returns — in the
// order packets for that NAL unit arrived — reproduces the original NAL
// unit's Annex B framing bit-exactly. With IsAVC set, the same holds for
// Single NAL Unit and STAP-A payloads; for an FU-A start fragment the
// length prefix counts only the bytes of that fragment, not of the whole
// fragmented NAL unit.
func (d Depacketizer) ParsePayload(data []byte) (PayloadDescriptor, []byte, error) {
	if len(data) < 2 {
		return PayloadDescriptor{}, nil, ErrShortPayload
	}

	switch t := naluType(data[0]); {
	case isSingleNALType(t):
		return PayloadDescriptor{FirstFragment: true}, d.prefixed(data), nil

	case t == NALTypeFUA:
		return d.parseFUA(data)

	case t == NALTypeSTAPA:
		return d.parseSTAPA(data)

	default:
		return PayloadDescriptor{}, nil, unsupportedNALTypeError(t)
	}
}

// parseFUA assumes len(data) >= 2, guaranteed by ParsePayload's top-level
// short-payload check, which covers the FU-A's 2 header bytes.
func (d Depacketizer) parseFUA(data []byte) (PayloadDescriptor, []byte, error) {
	fNRI := data[0] & fNRIBitmask
	originalType := naluType(data[1])
	start := data[1]&fuStartBitmask != 0

	if !start {
		tail := append([]byte(nil), data[fuaHeaderSize:]...)
		return PayloadDescriptor{FirstFragment: false}, tail, nil
	}

	originalHeader := fNRI | byte(originalType)
	out := d.prefixHeader(originalHeader, data[fuaHeaderSize:])
	return PayloadDescriptor{FirstFragment: true}, out, nil
}

func (d Depacketizer) parseSTAPA(data []byte) (PayloadDescriptor, []byte, error) {
	var out []byte
	pos := stapaHeaderSize
	for pos < len(data) {
		if len(data) < pos+lengthFieldSize {
			return PayloadDescriptor{}, nil, ErrTruncatedSTAPALength
		}
		n := int(binary.BigEndian.Uint16(data[pos : pos+lengthFieldSize]))
		pos += lengthFieldSize

		if len(data) < pos+n {
			return PayloadDescriptor{}, nil, ErrTruncatedSTAPAData
		}
		out = append(out, d.prefixed(data[pos:pos+n])...)
		pos += n
	}

	return PayloadDescriptor{FirstFragment: true}, out, nil
}

// prefixed prepends a start code (Annex B) or length prefix (AVC) to nalu.
func (d Depacketizer) prefixed(nalu []byte) []byte {
	out := d.prefix(len(nalu))
	return append(out, nalu...)
}

// prefixHeader is like prefixed but for a reconstructed NAL unit whose
// header byte was carried separately (the FU-A start fragment case).
func (d Depacketizer) prefixHeader(header byte, rest []byte) []byte {
	out := d.prefix(1 + len(rest))
	out = append(out, header)
	return append(out, rest...)
}

func (d Depacketizer) prefix(naluLen int) []byte {
	if d.IsAVC {
		out := make([]byte, 4, 4+naluLen)
		binary.BigEndian.PutUint32(out, uint32(naluLen)) // nolint:gosec // NAL units never approach 2^32 bytes
		return out
	}
	out := make([]byte, 0, startCode4Len+naluLen)
	return append(out, startCode4[:]...)
}

// Depayload is a convenience wrapper around Depacketizer.ParsePayload that
// returns only the reconstructed Annex B fragment, for callers that do not
// need the first-fragment classification.
func Depayload(payload []byte) ([]byte, error) {
	_, data, err := (Depacketizer{}).ParsePayload(payload)
	return data, err
}
