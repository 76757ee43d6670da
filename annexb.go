package h264

// NALCursor is a pull iterator over NAL units with their Annex B start
// codes stripped. The STAP-A aggregator pulls one element past the ones it
// aggregates and hands that element back to its caller, so a cursor needs
// no peek or unread support of its own.
type NALCursor interface {
	// Next returns the next NAL unit, or ok=false once the cursor is
	// exhausted. A returned nalu must stay valid after later calls to
	// Next: the packetizer may emit it as a payload after pulling further
	// units.
	Next() (nalu []byte, ok bool)
}

// AnnexBReader scans a contiguous Annex B buffer and yields its NAL units
// with start codes stripped, implementing NALCursor. Both 3-byte (00 00 01)
// and 4-byte (00 00 00 01) start codes are recognized on input.
//
// The scanner never fails: malformed input yields a best-effort, possibly
// empty, sequence.
type AnnexBReader struct {
	buf []byte
	pos int
}

// NewAnnexBReader returns a reader that scans buf for NAL units.
func NewAnnexBReader(buf []byte) *AnnexBReader {
	return &AnnexBReader{buf: buf}
}

// Next implements NALCursor.
func (r *AnnexBReader) Next() (nalu []byte, ok bool) {
	start, codeLen := findStartCode(r.buf, r.pos)
	if start < 0 {
		r.pos = len(r.buf)
		return nil, false
	}

	naluStart := start + codeLen
	nextStart, _ := findStartCode(r.buf, naluStart)
	if nextStart < 0 {
		r.pos = len(r.buf)
		if naluStart >= len(r.buf) {
			return nil, false
		}
		return r.buf[naluStart:], true
	}

	r.pos = nextStart
	return r.buf[naluStart:nextStart], true
}

// findStartCode returns the index and length (3 or 4) of the first Annex B
// start code at or after from, or (-1, 0) if none is found.
//
// This implements the stricter termination rule: a NAL unit ends exactly at
// the next start code, or at the end of the buffer if no further start code
// exists. Two trailing zero bytes inside a NAL unit are left alone; three
// consecutive zeros followed by a 1 are always treated as the start of the
// next NAL unit, never as payload.
func findStartCode(buf []byte, from int) (index, length int) {
	for i := from; i+2 < len(buf); i++ {
		if buf[i] != 0 || buf[i+1] != 0 {
			continue
		}
		if buf[i+2] == 1 {
			return i, 3
		}
		if buf[i+2] == 0 && i+3 < len(buf) && buf[i+3] == 1 {
			return i, 4
		}
	}
	return -1, 0
}

// SplitAnnexB splits buf into a slice of NAL units, start codes stripped.
// It is a convenience wrapper around AnnexBReader for callers that want the
// whole sequence eagerly rather than pulling it one unit at a time.
func SplitAnnexB(buf []byte) [][]byte {
	r := NewAnnexBReader(buf)
	var nalus [][]byte
	for {
		nalu, ok := r.Next()
		if !ok {
			return nalus
		}
		nalus = append(nalus, nalu)
	}
}
