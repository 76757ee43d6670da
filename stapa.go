package h264

// aggregateSTAPA greedily aggregates cur with as many subsequent NAL units
// pulled from src as fit under mtu, per RFC 6184 section 5.7.1. It returns
// the payload to emit (either cur unchanged, or a STAP-A packet) and the
// first NAL unit not consumed, or nil if src is exhausted.
//
// A STAP-A is only emitted when at least two NAL units were aggregated: a
// STAP-A wrapping a single NAL unit is strictly worse than sending that NAL
// unit alone (three extra header bytes, zero savings).
func aggregateSTAPA(cur []byte, src NALCursor, mtu int) (payload []byte, next []byte) {
	available := mtu - stapaReserved
	header := (cur[0] & fNRIBitmask) | byte(NALTypeSTAPA)
	var body []byte
	counter := 0

	nalu := cur
	for {
		if len(nalu) > available {
			break
		}

		if nalu[0]&fBitmask != 0 {
			header |= fBitmask
		}
		if nri := nalu[0] & nriBitmask; header&nriBitmask < nri {
			// Clear the old NRI bits before OR-ing in the new ones: an
			// OR-only update would yield the union of the NRI bits seen
			// (0x20 | 0x40 = 0x60) rather than their maximum.
			header = (header &^ nriBitmask) | nri
		}

		available -= lengthFieldSize + len(nalu)
		counter++
		body = appendUint16(body, uint16(len(nalu)))
		body = append(body, nalu...)

		n, ok := pullNonEmpty(src)
		if !ok {
			nalu = nil
			break
		}
		nalu = n
	}

	if counter == 0 {
		if n, ok := pullNonEmpty(src); ok {
			nalu = n
		} else {
			nalu = nil
		}
	}

	if counter <= 1 {
		return cur, nalu
	}

	out := make([]byte, 0, 1+len(body))
	out = append(out, header)
	out = append(out, body...)
	return out, nalu
}

// pullNonEmpty calls src.Next() until it yields a non-empty NAL unit or is
// exhausted. AnnexBReader can legitimately yield a zero-length NAL unit
// between two adjacent start codes; an empty NAL unit carries no header
// byte and is silently dropped rather than treated as data.
func pullNonEmpty(src NALCursor) ([]byte, bool) {
	for {
		n, ok := src.Next()
		if !ok || len(n) != 0 {
			return n, ok
		}
	}
}
