package h264

import (
	"time"

	"github.com/pion/logging"
)

// Frame is a single raw, uncompressed video frame handed to an Encoder,
// paired with its presentation timestamp.
type Frame struct {
	Data []byte
	PTS  time.Duration
}

// Encoder is the opaque codec collaborator that turns a raw video Frame
// into an Annex B encoded byte-stream. This package never implements one:
// it only drives whatever Annex B bytes come back through packetization.
type Encoder interface {
	Encode(frame Frame, forceKeyframe bool) (annexB []byte, err error)
}

// Packetizer turns a sequence of NAL units into RTP payloads obeying the
// Single NAL Unit, STAP-A, and FU-A rules of RFC 6184. The zero value is
// ready to use with the default MTU (PacketMax).
type Packetizer struct {
	// MTU bounds every emitted payload. Zero means PacketMax.
	MTU int
}

// New returns a Packetizer with the given MTU. mtu <= 0 means PacketMax.
func New(mtu int) *Packetizer {
	return &Packetizer{MTU: mtu}
}

func (p *Packetizer) mtu() int {
	if p.MTU <= 0 {
		return PacketMax
	}
	return p.MTU
}

// Packetize drives src to completion, dispatching each NAL unit to the
// FU-A fragmenter or the STAP-A aggregator, and returns the ordered list of
// RTP payloads. Output order matches src's NAL order; FU-A fragments of a
// single NAL unit are contiguous and in ascending fragment order.
//
// Zero-length NAL units, which a scanner resyncing on malformed input can
// legitimately produce, are silently dropped.
func (p *Packetizer) Packetize(src NALCursor) [][]byte {
	mtu := p.mtu()

	var out [][]byte
	cur, ok := pullNonEmpty(src)
	for ok {
		if len(cur) > mtu {
			out = append(out, fragmentFUA(cur, mtu)...)
			cur, ok = pullNonEmpty(src)
			continue
		}

		var payload []byte
		payload, cur = aggregateSTAPA(cur, src, mtu)
		out = append(out, payload)
		ok = cur != nil
	}
	return out
}

// PacketizeAnnexB implements the pass-through packer (spec.md section 4.6):
// it scans buf itself, bypassing any codec, and packetizes the resulting
// NAL units exactly as Packetize would.
func (p *Packetizer) PacketizeAnnexB(buf []byte) [][]byte {
	return p.Packetize(NewAnnexBReader(buf))
}

// EncodingPacketizer wraps a Packetizer with an Encoder collaborator,
// implementing the egress operation: packetize(frame, force_keyframe) ->
// (payloads, timestamp).
type EncodingPacketizer struct {
	*Packetizer
	Encoder Encoder
	Log     logging.LeveledLogger
}

// NewEncodingPacketizer returns an EncodingPacketizer driving enc through a
// Packetizer with the given MTU (mtu <= 0 means PacketMax). A nil logger
// gets pion/logging's default logger under the "h264" scope.
func NewEncodingPacketizer(mtu int, enc Encoder, log logging.LeveledLogger) *EncodingPacketizer {
	if log == nil {
		log = logging.NewDefaultLoggerFactory().NewLogger("h264")
	}
	return &EncodingPacketizer{
		Packetizer: New(mtu),
		Encoder:    enc,
		Log:        log,
	}
}

// Packetize encodes frame, scans the resulting Annex B byte-stream, and
// packetizes it. forceKeyframe is passed straight through to the Encoder
// and is never interpreted here. On encoder failure, the policy is to log
// a warning and return zero payloads rather than propagate the error: the
// surrounding transport is expected to keep running across a dropped
// frame.
func (e *EncodingPacketizer) Packetize(frame Frame, forceKeyframe bool) (payloads [][]byte, timestamp uint32) {
	annexB, err := e.Encoder.Encode(frame, forceKeyframe)
	if err != nil {
		e.Log.Warnf("h264: encode failed, dropping frame: %v", err)
		return nil, 0
	}

	return e.Packetizer.PacketizeAnnexB(annexB), ptsToRTPTimestamp(frame.PTS)
}

// ptsToRTPTimestamp converts a presentation timestamp to the 90 kHz RTP
// video time base. Like any RTP timestamp, the result wraps at 2^32.
func ptsToRTPTimestamp(pts time.Duration) uint32 {
	return uint32(int64(pts.Seconds() * ClockRate)) // nolint:gosec // intentional wraparound
}
