package h264

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFragmentFUA(t *testing.T) {
	// Ported from pion/rtp's TestH264Payloader_Payload large-payload case:
	// a 16-byte NAL unit (header 0x00) under an mtu of 5.
	nalu := []byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15,
	}
	want := [][]byte{
		{0x1c, 0x80, 0x01, 0x02, 0x03},
		{0x1c, 0x00, 0x04, 0x05, 0x06},
		{0x1c, 0x00, 0x07, 0x08, 0x09},
		{0x1c, 0x00, 0x10, 0x11, 0x12},
		{0x1c, 0x40, 0x13, 0x14, 0x15},
	}

	got := fragmentFUA(nalu, 5)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fragmentFUA mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentFUA_SpecWorkedExample(t *testing.T) {
	// spec.md section 8, scenario 3: a 3000-byte type-5 NAL unit, NRI 0x60.
	nalu := make([]byte, 3000)
	nalu[0] = 0x65 // F=0 NRI=0x60 type=5
	for i := 1; i < len(nalu); i++ {
		nalu[i] = byte(i)
	}

	got := fragmentFUA(nalu, PacketMax)
	assert.Len(t, got, 3)

	sizes := []int{1000, 1000, 999}
	indicators := []byte{0x7c, 0x7c, 0x7c}
	headers := []byte{0x85, 0x05, 0x45}

	reassembled := make([]byte, 0, len(nalu)-1)
	for i, pkt := range got {
		assert.Equal(t, fuaHeaderSize+sizes[i], len(pkt))
		assert.Equal(t, indicators[i], pkt[0])
		assert.Equal(t, headers[i], pkt[1])
		reassembled = append(reassembled, pkt[fuaHeaderSize:]...)
	}
	assert.Equal(t, nalu[1:], reassembled)
}

func TestFragmentFUA_FragmentLaw(t *testing.T) {
	// For every emitted packet: exactly one S, exactly one E, never both.
	nalu := make([]byte, 4000)
	nalu[0] = 0x21 // F=0 NRI=0x20 type=1

	got := fragmentFUA(nalu, PacketMax)
	assert.Greater(t, len(got), 2)

	sBits, eBits := 0, 0
	for i, pkt := range got {
		s := pkt[1]&fuStartBitmask != 0
		e := pkt[1]&fuEndBitmask != 0
		assert.Falsef(t, s && e, "packet %d sets both S and E", i)
		if s {
			sBits++
		}
		if e {
			eBits++
		}
	}
	assert.Equal(t, 1, sBits)
	assert.Equal(t, 1, eBits)
}

func TestFragmentFUA_SizesSumToPayload(t *testing.T) {
	nalu := make([]byte, 2601)
	nalu[0] = 0x67

	got := fragmentFUA(nalu, PacketMax)
	total := 0
	for _, pkt := range got {
		total += len(pkt) - fuaHeaderSize
	}
	assert.Equal(t, len(nalu)-1, total)
}
