// Command h264rtpsend reads an Annex B H.264 byte-stream from a file and
// sends it to a UDP peer as RTP, using the pass-through packer to split it
// into Single NAL Unit / STAP-A / FU-A payloads.
//
// This is an illustrative example, not a production RTP sender: it emits
// the minimum RTP header (version, payload type, sequence number, SSRC,
// and a timestamp that stays at zero for every packet rather than advancing
// per frame) needed to exercise h264.Packetizer end to end.
package main

import (
	"encoding/binary"
	"fmt"
	"net"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/arushkharbanda/rtph264"
)

var (
	flagAddr = "127.0.0.1:5004"
	flagMTU  = h264.PacketMax
	flagInput = ""
	flagPT   uint8 = 96
	flagSSRC uint32 = 0x1234abcd
	flagHelp bool
)

func init() {
	flag.StringVarP(&flagAddr, "addr", "a", flagAddr, "UDP destination address")
	flag.IntVarP(&flagMTU, "mtu", "m", flagMTU, "Maximum RTP payload size")
	flag.StringVarP(&flagInput, "input", "i", flagInput, "Annex B .h264 file to send")
	flag.Uint8VarP(&flagPT, "payload-type", "t", flagPT, "RTP payload type")
	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
}

func main() {
	flag.Parse()

	if flagHelp || flagInput == "" {
		fmt.Fprintln(os.Stderr, "usage: h264rtpsend -i FILE.h264 [-a addr] [-m mtu]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "h264rtpsend:", err)
		os.Exit(1)
	}
}

func run() error {
	annexB, err := os.ReadFile(flagInput)
	if err != nil {
		return fmt.Errorf("read %s: %w", flagInput, err)
	}

	addr, err := net.ResolveUDPAddr("udp", flagAddr)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", flagAddr, err)
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", flagAddr, err)
	}
	defer conn.Close()

	p := h264.New(flagMTU)
	payloads := p.PacketizeAnnexB(annexB)

	var seq uint16
	var ts uint32
	for i, payload := range payloads {
		marker := i == len(payloads)-1
		pkt := marshalRTP(seq, ts, flagPT, flagSSRC, marker, payload)
		if _, err := conn.Write(pkt); err != nil {
			return fmt.Errorf("send packet %d: %w", i, err)
		}
		seq++
	}

	fmt.Fprintf(os.Stderr, "sent %d RTP packets from %d bytes of Annex B input\n", len(payloads), len(annexB))
	return nil
}

// marshalRTP builds the minimal 12-byte fixed RTP header (RFC 3550 section
// 5.1) this example needs: no CSRC list, no header extensions.
func marshalRTP(seq uint16, ts uint32, pt uint8, ssrc uint32, marker bool, payload []byte) []byte {
	const headerLen = 12
	buf := make([]byte, headerLen+len(payload))

	buf[0] = 0x80 // version 2, no padding, no extension, no CSRC
	buf[1] = pt & 0x7f
	if marker {
		buf[1] |= 0x80
	}
	binary.BigEndian.PutUint16(buf[2:4], seq)
	binary.BigEndian.PutUint32(buf[4:8], ts)
	binary.BigEndian.PutUint32(buf[8:12], ssrc)
	copy(buf[headerLen:], payload)
	return buf
}
