// Package h264 bridges an H.264 Annex B byte-stream and the RTP
// packetization rules of RFC 6184 (Single NAL Unit, STAP-A, and FU-A).
//
// The package is purely synchronous: every call produces its full output
// before returning, and a Packetizer holds no state across calls beyond
// the fields the caller set. Two Packetizers may run concurrently; a
// single one must be driven from one goroutine at a time.
package h264
