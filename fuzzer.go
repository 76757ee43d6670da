//go:build gofuzz

package h264

// Fuzz implements a randomized fuzz test of the payload descriptor parser
// using go-fuzz.
//
// To run the fuzzer, first download go-fuzz:
// `go get github.com/dvyukov/go-fuzz/...`
//
// Then build the testing package:
// `go-fuzz-build github.com/arushkharbanda/rtph264`
//
// And run the fuzzer on the corpus:
// ```
// go-fuzz -bin=h264-fuzz.zip -workdir=fuzzer
// ```
func Fuzz(data []byte) int {
	// ParsePayload must never panic, regardless of how malformed data is;
	// a returned error is an expected, recoverable outcome.
	if _, _, err := (Depacketizer{}).ParsePayload(data); err != nil {
		return 0
	}
	return 1
}
