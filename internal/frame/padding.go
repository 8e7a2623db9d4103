package frame

import "bytes"

// Pad appends PKCS#7-style padding so that len(data) becomes a multiple of
// the block size. Each pad byte holds the pad count (1..15).
//
// If the length is already a block multiple, nothing is appended. This keeps
// the wire format byte-compatible with existing peers, at the cost of a known
// ambiguity: Unpad cannot tell "no padding" apart from a plaintext whose tail
// coincidentally looks like valid padding. See Unpad.
func Pad(data []byte) []byte {
	rem := len(data) % BlockSize
	if rem == 0 {
		return data
	}

	padding := BlockSize - rem

	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// Unpad strips PKCS#7-style padding from data, returning the shortened slice.
//
// Removal only happens when the length is a nonzero block multiple, the last
// byte is a pad count in [1,15], and all trailing count bytes match it.
// Anything else returns data unchanged rather than an error: after a
// checksum-valid decrypt, an unpaddable tail means the plaintext simply was
// not padded.
func Unpad(data []byte) []byte {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return data
	}

	padding := int(data[len(data)-1])
	if padding < 1 || padding > BlockSize-1 {
		return data
	}

	for i := len(data) - padding; i < len(data); i++ {
		if data[i] != byte(padding) {
			return data
		}
	}

	return data[:len(data)-padding]
}
