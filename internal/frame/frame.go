package frame

import (
	"crypto/aes"
	"encoding/binary"
)

const (
	// SyncByte marks the first byte of every preamble.
	SyncByte = 0xfe

	// Version is the only wire format version currently produced or accepted.
	Version = 1

	// PreambleSize is the fixed size of the preamble in bytes.
	PreambleSize = 8

	// BlockSize is the cipher block size; body lengths are always a
	// nonzero multiple of it.
	BlockSize = aes.BlockSize

	// MaxFrameSize is the hard protocol limit on totalLen, regardless of
	// the session's configured capacity.
	MaxFrameSize = 0xfe00
)

// Preamble holds the decoded fixed-size frame header.
//
// Checksum covers everything after the preamble (header plus ciphertext).
// TotalLen counts the preamble itself.
type Preamble struct {
	Checksum uint16
	TotalLen int
	HdrLen   int
}

// PutPreamble writes p into the first PreambleSize bytes of dst.
func PutPreamble(dst []byte, p Preamble) {
	dst[0] = SyncByte
	dst[1] = Version
	binary.BigEndian.PutUint16(dst[2:4], p.Checksum)
	binary.BigEndian.PutUint16(dst[4:6], uint16(p.TotalLen)) //nolint:gosec // callers bound TotalLen by MaxFrameSize
	binary.BigEndian.PutUint16(dst[6:8], uint16(p.HdrLen))   //nolint:gosec // HdrLen < TotalLen
}

// ParsePreamble reads the preamble fields from src, which must hold at least
// PreambleSize bytes. It performs no validation beyond field extraction.
func ParsePreamble(src []byte) Preamble {
	return Preamble{
		Checksum: binary.BigEndian.Uint16(src[2:4]),
		TotalLen: int(binary.BigEndian.Uint16(src[4:6])),
		HdrLen:   int(binary.BigEndian.Uint16(src[6:8])),
	}
}

// PaddedLen rounds n up to the next multiple of the block size.
func PaddedLen(n int) int {
	return (n + BlockSize - 1) &^ (BlockSize - 1)
}
