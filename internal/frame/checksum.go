package frame

// checksumSeed and checksumPoly parameterize the bit-wise CRC16 (a crc16dnp
// variant with a non-zero seed). The seed keeps short all-zero inputs from
// producing an all-zero checksum.
const (
	checksumSeed = 0x1d0f
	checksumPoly = 0xa6bc
)

// Checksum computes the 16-bit CRC over data. A nil slice yields the all-ones
// value 0xffff so that the absent/garbage case can never validate against a
// genuine checksum.
func Checksum(data []byte) uint16 {
	if data == nil {
		return 0xffff
	}

	crc := ^uint16(checksumSeed)

	for _, b := range data {
		crc ^= uint16(b)

		for range 8 {
			if crc&1 != 0 {
				crc = crc>>1 ^ checksumPoly
			} else {
				crc >>= 1
			}
		}
	}

	return ^crc
}
