// Package frame implements the wire layout of sealed packets: the fixed
// 8-byte preamble, the PKCS#7-style body padding, and the CRC16 integrity
// checksum computed over header and ciphertext.
//
// All multi-byte preamble fields are big-endian, independent of host byte
// order. A frame on the wire is:
//
//	[sync][version][crc16][totalLen][hdrLen][header...][encrypted padded body...]
//
// The package is pure layout and arithmetic; it performs no encryption and
// holds no state.
package frame
