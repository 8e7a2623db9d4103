// Package stream implements the bounded receive buffer and the incremental
// frame parser. Bytes arrive in arbitrary fragments through Feed; Inspect
// classifies the head of the buffer without consuming anything; corrupted
// bytes ("fuzz") are skipped by scanning forward to the next sync marker.
package stream
