// Package seal provides a transport-agnostic secure record layer. A Session
// turns application packets into authenticated, AES-256-CTR encrypted frames
// (Encode) and turns a raw, possibly fragmented and possibly corrupted byte
// stream back into packets (Feed + Decode). It knows nothing about the
// transport: bytes are pushed in and payloads are pulled out, synchronously.
//
// A Session is not a secure-channel protocol. There is no handshake, no key
// exchange, and no peer authentication; both sides must agree on the key and
// nonce out of band. Reusing one nonce under the same key for two different
// plaintexts forfeits confidentiality, and nothing here guards against it.
//
// Each frame carries an optional application-defined header (for example a
// key lookup hint). Headers are covered by the integrity checksum but are
// not encrypted.
package seal
