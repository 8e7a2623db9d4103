// Package keystream owns the symmetric cryptographic state of a session: the
// AES-256 key schedule, the signed nonce, and the CTR keystream derived from
// them. Both directions of a conversation must share the key and nonce out of
// band; the package offers no handshake or key exchange.
package keystream
