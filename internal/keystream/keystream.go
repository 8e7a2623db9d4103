package keystream

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"strconv"
)

const (
	// KeySize is the AES-256 key length in bytes. Shorter keys are
	// zero-padded on the right; longer keys are truncated.
	KeySize = 32

	// IVSize is the initialization vector length, one cipher block.
	IVSize = aes.BlockSize
)

// Cipher is the cryptographic half of a session: a keyed block cipher plus
// the CTR keystream position. It is not safe for concurrent use; encode and
// decode on the same Cipher must be externally serialized because both
// consume the shared keystream.
type Cipher struct {
	block cipher.Block
	ctr   cipher.Stream
	nonce int64
}

// New returns a Cipher keyed with key and armed with nonce.
func New(key []byte, nonce int64) (*Cipher, error) {
	c := &Cipher{nonce: nonce}

	if err := c.SetKey(key); err != nil {
		return nil, err
	}

	return c, nil
}

// SetKey re-keys the cipher, normalizing key to KeySize bytes, and rewinds
// the keystream to the start of the current nonce.
func (c *Cipher) SetKey(key []byte) error {
	normalized := make([]byte, KeySize)
	copy(normalized, key)

	block, err := aes.NewCipher(normalized)
	if err != nil {
		return fmt.Errorf("initializing cipher: %w", err)
	}

	c.block = block
	c.ResetIV()

	return nil
}

// Nonce returns the current nonce.
func (c *Cipher) Nonce() int64 {
	return c.nonce
}

// SetNonce installs a caller-supplied nonce and rewinds the keystream.
func (c *Cipher) SetNonce(nonce int64) {
	c.nonce = nonce
	c.ResetIV()
}

// ResetIV recomputes the IV from the current nonce and restarts the CTR
// keystream from it. The IV is the decimal text of the nonce rendered into a
// zero-filled block, truncated to IVSize-1 characters, so both sides of a
// conversation derive identical keystreams from a shared nonce.
func (c *Cipher) ResetIV() {
	var iv [IVSize]byte

	text := strconv.FormatInt(c.nonce, 10)
	if len(text) > IVSize-1 {
		text = text[:IVSize-1]
	}

	copy(iv[:], text)

	c.ctr = cipher.NewCTR(c.block, iv[:])
}

// Transform encrypts or decrypts buf in place, advancing the keystream.
// CTR mode is symmetric, so the same call serves both directions. len(buf)
// must be a multiple of the block size.
func (c *Cipher) Transform(buf []byte) error {
	if len(buf)%IVSize != 0 {
		return fmt.Errorf("transform length %d is not a multiple of the block size", len(buf))
	}

	c.ctr.XORKeyStream(buf, buf)

	return nil
}
