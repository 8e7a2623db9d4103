package keystream_test

import (
	"bytes"
	"testing"

	"github.com/idelchi/goseal/internal/keystream"
)

func newCipher(t *testing.T, key []byte, nonce int64) *keystream.Cipher {
	t.Helper()

	c, err := keystream.New(key, nonce)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return c
}

// TestTransformSymmetry verifies that transforming twice from the same
// keystream position recovers the original plaintext.
func TestTransformSymmetry(t *testing.T) {
	t.Parallel()

	c := newCipher(t, []byte("0123456789abcdef0123456789abcdef"), 42)

	original := bytes.Repeat([]byte{0x5a}, 48)
	buf := append([]byte(nil), original...)

	if err := c.Transform(buf); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if bytes.Equal(buf, original) {
		t.Fatal("Transform left plaintext unchanged")
	}

	c.ResetIV()

	if err := c.Transform(buf); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if !bytes.Equal(buf, original) {
		t.Error("double transform did not recover plaintext")
	}
}

// TestSharedNonceAgreement verifies that two ciphers keyed and armed
// identically produce identical keystreams.
func TestSharedNonceAgreement(t *testing.T) {
	t.Parallel()

	key := []byte("0123456789abcdef0123456789abcdef")

	a := newCipher(t, key, 1234)
	b := newCipher(t, key, 1234)

	bufA := bytes.Repeat([]byte{0x41}, 32)
	bufB := bytes.Repeat([]byte{0x41}, 32)

	if err := a.Transform(bufA); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if err := b.Transform(bufB); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if !bytes.Equal(bufA, bufB) {
		t.Error("identically armed ciphers diverged")
	}
}

// TestNonceSeparation verifies that different nonces yield different
// keystreams under the same key.
func TestNonceSeparation(t *testing.T) {
	t.Parallel()

	key := []byte("0123456789abcdef0123456789abcdef")

	a := newCipher(t, key, 1)
	b := newCipher(t, key, 2)

	bufA := make([]byte, 16)
	bufB := make([]byte, 16)

	if err := a.Transform(bufA); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if err := b.Transform(bufB); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if bytes.Equal(bufA, bufB) {
		t.Error("distinct nonces produced the same keystream")
	}
}

// TestSetKeyNormalization verifies that a short key and its zero-padded
// equivalent key the cipher identically.
func TestSetKeyNormalization(t *testing.T) {
	t.Parallel()

	short := []byte("abc")
	padded := make([]byte, keystream.KeySize)
	copy(padded, short)

	a := newCipher(t, short, 7)
	b := newCipher(t, padded, 7)

	bufA := make([]byte, 16)
	bufB := make([]byte, 16)

	if err := a.Transform(bufA); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if err := b.Transform(bufB); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if !bytes.Equal(bufA, bufB) {
		t.Error("short key and zero-padded key diverged")
	}
}

// TestTransformAlignment verifies that partial blocks are rejected.
func TestTransformAlignment(t *testing.T) {
	t.Parallel()

	c := newCipher(t, []byte("key"), 0)

	if err := c.Transform(make([]byte, 15)); err == nil {
		t.Error("Transform accepted a partial block")
	}
}

// TestSetNonceRewinds verifies that re-arming with the same nonce rewinds
// the keystream so the next transform starts from the beginning again.
func TestSetNonceRewinds(t *testing.T) {
	t.Parallel()

	c := newCipher(t, []byte("key"), 99)

	first := make([]byte, 16)
	if err := c.Transform(first); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	// Advance the keystream, then rewind.
	if err := c.Transform(make([]byte, 16)); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	c.SetNonce(99)

	if c.Nonce() != 99 {
		t.Fatalf("Nonce = %d, want 99", c.Nonce())
	}

	second := make([]byte, 16)
	if err := c.Transform(second); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("SetNonce did not rewind the keystream")
	}
}

// TestNonceTextTruncation verifies that nonces sharing their first fifteen
// decimal characters derive the same IV. The IV carries at most fifteen
// characters of nonce text, so very large nonces collide past that point.
func TestNonceTextTruncation(t *testing.T) {
	t.Parallel()

	key := []byte("0123456789abcdef0123456789abcdef")

	// Both render to "-12345678901234" after truncation.
	a := newCipher(t, key, -123456789012345678)
	b := newCipher(t, key, -123456789012345999)

	bufA := make([]byte, 16)
	bufB := make([]byte, 16)

	if err := a.Transform(bufA); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if err := b.Transform(bufB); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if !bytes.Equal(bufA, bufB) {
		t.Error("nonces with identical truncated text diverged")
	}
}
