package seal

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/idelchi/goseal/internal/frame"
	"github.com/idelchi/goseal/internal/keystream"
	"github.com/idelchi/goseal/internal/stream"
)

// KeySize is the session key length in bytes. SetKey zero-pads shorter keys
// on the right and truncates longer ones.
const KeySize = keystream.KeySize

// HeaderValidator lets a higher layer inspect the authenticated, unencrypted
// header of a frame before its body is decrypted. Returning false consumes
// the frame without producing a payload, so a peer sending unrecognized
// headers cannot desynchronize the stream. The validator may call SetNonce
// on the session, e.g. when the header carries nonce material.
type HeaderValidator func(header []byte) bool

// Session is one logical secured conversation: a key schedule, the current
// nonce, and the receive buffer. Encode and Decode are independent
// operations except that both consume the keystream of the current nonce, so
// a Session must not be used concurrently without external locking.
type Session struct {
	cipher *keystream.Cipher
	in     *stream.Buffer
	random io.Reader
	max    int
}

// New returns a Session with the given maximum packet size, rounded up to a
// block multiple. The session draws a random key and nonce so it is usable
// immediately; call SetKey and SetNonce to join an existing conversation.
func New(maxPacketSize int) (*Session, error) {
	return NewWithRand(maxPacketSize, rand.Reader)
}

// NewWithRand is New with an explicit randomness source for key and nonce
// generation. The source's quality is the caller's responsibility.
func NewWithRand(maxPacketSize int, random io.Reader) (*Session, error) {
	if maxPacketSize <= 0 {
		return nil, ErrInvalidCapacity
	}

	size := frame.PaddedLen(maxPacketSize)

	session := &Session{
		in:     stream.New(size),
		random: random,
		max:    size,
	}

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(random, key); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	cipher, err := keystream.New(key, 0)
	if err != nil {
		return nil, err
	}

	session.cipher = cipher

	if err := session.NewNonce(); err != nil {
		return nil, err
	}

	return session, nil
}

// SetKey replaces the session key, resetting the key schedule. Future
// Encode and Decode calls use the new key.
func (s *Session) SetKey(key []byte) error {
	return s.cipher.SetKey(key)
}

// Nonce returns the current nonce.
func (s *Session) Nonce() int64 {
	return s.cipher.Nonce()
}

// SetNonce installs a caller-supplied nonce. Both sides of a conversation
// must install the same nonce before exchanging a message.
func (s *Session) SetNonce(nonce int64) {
	s.cipher.SetNonce(nonce)
}

// NewNonce draws a fresh random non-negative nonce from the session's
// randomness source and installs it.
func (s *Session) NewNonce() error {
	var b [8]byte

	if _, err := io.ReadFull(s.random, b[:]); err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}

	s.cipher.SetNonce(int64(binary.BigEndian.Uint64(b[:]) >> 1))

	return nil
}

// Encode frames header and data into one encrypted packet:
//
//	[preamble][header][AES-256-CTR ciphertext of padded data]
//
// The keystream is rewound to the current nonce once at the start of the
// call. The framed size (preamble + header + padded data) must fit the
// session's maximum packet size.
func (s *Session) Encode(header, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	bodyLen := frame.PaddedLen(len(data))

	totalLen := frame.PreambleSize + len(header) + bodyLen
	if totalLen > s.max || totalLen > frame.MaxFrameSize {
		return nil, ErrTooLarge
	}

	out := make([]byte, totalLen)
	copy(out[frame.PreambleSize:], header)

	bodyStart := frame.PreambleSize + len(header)
	copy(out[bodyStart:], data)

	// Pad in place; the output buffer already has room for the full body.
	frame.Pad(out[bodyStart : bodyStart+len(data) : totalLen])

	s.cipher.ResetIV()

	if err := s.cipher.Transform(out[bodyStart:]); err != nil {
		return nil, err
	}

	frame.PutPreamble(out, frame.Preamble{
		Checksum: frame.Checksum(out[frame.PreambleSize:]),
		TotalLen: totalLen,
		HdrLen:   len(header),
	})

	return out, nil
}

// Feed pushes received transport bytes into the session's stream buffer.
// The append is all-or-nothing: if p does not fit in the remaining space,
// nothing is buffered and Feed reports false; drain with Decode first.
func (s *Session) Feed(p []byte) bool {
	return s.in.Feed(p)
}

// Decode extracts the packet at the head of the stream buffer, if any.
//
// It returns ErrNoData when no complete valid frame has arrived yet; feed
// more bytes and try again. Corruption is handled internally: fuzz is
// skipped, never surfaced as an error.
//
// If validate is non-nil and returns false, or if the frame's body is not
// block-aligned, the frame is consumed without producing a payload. In every
// terminal case the frame's bytes leave the buffer, so multiple frames
// queued by one Feed drain one Decode call at a time.
func (s *Session) Decode(validate HeaderValidator) ([]byte, error) {
	state, hdrLen, totalLen := s.in.Inspect()

	if state == stream.Fuzz {
		s.in.Recover()

		state, hdrLen, totalLen = s.in.Inspect()
	}

	if state != stream.Ready {
		return nil, ErrNoData
	}

	head := s.in.Head()
	header := head[frame.PreambleSize : frame.PreambleSize+hdrLen]
	body := head[frame.PreambleSize+hdrLen : totalLen]

	// A clean parse with a misaligned body is treated like corruption:
	// consume the frame, surface nothing.
	ok := len(body)%frame.BlockSize == 0

	if ok && validate != nil {
		ok = validate(header)
	}

	var payload []byte

	if ok {
		s.cipher.ResetIV()

		payload = make([]byte, len(body))
		copy(payload, body)

		if err := s.cipher.Transform(payload); err != nil {
			return nil, err
		}

		payload = frame.Unpad(payload)
	}

	s.in.Consume(totalLen)

	if payload == nil {
		return nil, ErrNoData
	}

	return payload, nil
}

// StreamLen returns the number of bytes waiting in the stream buffer.
func (s *Session) StreamLen() int { return s.in.Len() }

// StreamLeft returns the free space remaining in the stream buffer.
func (s *Session) StreamLeft() int { return s.in.Left() }

// StreamCap returns the fixed capacity of the stream buffer, which equals
// the maximum packet size.
func (s *Session) StreamCap() int { return s.in.Cap() }

// Flush discards everything in the stream buffer.
func (s *Session) Flush() { s.in.Flush() }
