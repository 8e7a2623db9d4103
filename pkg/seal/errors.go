package seal

import "errors"

var (
	// ErrNoData is returned by Decode when no complete, valid frame is
	// available, or when the header validator declined the frame.
	ErrNoData = errors.New("no packet available")

	// ErrEmptyPayload is returned by Encode for zero-length payloads: the
	// wire format requires at least one cipher block of body, so an empty
	// payload cannot be framed.
	ErrEmptyPayload = errors.New("empty payload")

	// ErrTooLarge is returned by Encode when the framed size would exceed
	// the session's maximum packet size or the protocol limit.
	ErrTooLarge = errors.New("packet exceeds maximum size")

	// ErrInvalidCapacity is returned by New for a non-positive maximum
	// packet size.
	ErrInvalidCapacity = errors.New("maximum packet size must be positive")
)
