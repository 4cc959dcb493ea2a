package record

import "errors"

var (
	// ErrEntryTooLarge is returned when a key or value overflows its 32-bit length prefix
	ErrEntryTooLarge = errors.New("record: key or value too large")
	// ErrShortPayload is returned when a PUT payload is too small to carry a duration
	ErrShortPayload = errors.New("record: put payload shorter than duration prefix")
)
