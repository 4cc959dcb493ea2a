package record

import (
	"encoding/binary"
	"math"
)

// EncodePutPayload builds the value stored in a PUT entry: the duration as an
// 8-byte little-endian IEEE-754 float followed by the raw value.
func EncodePutPayload(value []byte, duration float64) []byte {
	buf := make([]byte, DurationSize+len(value))
	binary.LittleEndian.PutUint64(buf[:DurationSize], math.Float64bits(duration))
	copy(buf[DurationSize:], value)
	return buf
}

// DecodePutPayload splits a PUT payload into its raw value and duration.
// The returned value aliases payload.
func DecodePutPayload(payload []byte) ([]byte, float64, error) {
	if len(payload) < DurationSize {
		return nil, 0, ErrShortPayload
	}
	duration := math.Float64frombits(binary.LittleEndian.Uint64(payload[:DurationSize]))
	return payload[DurationSize:], duration, nil
}
