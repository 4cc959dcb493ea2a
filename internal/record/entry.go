package record

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/MikhailWahib/litespeed/internal/checksum"
)

// EntryType represents the kind of mutation a log entry records
type EntryType byte

const (
	// PutEntry records a new version of a key
	PutEntry EntryType = 1
	// DeleteEntry records the removal of a key's whole history
	DeleteEntry EntryType = 2
)

func (t EntryType) String() string {
	switch t {
	case PutEntry:
		return "PUT"
	case DeleteEntry:
		return "DELETE"
	default:
		return fmt.Sprintf("EntryType(%d)", byte(t))
	}
}

// Entry is one decoded log entry
type Entry struct {
	Type      EntryType
	Key       []byte
	Value     []byte
	Timestamp int64
}

// Header is the fixed-size part of an entry between the checksum and the key
type Header struct {
	Timestamp int64
	KeyLen    uint32
	ValueLen  uint32
	Type      EntryType
}

// BodyLen returns the number of key and value bytes that follow the header.
func (h Header) BodyLen() int64 {
	return int64(h.KeyLen) + int64(h.ValueLen)
}

// MaxFieldLen is the largest key or value a 32-bit length prefix can frame.
const MaxFieldLen = math.MaxUint32

// CheckLengths reports ErrEntryTooLarge if a key or value cannot be framed.
func CheckLengths(keyLen, valueLen int64) error {
	if keyLen > MaxFieldLen || valueLen > MaxFieldLen {
		return ErrEntryTooLarge
	}
	return nil
}

// EncodedSize returns the full on-disk size of an entry with the given key and value.
func EncodedSize(keyLen, valueLen int) int {
	return checksum.Size + HeaderSize + keyLen + valueLen
}

// EncodeEntry serializes e into its on-disk form. Callers must check the
// key and value lengths with CheckLengths first.
// Format: [4 CRC][4 TsLow][4 TsHigh][4 KeyLen][4 ValueLen][1 Type][Key][Value]
// All integers are little-endian. The CRC covers every byte after itself.
func EncodeEntry(e Entry) []byte {
	keyLen := len(e.Key)
	valLen := len(e.Value)

	buf := make([]byte, EncodedSize(keyLen, valLen))

	ts := uint64(e.Timestamp)
	h := buf[checksum.Size:]
	binary.LittleEndian.PutUint32(h[0:4], uint32(ts))
	binary.LittleEndian.PutUint32(h[4:8], uint32(ts>>32))
	binary.LittleEndian.PutUint32(h[8:12], uint32(keyLen))
	binary.LittleEndian.PutUint32(h[12:16], uint32(valLen))
	h[16] = byte(e.Type)

	copy(h[HeaderSize:], e.Key)
	copy(h[HeaderSize+keyLen:], e.Value)

	binary.LittleEndian.PutUint32(buf[:checksum.Size], checksum.Calculate(h))
	return buf
}

// DecodeHeader parses the fixed header that follows the checksum.
// buf must hold at least HeaderSize bytes.
func DecodeHeader(buf []byte) Header {
	low := binary.LittleEndian.Uint32(buf[0:4])
	high := binary.LittleEndian.Uint32(buf[4:8])

	return Header{
		Timestamp: int64(uint64(high)<<32 | uint64(low)),
		KeyLen:    binary.LittleEndian.Uint32(buf[8:12]),
		ValueLen:  binary.LittleEndian.Uint32(buf[12:16]),
		Type:      EntryType(buf[16]),
	}
}

// VerifyEntry reports whether stored matches the checksum of header followed by body.
func VerifyEntry(stored uint32, header, body []byte) bool {
	return checksum.Update(checksum.Calculate(header), body) == stored
}
