// Package record provides the on-disk log entry codec and the in-memory
// versioned record types shared by the WAL and the engine.
package record

// TimestampSize is the size in bytes of the split timestamp (low then high word)
const TimestampSize = 8

// LengthSize is the size in bytes used to store length prefixes
const LengthSize = 4

// EntryTypeSize is the size in bytes used to store an entry type marker
const EntryTypeSize = 1

// HeaderSize is the size of the entry header that follows the checksum
// (timestamp + key length + value length + type)
const HeaderSize = TimestampSize + (2 * LengthSize) + EntryTypeSize // 17 bytes

// DurationSize is the size of the duration prefix carried by PUT payloads
const DurationSize = 8
