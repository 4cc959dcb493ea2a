// Package checksum computes the CRC-32 used to guard log entries.
//
// The polynomial is the reflected IEEE polynomial 0xEDB88320 with a
// precomputed 256-entry table, an all-ones initial value and a final
// complement, so the output is identical on every platform.
package checksum

import "hash/crc32"

// Size is the number of bytes a checksum occupies on disk.
const Size = 4

var table = crc32.MakeTable(crc32.IEEE)

// Calculate returns the CRC-32 of b.
func Calculate(b []byte) uint32 {
	return crc32.Checksum(b, table)
}

// Update returns the CRC-32 of the bytes already folded into crc followed by b.
// Update(Calculate(a), b) equals Calculate(append(a, b...)).
func Update(crc uint32, b []byte) uint32 {
	return crc32.Update(crc, table, b)
}
