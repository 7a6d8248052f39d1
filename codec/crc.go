package codec

import (
	"github.com/klauspost/crc32"
)

// crcTable is the IEEE polynomial table, computed once and accelerated by
// SSE4.2/ARM64 CRC instructions when available via klauspost/crc32.
var crcTable = crc32.MakeTable(crc32.IEEE)

// Checksum returns the CRC-32 (IEEE) of b.
func Checksum(b []byte) uint32 {
	return crc32.Checksum(b, crcTable)
}
