package record

import "hash/crc32"

var crcTable = crc32.MakeTable(crc32.IEEE)

// Checksum16 is the record checksum: a zero-seeded CRC-32 (IEEE polynomial,
// no final inversion) folded to 16 bits.
func Checksum16(p []byte) uint16 {
	// crc32.Update inverts on entry and exit; pre-invert to get a zero seed.
	c := ^crc32.Update(^uint32(0), crcTable, p)
	return uint16(c ^ c>>16)
}
