// Package hash provides the CRC32-Castagnoli checksum used by snapshot envelopes.
//
// Go's hash/crc32 uses SSE4.2 / ARM CRC instructions when available.
package hash
