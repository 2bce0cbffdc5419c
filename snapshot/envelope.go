package snapshot

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/stablevec/internal/conv"
	"github.com/hupe1980/stablevec/internal/hash"
)

const (
	magic         = "SVSN"
	formatVersion = 1

	// magic + version + compression + codec name length
	fixedHeaderSize = 4 + 2 + 1 + 1
	// raw length + payload length
	lengthsSize  = 8 + 8
	checksumSize = 4

	// maxRawSize bounds the uncompressed payload of a single snapshot.
	maxRawSize = 1<<31 - 1

	// An LZ4 block expands at most by a factor of 255 plus a small constant.
	lz4MaxRatio    = 255
	lz4MaxOverhead = 16
)

// header is the decoded metadata of an envelope.
type header struct {
	Version     uint16
	Compression Compression
	Codec       string
	RawSize     int
}

// seal wraps an encoded payload into an envelope.
func seal(codecName string, c Compression, raw []byte) ([]byte, error) {
	nameLen, err := conv.IntToUint8(len(codecName))
	if err != nil {
		return nil, fmt.Errorf("snapshot: codec name %q too long: %w", codecName, err)
	}

	if len(raw) > maxRawSize {
		return nil, fmt.Errorf("snapshot: encoded state is %d bytes, limit is %d", len(raw), maxRawSize)
	}

	payload, used, err := compress(raw, c)
	if err != nil {
		return nil, err
	}

	rawLen, err := conv.IntToUint64(len(raw))
	if err != nil {
		return nil, err
	}
	payloadLen, err := conv.IntToUint64(len(payload))
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, fixedHeaderSize+len(codecName)+lengthsSize+len(payload)+checksumSize)
	buf = append(buf, magic...)
	buf = binary.LittleEndian.AppendUint16(buf, formatVersion)
	buf = append(buf, byte(used), nameLen)
	buf = append(buf, codecName...)
	buf = binary.LittleEndian.AppendUint64(buf, rawLen)
	buf = binary.LittleEndian.AppendUint64(buf, payloadLen)
	buf = append(buf, payload...)
	buf = binary.LittleEndian.AppendUint32(buf, hash.CRC32C(buf))
	return buf, nil
}

// open validates an envelope and returns its header and uncompressed payload.
func open(data []byte) (header, []byte, error) {
	var h header

	if len(data) < fixedHeaderSize+lengthsSize+checksumSize {
		return h, nil, fmt.Errorf("%w: %d bytes is shorter than the minimum envelope", ErrCorrupt, len(data))
	}
	if string(data[:4]) != magic {
		return h, nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[:4])
	}

	h.Version = binary.LittleEndian.Uint16(data[4:])
	if h.Version != formatVersion {
		return h, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	body, sum := data[:len(data)-checksumSize], binary.LittleEndian.Uint32(data[len(data)-checksumSize:])
	if got := hash.CRC32C(body); got != sum {
		return h, nil, fmt.Errorf("%w: checksum mismatch (stored %08x, computed %08x)", ErrCorrupt, sum, got)
	}

	h.Compression = Compression(data[6])
	nameLen := int(data[7])
	off := fixedHeaderSize
	if len(body) < off+nameLen+lengthsSize {
		return h, nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	h.Codec = string(body[off : off+nameLen])
	off += nameLen

	rawSize, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(body[off:]))
	if err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	payloadSize, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(body[off+8:]))
	if err != nil {
		return h, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	off += lengthsSize
	h.RawSize = rawSize

	if payloadSize != len(body)-off {
		return h, nil, fmt.Errorf("%w: payload length %d, %d bytes present", ErrCorrupt, payloadSize, len(body)-off)
	}
	if err := checkRawSize(h.Compression, rawSize, payloadSize); err != nil {
		return h, nil, err
	}

	raw, err := decompress(body[off:], h.Compression, rawSize)
	if err != nil {
		return h, nil, err
	}
	return h, raw, nil
}

// checkRawSize rejects raw lengths the payload cannot decompress to, so that
// a forged header never drives an allocation.
func checkRawSize(c Compression, rawSize, payloadSize int) error {
	if rawSize > maxRawSize {
		return fmt.Errorf("%w: raw length %d exceeds limit %d", ErrCorrupt, rawSize, maxRawSize)
	}
	if c == CompressionLZ4 && rawSize > lz4MaxRatio*payloadSize+lz4MaxOverhead {
		return fmt.Errorf("%w: raw length %d impossible for %d lz4 bytes", ErrCorrupt, rawSize, payloadSize)
	}
	return nil
}
