package snapshot

import "errors"

var (
	// ErrCorrupt is returned when an envelope fails structural or checksum validation.
	ErrCorrupt = errors.New("snapshot: corrupt envelope")
	// ErrUnsupportedVersion is returned for envelopes written by a newer format version.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrUnknownCodec is returned when the envelope names a codec that is not available.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
	// ErrNoSnapshot is returned by Latest when no generation exists under a prefix.
	ErrNoSnapshot = errors.New("snapshot: no snapshot found")
)
