package snapshot

import (
	"context"
	"fmt"

	"github.com/hupe1980/stablevec"
	"golang.org/x/time/rate"
)

// Encode serializes v into a snapshot envelope.
func Encode[I stablevec.Index, T any](v *stablevec.OptionVec[I, T], optFns ...Option) ([]byte, error) {
	o := applyOptions(optFns)

	raw, err := o.codec.Marshal(v.State())
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode state with %s: %w", o.codec.Name(), err)
	}
	return seal(o.codec.Name(), o.compression, raw)
}

// Decode restores a vector from a snapshot envelope.
//
// It returns ErrCorrupt, ErrUnsupportedVersion or ErrUnknownCodec for a bad
// envelope and stablevec.ErrInvalidState for a well-formed envelope whose
// free list does not match its holes.
func Decode[I stablevec.Index, T any](data []byte, optFns ...Option) (*stablevec.OptionVec[I, T], error) {
	o := applyOptions(optFns)
	return decode[I, T](data, &o)
}

func decode[I stablevec.Index, T any](data []byte, o *options) (*stablevec.OptionVec[I, T], error) {
	h, raw, err := open(data)
	if err != nil {
		return nil, err
	}

	c, ok := o.resolveCodec(h.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, h.Codec)
	}

	var st stablevec.State[T]
	if err := c.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("snapshot: decode state with %s: %w", c.Name(), err)
	}
	return stablevec.FromState[I](st, o.vecOpts...)
}

// Save encodes v and writes it to store under name.
func Save[I stablevec.Index, T any](ctx context.Context, store BlobStore, name string, v *stablevec.OptionVec[I, T], optFns ...Option) (err error) {
	o := applyOptions(optFns)

	var size int
	defer func() { o.logger.LogSnapshot(ctx, "save", name, size, err) }()

	data, err := Encode(v, optFns...)
	if err != nil {
		return err
	}
	size = len(data)

	if err = throttle(ctx, o.limiter, size); err != nil {
		return err
	}
	if err = store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("snapshot: put %q: %w", name, err)
	}
	return nil
}

// Load reads the snapshot name from store and restores the vector.
func Load[I stablevec.Index, T any](ctx context.Context, store BlobStore, name string, optFns ...Option) (v *stablevec.OptionVec[I, T], err error) {
	o := applyOptions(optFns)

	var size int
	defer func() { o.logger.LogSnapshot(ctx, "load", name, size, err) }()

	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("snapshot: get %q: %w", name, err)
	}
	size = len(data)

	if err = throttle(ctx, o.limiter, size); err != nil {
		return nil, err
	}
	return decode[I, T](data, &o)
}

// throttle waits until the limiter admits n bytes. Requests larger than the
// burst are split, since WaitN rejects them.
func throttle(ctx context.Context, limiter *rate.Limiter, n int) error {
	if limiter == nil {
		return nil
	}
	burst := limiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
