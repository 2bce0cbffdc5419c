package snapshot

import (
	"github.com/hupe1980/stablevec"
	"github.com/hupe1980/stablevec/codec"
	"golang.org/x/time/rate"
)

type options struct {
	codec       codec.Codec
	compression Compression
	limiter     *rate.Limiter
	logger      *stablevec.Logger
	vecOpts     []stablevec.Option
}

// Option configures snapshot operations.
type Option func(*options)

// WithCodec sets the element codec used by Encode and Save.
// Decoding always uses the codec named in the envelope; a custom codec
// passed here is used when its name matches.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression sets the payload compression. Default: CompressionNone.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithRateLimit throttles blobstore traffic of Save and Load to
// bytesPerSec. Zero or negative disables throttling.
func WithRateLimit(bytesPerSec int) Option {
	return func(o *options) {
		if bytesPerSec <= 0 {
			o.limiter = nil
			return
		}
		o.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
	}
}

// WithLogger sets the logger for Save, Load and Prune.
func WithLogger(logger *stablevec.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = stablevec.NoopLogger()
		}
		o.logger = logger
	}
}

// WithVecOptions passes options to the vector restored by Decode and Load,
// e.g. a free-list policy or a metrics collector.
func WithVecOptions(opts ...stablevec.Option) Option {
	return func(o *options) {
		o.vecOpts = append(o.vecOpts, opts...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:       codec.Default,
		compression: CompressionNone,
		logger:      stablevec.NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// resolveCodec picks the codec for an envelope written with name.
func (o *options) resolveCodec(name string) (codec.Codec, bool) {
	if o.codec != nil && o.codec.Name() == name {
		return o.codec, true
	}
	return codec.ByName(name)
}
