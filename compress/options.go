package compress

import (
	"fmt"

	"github.com/arloliu/lzw/errs"
	"github.com/arloliu/lzw/format"
	"github.com/arloliu/lzw/internal/options"
)

// config holds the encoder settings.
type config struct {
	maxBits int
	policy  format.ResetPolicy
}

// Option configures a Writer or an LZWCodec.
type Option = options.Option[*config]

func defaultConfig() config {
	return config{
		maxBits: format.DefaultMaxBits,
		policy:  format.ResetOnFull,
	}
}

func newConfig(opts ...Option) (config, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return config{}, err
	}

	return cfg, nil
}

// WithMaxBits sets the width ceiling of the codes, from 9 to 16 bits.
//
// A larger ceiling lets the dictionary hold more strings (1<<maxBits codes)
// at the cost of wider codes and more memory on both sides.
func WithMaxBits(maxBits int) Option {
	return options.New(func(c *config) error {
		if maxBits < format.MinCodeBits || maxBits > format.MaxCodeBits {
			return fmt.Errorf("%w: %d (must be %d-%d)",
				errs.ErrInvalidMaxBits, maxBits, format.MinCodeBits, format.MaxCodeBits)
		}
		c.maxBits = maxBits

		return nil
	})
}

// WithResetPolicy sets what the encoder does when the dictionary is full.
func WithResetPolicy(policy format.ResetPolicy) Option {
	return options.New(func(c *config) error {
		if !policy.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidResetPolicy, policy)
		}
		c.policy = policy

		return nil
	})
}
