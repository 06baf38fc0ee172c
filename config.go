package overflow

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultReserve is the width kept free for an overflow indicator.
	DefaultReserve = 40.0

	// DefaultRows is the number of rows items may fill.
	DefaultRows = 1

	// ResizeEpsilon is how far an item's width may drift before its cached
	// measurement is thrown away.
	ResizeEpsilon = 1.0
)

// Config controls one engine. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	// Reserve is the width withheld on the last row when items overflow.
	Reserve float64 `toml:"reserve"`

	// Rows is how many rows items may fill. Values below 1 mean 1.
	Rows int `toml:"rows"`

	// EvictLargest hides the widest items first instead of the last ones.
	EvictLargest bool `toml:"evict_largest"`

	// Gap overrides gap inference when set.
	Gap *float64 `toml:"gap,omitempty"`

	// PinTarget keeps the item that holds it visible. It is matched against
	// item refs, or through the host's PinResolver.
	PinTarget any `toml:"-"`

	// PinMarker pins every item it returns true for.
	PinMarker func(ItemRef) bool `toml:"-"`
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Reserve: DefaultReserve,
		Rows:    DefaultRows,
	}
}

// normalize clamps out-of-range values to the nearest valid one.
func (c Config) normalize() Config {
	if c.Reserve < 0 {
		c.Reserve = 0
	}
	if c.Rows < 1 {
		c.Rows = 1
	}
	if c.Gap != nil && *c.Gap < 0 {
		zero := 0.0
		c.Gap = &zero
	}
	return c
}

// equal reports whether two configs would produce the same assignment.
// Functions cannot be compared, so pin markers only compare by presence;
// UpdateConfig uses setsMarker to catch a replaced marker.
func (c Config) equal(o Config) bool {
	if c.Reserve != o.Reserve || c.Rows != o.Rows || c.EvictLargest != o.EvictLargest {
		return false
	}
	if (c.Gap == nil) != (o.Gap == nil) {
		return false
	}
	if c.Gap != nil && *c.Gap != *o.Gap {
		return false
	}
	if !sameTarget(c.PinTarget, o.PinTarget) {
		return false
	}
	return (c.PinMarker == nil) == (o.PinMarker == nil)
}

// sameTarget compares two pin targets with ==. Targets that cannot be
// compared, such as slices or maps, are never the same.
func sameTarget(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !isComparable(a) || !isComparable(b) {
		return false
	}
	return a == b
}

// isComparable reports whether v can be used with == without panicking.
func isComparable(v any) bool {
	return v == nil || reflect.ValueOf(v).Comparable()
}

// setsMarker reports whether opts install a pin marker.
func setsMarker(opts []Option) bool {
	var c Config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c.PinMarker != nil
}

// Option changes one part of a Config.
type Option func(*Config)

// WithReserve sets the overflow indicator width. Negative values become 0.
func WithReserve(w float64) Option {
	return func(c *Config) {
		c.Reserve = w
	}
}

// WithRows sets how many rows items may fill. Values below 1 become 1.
func WithRows(n int) Option {
	return func(c *Config) {
		c.Rows = n
	}
}

// WithEvictLargest toggles size-based eviction.
func WithEvictLargest(on bool) Option {
	return func(c *Config) {
		c.EvictLargest = on
	}
}

// WithGap fixes the spacing between items and disables gap inference.
func WithGap(g float64) Option {
	return func(c *Config) {
		c.Gap = &g
	}
}

// WithoutGap clears a gap override so spacing is inferred again.
func WithoutGap() Option {
	return func(c *Config) {
		c.Gap = nil
	}
}

// WithPinTarget keeps the item holding target visible. nil clears it.
// Without a PinResolver the target is matched with ==, so a target that
// cannot be compared (a slice, a map) pins nothing.
func WithPinTarget(target any) Option {
	return func(c *Config) {
		c.PinTarget = target
	}
}

// WithPinMarker pins every item fn returns true for. nil clears it.
// Passing a marker to UpdateConfig always schedules a recomputation.
func WithPinMarker(fn func(ItemRef) bool) Option {
	return func(c *Config) {
		c.PinMarker = fn
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// apply returns base with opts applied and clamped.
func (c Config) apply(opts ...Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c.normalize()
}

// ParseConfig decodes a TOML document on top of DefaultConfig.
//
//	reserve = 24
//	rows = 2
//	evict_largest = true
//	gap = 4
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg.normalize(), nil
}

// LoadConfig reads a TOML config file. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the serializable part of cfg to path as TOML.
func SaveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg.normalize())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
