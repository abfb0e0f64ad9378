// SPDX-License-Identifier: GPL-3.0-or-later

package detect

import (
	"errors"
	"fmt"

	"github.com/robgonnella/go-netdetect/internal/util"
)

const (
	DefaultStartRange = 2
	DefaultEndRange   = 255
	DefaultSubnet     = "192.168.1"
)

// ErrInvalidConfig returned when a scan configuration cannot produce
// valid probe targets
var ErrInvalidConfig = errors.New("invalid scan configuration")

// Config immutable description of a single scan. Use Builder to create one.
type Config struct {
	startOffset     int
	endOffset       int
	subnetPrefix    string
	deliverOnCaller bool
}

// StartOffset returns the first host offset probed
func (c *Config) StartOffset() int {
	return c.startOffset
}

// EndOffset returns the last host offset probed (inclusive)
func (c *Config) EndOffset() int {
	return c.endOffset
}

// SubnetPrefix returns the dotted 3-octet prefix, i.e. "192.168.1"
func (c *Config) SubnetPrefix() string {
	return c.subnetPrefix
}

// DeliverOnCaller returns true if the completion callback should be
// delivered through the engine's caller dispatcher
func (c *Config) DeliverOnCaller() bool {
	return c.deliverOnCaller
}

// TargetCount returns the number of hosts this configuration will probe
func (c *Config) TargetCount() int {
	if c.endOffset < c.startOffset {
		return 0
	}

	return c.endOffset - c.startOffset + 1
}

// Validate reports whether this configuration describes a probe-able range
func (c *Config) Validate() error {
	if !util.IsOctet(c.startOffset) {
		return fmt.Errorf("%w: start offset %d out of range", ErrInvalidConfig, c.startOffset)
	}

	if !util.IsOctet(c.endOffset) {
		return fmt.Errorf("%w: end offset %d out of range", ErrInvalidConfig, c.endOffset)
	}

	if c.endOffset < c.startOffset {
		return fmt.Errorf(
			"%w: end offset %d is before start offset %d",
			ErrInvalidConfig,
			c.endOffset,
			c.startOffset,
		)
	}

	if !util.IsSubnetPrefix(c.subnetPrefix) {
		return fmt.Errorf("%w: malformed subnet prefix %q", ErrInvalidConfig, c.subnetPrefix)
	}

	return nil
}

// Builder fluent builder for Config
type Builder struct {
	startOffset     int
	endOffset       int
	subnetPrefix    string
	deliverOnCaller bool
}

// NewBuilder returns a Builder populated with default values
func NewBuilder() *Builder {
	return &Builder{
		startOffset:  DefaultStartRange,
		endOffset:    DefaultEndRange,
		subnetPrefix: DefaultSubnet,
	}
}

// StartRange sets the first host offset
func (b *Builder) StartRange(start int) *Builder {
	b.startOffset = start
	return b
}

// EndRange sets the last host offset (inclusive)
func (b *Builder) EndRange(end int) *Builder {
	b.endOffset = end
	return b
}

// Subnet sets the dotted 3-octet subnet prefix
func (b *Builder) Subnet(prefix string) *Builder {
	b.subnetPrefix = prefix
	return b
}

// ObserveResultInMainThread sets whether results are delivered on the
// caller's designated goroutine instead of a background one
func (b *Builder) ObserveResultInMainThread(observe bool) *Builder {
	b.deliverOnCaller = observe
	return b
}

// Build returns a new Config. No validation is performed here, see
// Config.Validate.
func (b *Builder) Build() *Config {
	return &Config{
		startOffset:     b.startOffset,
		endOffset:       b.endOffset,
		subnetPrefix:    b.subnetPrefix,
		deliverOnCaller: b.deliverOnCaller,
	}
}
