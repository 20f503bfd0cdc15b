// Package idgen provides identifier providers for the layout parser.
package idgen

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/mcncl/navlayout/internal/config"
	"github.com/mcncl/navlayout/internal/errors"
	"github.com/mcncl/navlayout/internal/layout"
)

// CounterProvider yields "<prefix><sep><n>" with one counter shared by
// every prefix, starting at 1. Safe for concurrent use.
type CounterProvider struct {
	sep  string
	next atomic.Uint64
}

// NewCounterProvider creates a CounterProvider.
func NewCounterProvider(sep string) *CounterProvider {
	return &CounterProvider{sep: sep}
}

// Generate implements layout.IdentifierProvider.
func (c *CounterProvider) Generate(prefix string) string {
	return prefix + c.sep + strconv.FormatUint(c.next.Add(1), 10)
}

// UUIDProvider yields "<prefix><sep><random uuid>".
type UUIDProvider struct {
	sep string
}

// NewUUIDProvider creates a UUIDProvider.
func NewUUIDProvider(sep string) *UUIDProvider {
	return &UUIDProvider{sep: sep}
}

// Generate implements layout.IdentifierProvider.
func (u *UUIDProvider) Generate(prefix string) string {
	return prefix + u.sep + uuid.NewString()
}

// StaticProvider yields "<prefix><sep><suffix>" every time. Ids repeat, so
// it is only fit for fixtures and golden output.
type StaticProvider struct {
	sep    string
	suffix string
}

// NewStaticProvider creates a StaticProvider.
func NewStaticProvider(sep, suffix string) *StaticProvider {
	return &StaticProvider{sep: sep, suffix: suffix}
}

// Generate implements layout.IdentifierProvider.
func (s *StaticProvider) Generate(prefix string) string {
	return prefix + s.sep + s.suffix
}

// CountingProvider records how often each prefix was requested.
type CountingProvider struct {
	next layout.IdentifierProvider

	mu    sync.Mutex
	calls map[string]int
}

// NewCountingProvider wraps next.
func NewCountingProvider(next layout.IdentifierProvider) *CountingProvider {
	return &CountingProvider{next: next, calls: make(map[string]int)}
}

// Generate implements layout.IdentifierProvider.
func (c *CountingProvider) Generate(prefix string) string {
	c.mu.Lock()
	c.calls[prefix]++
	c.mu.Unlock()
	return c.next.Generate(prefix)
}

// Calls returns the number of ids handed out for prefix.
func (c *CountingProvider) Calls(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[prefix]
}

// Total returns the number of ids handed out.
func (c *CountingProvider) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.calls {
		total += n
	}
	return total
}

// New builds the provider named by cfg.Provider.
func New(cfg config.IDsConfig) (layout.IdentifierProvider, error) {
	switch cfg.Provider {
	case "counter", "":
		return NewCounterProvider(cfg.Separator), nil
	case "uuid":
		return NewUUIDProvider(cfg.Separator), nil
	case "static":
		return NewStaticProvider(cfg.Separator, cfg.StaticSuffix), nil
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("unknown id provider %q", cfg.Provider), errors.ErrUnknownProvider)
	}
}
