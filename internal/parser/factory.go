package parser

import (
	"fmt"
	"sort"
	"sync"

	"sitediary/internal/config"
	"sitediary/internal/port"
)

// ProviderFactory creates a ContactParser from a provider config.
type ProviderFactory func(cfg *config.ParserProviderConfig) (port.ContactParser, error)

// registry of provider factories, populated by init() in each provider package.
var (
	mu        sync.RWMutex
	providers = map[string]ProviderFactory{}
)

// RegisterProvider registers a parser provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewParser creates a ContactParser from a provider config using the registered factory.
func NewParser(cfg *config.ParserProviderConfig) (port.ContactParser, error) {
	mu.RLock()
	factory, ok := providers[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("parser provider %s: api key is not set", cfg.Provider)
	}
	return factory(cfg)
}
