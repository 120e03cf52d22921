package config

import "sync"

// Properties is the boolean settings source for per-metric export flags.
// It re-reads its backing config file on Reload so flag changes take effect
// without a restart; if the re-read fails, the last good values stay in
// effect.
type Properties struct {
	mu     sync.Mutex
	path   string
	values map[string]bool
}

// NewProperties creates a flag source backed by the given config file,
// seeded with the already-loaded values.
func NewProperties(path string, initial map[string]bool) *Properties {
	return &Properties{
		path:   path,
		values: initial,
	}
}

// Reload re-reads the backing config file. On failure the previous values
// are kept and the error returned for the caller to log.
func (p *Properties) Reload() error {
	cfg, err := Load(p.path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.values = cfg.Properties
	p.mu.Unlock()
	return nil
}

// GetBool returns the value of a boolean setting and whether it is present.
func (p *Properties) GetBool(key string) (bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.values[key]
	return v, ok
}
