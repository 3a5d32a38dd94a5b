package structure

import "fmt"

// DefaultCapacity is the number of record slots pre-allocated for a new index
// if the configuration does not ask for a different amount.
const DefaultCapacity = 64

// Config configures a structural index.
type Config struct {
	// InitialCapacity is the number of record slots to pre-allocate.
	// Zero selects DefaultCapacity.
	InitialCapacity int
}

func (cfg Config) normalized() Config {
	if cfg.InitialCapacity == 0 {
		cfg.InitialCapacity = DefaultCapacity
	}
	return cfg
}

func (cfg Config) validate() error {
	if cfg.InitialCapacity < 0 {
		return fmt.Errorf("%w: negative initial capacity %d", ErrInvalidConfig, cfg.InitialCapacity)
	}
	return nil
}
