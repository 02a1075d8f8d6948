// internal/workers/topic/resolve-communities/config.go
package resolvecommunities

import (
	"time"

	"topic-communities/internal/common/config"
	"topic-communities/pkg/registry"
)

type Config struct {
	Timeout time.Duration
	// Registry supplies the input/output schemas; nil means the embedded one.
	Registry *registry.ActivityRegistry
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}

func FromWorkerConfig(wcfg config.WorkerConfig) *Config {
	cfg := LoadConfig()
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}

func (c *Config) registry() *registry.ActivityRegistry {
	if c.Registry != nil {
		return c.Registry
	}
	return registry.Default()
}
