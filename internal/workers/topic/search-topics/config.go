// internal/workers/topic/search-topics/config.go
package searchtopics

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
		Timeout: 10 * time.Second,
	}
}

// FromWorkerConfig uses the worker's job timeout as the execution deadline.
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
