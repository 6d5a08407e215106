// internal/intents/recommend-portfolio/config.go
package recommendportfolio

import "fmt"

type Config struct {
	Enabled bool `mapstructure:"enabled"`
	// ServiceName is the product name thanked in the closing message.
	ServiceName string `mapstructure:"service_name"`
	// PublishFulfillments sends a notification for each fulfilled
	// recommendation when a publisher is wired in.
	PublishFulfillments bool `mapstructure:"publish_fulfillments"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:             true,
		ServiceName:         "RoboAdvisor",
		PublishFulfillments: true,
	}
}

func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name must not be empty")
	}
	return nil
}
