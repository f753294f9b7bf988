// Package config loads the JSON configuration document into an immutable
// Config value, validating every endpoint at load time.
package config

import (
	"bytes"
	"fmt"
	"net"

	"github.com/spf13/viper"

	"github.com/sabouaram/tcplb/errors"
	"github.com/sabouaram/tcplb/logger/level"
)

// LogConfig is lb_log.
type LogConfig struct {
	LogSetLevel int `mapstructure:"log_set_level"`
}

// Level returns the configured verbosity as a logger/level.Level.
func (l LogConfig) Level() level.Level {
	return level.ParseFromInt(l.LogSetLevel)
}

// NodeConfig is lb_node.
type NodeConfig struct {
	Listen               string   `mapstructure:"listen"`
	MaxConn              uint32   `mapstructure:"max_conn"`
	Timeout              uint32   `mapstructure:"timeout"`
	EnableLocalEndpoints bool     `mapstructure:"enable_local_endpoints"`
	LocalEndpoints       []string `mapstructure:"local_endpoints"`
}

// APIConfig is lb_api.
type APIConfig struct {
	Listen string `mapstructure:"listen"`
}

// TargetConfig is one entry of lb_targets.
type TargetConfig struct {
	TargetEndpoint string `mapstructure:"target_endpoint"`
	TargetMaxConn  uint32 `mapstructure:"target_max_conn"`
	TargetTimeout  uint32 `mapstructure:"target_timeout"`
	TargetActive   bool   `mapstructure:"target_active"`
}

// Config is the immutable, fully-validated configuration value produced
// by Load.
type Config struct {
	Log     LogConfig      `mapstructure:"lb_log"`
	Node    NodeConfig     `mapstructure:"lb_node"`
	API     APIConfig      `mapstructure:"lb_api"`
	Targets []TargetConfig `mapstructure:"lb_targets"`
}

// Load reads a JSON document from r, decodes it, and validates every
// endpoint field by resolving it as a TCP address. Any failure is a
// Configuration error (errors.CodeConfig), fatal at startup.
func Load(r []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(r)); err != nil {
		return nil, errors.New(errors.CodeConfig, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.New(errors.CodeConfig, err)
	}

	if err := c.validate(); err != nil {
		return nil, errors.New(errors.CodeConfig, err)
	}

	return &c, nil
}

func (c *Config) validate() error {
	if err := resolve(c.Node.Listen); err != nil {
		return fmt.Errorf("lb_node.listen: %w", err)
	}
	if err := resolve(c.API.Listen); err != nil {
		return fmt.Errorf("lb_api.listen: %w", err)
	}

	if c.Node.EnableLocalEndpoints {
		for _, ep := range c.Node.LocalEndpoints {
			if err := resolve(ep); err != nil {
				return fmt.Errorf("lb_node.local_endpoints: %w", err)
			}
		}
	}

	for _, t := range c.Targets {
		if err := resolve(t.TargetEndpoint); err != nil {
			return fmt.Errorf("lb_targets[%s]: %w", t.TargetEndpoint, err)
		}
	}

	return nil
}

func resolve(endpoint string) error {
	_, err := net.ResolveTCPAddr("tcp", endpoint)
	return err
}
