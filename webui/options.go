package webui

import (
	"github.com/lingobot/actionserver/core/state"
	"github.com/lingobot/actionserver/core/types"
)

type Config struct {
	Actions types.Actions
	Pool    *state.SessionPool
}

type Option func(*Config)

func WithActions(actions types.Actions) Option {
	return func(c *Config) {
		c.Actions = actions
	}
}

func WithPool(pool *state.SessionPool) Option {
	return func(c *Config) {
		c.Pool = pool
	}
}

func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func NewConfig(opts ...Option) *Config {
	c := &Config{}
	c.Apply(opts...)
	return c
}
