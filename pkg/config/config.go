// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/colgroup/pkg/common/moerr"
	"github.com/matrixorigin/colgroup/pkg/container/hashtable"
	"github.com/matrixorigin/colgroup/pkg/logutil"
)

type ConfigurationKeyType int

const (
	ConfigKey ConfigurationKeyType = 1
)

const (
	defaultLoadFactor  = 0.5
	defaultPartitions  = 4
	defaultSampleSize  = 4096
	defaultCompression = "lz4"
)

var compressions = []string{"none", "lz4", "zstd"}

// HashTableConfig tunes the grouping tables.
type HashTableConfig struct {
	// InitCapacity is the starting bucket count of each table. 0 lets the
	// builder size tables from a distinct count estimate.
	InitCapacity int `toml:"init-capacity"`

	// LoadFactor is the fill ratio triggering a resize. Default 0.5.
	LoadFactor float64 `toml:"load-factor"`

	// KeyMatch is identity or value. Default identity.
	KeyMatch string `toml:"key-match"`
}

type BuildConfig struct {
	// Partitions is the number of row ranges grouped independently.
	Partitions int `toml:"partitions"`

	// Workers bounds the goroutines grouping partitions. Default Partitions.
	Workers int `toml:"workers"`

	// SampleSize is the number of rows fed to the distinct estimate.
	SampleSize int `toml:"sample-size"`
}

type CodecConfig struct {
	// Compression of encoded column groups, one of none, lz4 and zstd.
	Compression string `toml:"compression"`
}

// Config of the column grouping tools.
type Config struct {
	Log       logutil.LogConfig `toml:"log"`
	HashTable HashTableConfig   `toml:"hashtable"`
	Build     BuildConfig       `toml:"build"`
	Codec     CodecConfig       `toml:"codec"`
}

// Load decodes a toml file and validates it.
func Load(ctx context.Context, file string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(file, cfg); err != nil {
		return nil, moerr.NewBadConfig(ctx, "decode %s: %v", file, err)
	}
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a validated configuration with every default set.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(context.Background()); err != nil {
		panic(err)
	}
	return cfg
}

// Validate fills unset values with their defaults and rejects invalid ones.
func (c *Config) Validate(ctx context.Context) error {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return moerr.NewBadConfig(ctx, "log format %q", c.Log.Format)
	}

	if c.HashTable.InitCapacity < 0 {
		return moerr.NewBadConfig(ctx, "init-capacity %d", c.HashTable.InitCapacity)
	}
	if c.HashTable.LoadFactor == 0 {
		c.HashTable.LoadFactor = defaultLoadFactor
	}
	if c.HashTable.LoadFactor < 0 || c.HashTable.LoadFactor > 1 {
		return moerr.NewBadConfig(ctx, "load-factor %v not in (0, 1]", c.HashTable.LoadFactor)
	}
	if _, ok := hashtable.ParseKeyMatch(c.HashTable.KeyMatch); !ok {
		return moerr.NewBadConfig(ctx, "key-match %q", c.HashTable.KeyMatch)
	}

	if c.Build.Partitions == 0 {
		c.Build.Partitions = defaultPartitions
	}
	if c.Build.Workers == 0 {
		c.Build.Workers = c.Build.Partitions
	}
	if c.Build.SampleSize == 0 {
		c.Build.SampleSize = defaultSampleSize
	}
	if c.Build.Partitions < 0 || c.Build.Workers < 0 || c.Build.SampleSize < 0 {
		return moerr.NewBadConfig(ctx, "negative build setting %+v", c.Build)
	}

	c.Codec.Compression = strings.ToLower(c.Codec.Compression)
	if c.Codec.Compression == "" {
		c.Codec.Compression = defaultCompression
	}
	for _, name := range compressions {
		if name == c.Codec.Compression {
			return nil
		}
	}
	return moerr.NewBadConfig(ctx, "compression %q", c.Codec.Compression)
}

// KeyMatch returns the parsed key matching mode. Call Validate first.
func (c *Config) KeyMatch() hashtable.KeyMatch {
	m, _ := hashtable.ParseKeyMatch(c.HashTable.KeyMatch)
	return m
}

// WithConfig returns a context carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

// GetConfig gets the configuration from the context.
func GetConfig(ctx context.Context) *Config {
	cfg, ok := ctx.Value(ConfigKey).(*Config)
	if !ok || cfg == nil {
		panic("config is invalid")
	}
	return cfg
}
