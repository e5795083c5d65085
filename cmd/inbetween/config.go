package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	inbetween "github.com/tphakala/go-cel-inbetween"
)

// envPrefix prefixes every environment override, e.g. INBETWEEN_FRAMES.
const envPrefix = "INBETWEEN"

// Config holds command parameters as read from a YAML file, the
// environment and flags, in increasing order of precedence.
type Config struct {
	A                  string  `yaml:"a"`
	B                  string  `yaml:"b"`
	Out                string  `yaml:"out"`
	Frames             int     `yaml:"frames"`
	Prefix             string  `yaml:"prefix"`
	StartIndex         int     `yaml:"startIndex" split_words:"true"`
	Digits             int     `yaml:"digits"`
	EdgeProtect        float64 `yaml:"edgeProtect" split_words:"true"`
	OcclusionThreshold float64 `yaml:"occlusionThreshold" envconfig:"OCC_TH"`
	LineStrength       float64 `yaml:"lineStrength" split_words:"true"`
	LineKernel         int     `yaml:"lineKernel" split_words:"true"`
	FlowScale          float64 `yaml:"flowScale" split_words:"true"`
	Parallel           bool    `yaml:"parallel"`
	Workers            int     `yaml:"workers"`
	LogDir             string  `yaml:"logDir" split_words:"true"`
}

// defaultConfig mirrors the library defaults.
func defaultConfig() Config {
	def := inbetween.DefaultConfig()
	return Config{
		Frames:             def.Frames,
		Prefix:             def.Naming.Prefix,
		StartIndex:         def.Naming.StartIndex,
		Digits:             def.Naming.Digits,
		EdgeProtect:        def.EdgeProtectRadius,
		OcclusionThreshold: def.OcclusionThreshold,
		LineStrength:       def.LineStrength,
		LineKernel:         def.LineKernel,
		FlowScale:          def.FlowScale,
	}
}

// GetConfig returns the defaults overlaid with the YAML file at path (if
// any) and then with INBETWEEN_* environment variables.
func GetConfig(path string) (Config, error) {
	config := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Override with env variables if they are passed in
	if err := envconfig.Process(envPrefix, &config); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}

	return config, nil
}

// verifyConfig checks the options the library does not know about.
func verifyConfig(config *Config) error {
	if config == nil {
		return errors.New("cannot verify config, config is nil")
	}
	if config.A == "" || config.B == "" {
		return errors.New("both keyframes are required (--a and --b)")
	}
	if config.Out == "" {
		return errors.New("missing output directory (--out)")
	}
	return nil
}

// libraryConfig converts command parameters into a library configuration.
func (c *Config) libraryConfig() inbetween.Config {
	cfg := inbetween.DefaultConfig()
	cfg.Frames = c.Frames
	cfg.EdgeProtectRadius = c.EdgeProtect
	cfg.OcclusionThreshold = c.OcclusionThreshold
	cfg.LineStrength = c.LineStrength
	cfg.LineKernel = c.LineKernel
	cfg.FlowScale = c.FlowScale
	cfg.Naming.Prefix = c.Prefix
	cfg.Naming.StartIndex = c.StartIndex
	cfg.Naming.Digits = c.Digits
	cfg.EnableParallel = c.Parallel
	cfg.Workers = c.Workers
	return cfg
}
