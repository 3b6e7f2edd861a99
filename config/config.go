// Package config loads the interviewd YAML configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CandorLabs/InterviewKit/interview"
	"github.com/CandorLabs/InterviewKit/providers"
	"github.com/CandorLabs/InterviewKit/questionbank"
)

// Defaults applied by Load for omitted fields.
const (
	DefaultListenAddr  = ":8080"
	DefaultMetricsAddr = ":9090"
	DefaultRedisAddr   = "localhost:6379"
)

// Config is the full daemon configuration.
type Config struct {
	// ListenAddr is the WebSocket trigger endpoint address.
	ListenAddr string `yaml:"listen_addr"`

	// MetricsAddr serves Prometheus metrics. Empty disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr"`

	// BankPath is the question bank JSON file. Required.
	BankPath string `yaml:"bank_path"`

	// ArchiveDir receives interview snapshot files. Empty disables the file sink.
	ArchiveDir string `yaml:"archive_dir"`

	Provider  providers.Spec  `yaml:"provider"`
	Counts    Counts          `yaml:"question_counts"`
	Interview InterviewConfig `yaml:"interview"`
	Redis     RedisConfig     `yaml:"redis"`
}

// Counts mirrors questionbank.Counts with YAML tags.
type Counts struct {
	Easy   int `yaml:"easy"`
	Medium int `yaml:"medium"`
	Hard   int `yaml:"hard"`
}

// InterviewConfig tunes the sequencer. GenerationTimeout is a Go duration
// string (e.g. "45s").
type InterviewConfig struct {
	MaxFollowUps      int    `yaml:"max_follow_ups"`
	ProfilePolicy     string `yaml:"profile_policy"`
	GenerationTimeout string `yaml:"generation_timeout"`
}

// RedisConfig configures the profile cache and archive sink. An empty Addr
// disables Redis entirely. TTLs are Go duration strings (e.g. "24h").
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	ProfileTTL string `yaml:"profile_ttl"`
	ArchiveTTL string `yaml:"archive_ttl"`
}

// Load reads, parses, and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = DefaultMetricsAddr
	}
	if c.Provider.Type == "" {
		c.Provider.Type = "openai"
	}
	if c.Provider.ID == "" {
		c.Provider.ID = c.Provider.Type
	}
	if c.Counts == (Counts{}) {
		c.Counts = Counts(questionbank.DefaultCounts)
	}
}

func (c *Config) validate() error {
	if c.BankPath == "" {
		return fmt.Errorf("bank_path is required")
	}
	if c.Counts.Easy < 0 || c.Counts.Medium < 0 || c.Counts.Hard < 0 {
		return fmt.Errorf("question_counts must not be negative")
	}
	if policy := interview.ProfilePolicy(c.Interview.ProfilePolicy); c.Interview.ProfilePolicy != "" && !policy.Valid() {
		return fmt.Errorf("unknown profile_policy %q", c.Interview.ProfilePolicy)
	}
	for name, value := range map[string]string{
		"interview.generation_timeout": c.Interview.GenerationTimeout,
		"redis.profile_ttl":            c.Redis.ProfileTTL,
		"redis.archive_ttl":            c.Redis.ArchiveTTL,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s duration %q: %w", name, value, err)
		}
	}
	return nil
}

// GenerationTimeout returns the configured timeout, or zero when unset so the
// session falls back to its own default.
func (c *Config) GenerationTimeout() time.Duration {
	return parseDuration(c.Interview.GenerationTimeout)
}

// ProfileTTL returns the configured profile cache TTL, or zero when unset.
func (c *Config) ProfileTTL() time.Duration {
	return parseDuration(c.Redis.ProfileTTL)
}

// ArchiveTTL returns the configured archive TTL, or zero when unset.
func (c *Config) ArchiveTTL() time.Duration {
	return parseDuration(c.Redis.ArchiveTTL)
}

// parseDuration assumes validate has already run; unset means zero.
func parseDuration(value string) time.Duration {
	if value == "" {
		return 0
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

// QuestionCounts converts the YAML counts into the selector's type.
func (c *Config) QuestionCounts() questionbank.Counts {
	return questionbank.Counts(c.Counts)
}

// InterviewSettings converts the YAML block into the sequencer's config.
func (c *Config) InterviewSettings() interview.Config {
	return interview.Config{
		MaxFollowUps: c.Interview.MaxFollowUps,
		Policy:       interview.ProfilePolicy(c.Interview.ProfilePolicy),
	}
}
