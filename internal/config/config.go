// Package config loads the kdcsim TOML configuration.
//
// Every field has a default, so an empty file (or no file) is a valid
// configuration. Keys absent from the file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "NOTICE"

	// DefaultValidityWindow is the default session key lifetime.
	DefaultValidityWindow = 600 * time.Second

	// DefaultMaxRequestSkew is the default accepted request clock skew.
	DefaultMaxRequestSkew = 5 * time.Minute
)

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stdout will be used.
	File string

	// Level specifies the log level.
	Level string
}

// KDC is the Key Distribution Center configuration.
type KDC struct {
	// ValidityWindow is how long an issued session key is usable.
	ValidityWindow time.Duration

	// MaxRequestSkew bounds the difference between a request timestamp and
	// the KDC clock. Zero disables the check.
	MaxRequestSkew time.Duration
}

// Participant is the participant-side configuration.
type Participant struct {
	// RejectExpiredGrants refuses grants that are already expired on
	// receipt instead of failing on first use.
	RejectExpiredGrants bool
}

// Demo lists the identities the driver registers.
type Demo struct {
	Participants []string
}

// Config is the top level configuration.
type Config struct {
	Logging     Logging
	KDC         KDC
	Participant Participant
	Demo        Demo
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: DefaultLogLevel},
		KDC: KDC{
			ValidityWindow: DefaultValidityWindow,
			MaxRequestSkew: DefaultMaxRequestSkew,
		},
		Participant: Participant{RejectExpiredGrants: true},
		Demo:        Demo{Participants: []string{"A", "B"}},
	}
}

// Validate validates the logging configuration.
func (lCfg *Logging) Validate() error {
	lvl := strings.ToUpper(lCfg.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lvl = DefaultLogLevel
	default:
		return fmt.Errorf("config: Logging: Level '%v' is invalid", lCfg.Level)
	}
	lCfg.Level = lvl // Force uppercase.
	return nil
}

// Validate validates the KDC configuration.
func (kCfg *KDC) Validate() error {
	if kCfg.ValidityWindow < time.Second {
		return fmt.Errorf("config: KDC: ValidityWindow '%v' is shorter than one second", kCfg.ValidityWindow)
	}
	if kCfg.MaxRequestSkew < 0 {
		return fmt.Errorf("config: KDC: MaxRequestSkew '%v' is negative", kCfg.MaxRequestSkew)
	}
	return nil
}

// Validate validates the demo configuration.
func (dCfg *Demo) Validate() error {
	if len(dCfg.Participants) < 2 {
		return errors.New("config: Demo: at least two Participants are required")
	}
	seen := make(map[string]bool, len(dCfg.Participants))
	for _, p := range dCfg.Participants {
		if p == "" {
			return errors.New("config: Demo: empty participant identity")
		}
		if seen[p] {
			return fmt.Errorf("config: Demo: participant '%v' listed twice", p)
		}
		seen[p] = true
	}
	return nil
}

// FixupAndValidate normalises and checks cfg.
func (cfg *Config) FixupAndValidate() error {
	if err := cfg.Logging.Validate(); err != nil {
		return err
	}
	if err := cfg.KDC.Validate(); err != nil {
		return err
	}
	return cfg.Demo.Validate()
}

// LoadBytes parses and validates b as a TOML config on top of the defaults.
func LoadBytes(b []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: undecoded keys in config file: %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load loads and validates the config file at path. An empty path yields
// the validated defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.FixupAndValidate()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(b)
}
