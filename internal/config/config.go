// Package config loads the recognised options of spec.md §6 from the
// environment via viper, the configuration loader spec.md explicitly
// keeps as a thin external collaborator — its only contract here is
// "produce a populated Config", not a bespoke parsing loop.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the process-wide immutable configuration, initialised
// once at boot per spec.md §9's "Global state" design note.
type Config struct {
	Port int `mapstructure:"PORT"`

	ExecutionMode string `mapstructure:"EXECUTION_MODE"`
	MaxConcurrent int    `mapstructure:"MAX_CONCURRENT"`

	DefaultTimeLimitS int   `mapstructure:"DEFAULT_TIME_LIMIT"`
	MaxTimeLimitS     int   `mapstructure:"MAX_TIME_LIMIT"`
	DefaultMemoryMB   int64 `mapstructure:"DEFAULT_MEMORY_LIMIT"`
	MaxMemoryMB       int64 `mapstructure:"MAX_MEMORY_LIMIT"`

	// MaxCodeSize caps source size and each test case's input and
	// expected-output size —
	// intentionally shared, per the Open Question resolution recorded
	// in DESIGN.md.
	MaxCodeSize int `mapstructure:"MAX_CODE_SIZE"`

	SandboxImage string `mapstructure:"SANDBOX_IMAGE"`
	TempDir      string `mapstructure:"TEMP_DIR"`

	RateLimitWindowMs int `mapstructure:"RATE_LIMIT_WINDOW"`
	RateLimitMax      int `mapstructure:"RATE_LIMIT_MAX"`

	CgroupRoot        string `mapstructure:"CGROUP_ROOT"`
	SeccompProfile    string `mapstructure:"SECCOMP_PROFILE"`
	SandboxBinaryPath string `mapstructure:"SANDBOX_BINARY_PATH"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	LogFormat         string `mapstructure:"LOG_FORMAT"`
}

// Load reads configuration from the environment (and, if present,
// configPath), applying the defaults of spec.md §6's table.
func Load(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 3000)
	v.SetDefault("EXECUTION_MODE", "container")
	v.SetDefault("MAX_CONCURRENT", 2)
	v.SetDefault("DEFAULT_TIME_LIMIT", 5)
	v.SetDefault("MAX_TIME_LIMIT", 10)
	v.SetDefault("DEFAULT_MEMORY_LIMIT", 256)
	v.SetDefault("MAX_MEMORY_LIMIT", 512)
	v.SetDefault("MAX_CODE_SIZE", 65536)
	v.SetDefault("SANDBOX_IMAGE", "judge-sandbox")
	v.SetDefault("TEMP_DIR", "/tmp/judge")
	v.SetDefault("RATE_LIMIT_WINDOW", 60000)
	v.SetDefault("RATE_LIMIT_MAX", 30)
	v.SetDefault("CGROUP_ROOT", "/sys/fs/cgroup/judge")
	v.SetDefault("SECCOMP_PROFILE", "")
	v.SetDefault("SANDBOX_BINARY_PATH", "sandbox-runner")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}
