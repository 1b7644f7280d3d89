package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "SHOPPINGLIST_CONFIG_FILE"
	envPrefix         = "SHOPPINGLIST"
	localEnvFile      = ".env.local"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type HTTP struct {
	Addr              string        `mapstructure:"addr"`
	RateLimit         float64       `mapstructure:"rate_limit"`
	Burst             int           `mapstructure:"burst"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	HandlerTimeout    time.Duration `mapstructure:"handler_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type Storage struct {
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
	Migrate bool   `mapstructure:"migrate"`
}

type Redis struct {
	Addr   string        `mapstructure:"addr"`
	TTL    time.Duration `mapstructure:"ttl"`
	Prefix string        `mapstructure:"prefix"`
}

type Labels struct {
	Items string `mapstructure:"items"`
	Total string `mapstructure:"total"`
}

type Config struct {
	LogLevel string  `mapstructure:"log_level"`
	Locale   string  `mapstructure:"locale"`
	HTTP     HTTP    `mapstructure:"http"`
	Storage  Storage `mapstructure:"storage"`
	Redis    Redis   `mapstructure:"redis"`
	Labels   Labels  `mapstructure:"labels"`
}

// Load reads the configuration file named by --config or SHOPPINGLIST_CONFIG_FILE
// and exits the process when it cannot be used.
func Load() Config {
	loadLocalEnv()

	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads path, applies defaults and SHOPPINGLIST_* environment
// overrides and validates the result.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("locale", "en-US")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.rate_limit", 50)
	v.SetDefault("http.burst", 100)
	v.SetDefault("http.read_header_timeout", "5s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("http.handler_timeout", "10s")
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("storage.driver", DriverMySQL)
	v.SetDefault("storage.dsn", "user:pass@tcp(mysql:3306)/appdb")
	v.SetDefault("storage.migrate", true)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.ttl", "10m")
	v.SetDefault("redis.prefix", "shoppinglist:autocomplete:")
	v.SetDefault("labels.items", "Items")
	v.SetDefault("labels.total", "Total")
}

func (c Config) validate() error {
	var errs []error
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Storage.Driver != DriverMySQL && c.Storage.Driver != DriverPostgres {
		errs = append(errs, fmt.Errorf("storage.driver: unsupported driver %q", c.Storage.Driver))
	}
	if c.Storage.DSN == "" {
		errs = append(errs, errors.New("storage.dsn: required"))
	}
	if c.HTTP.RateLimit <= 0 {
		errs = append(errs, errors.New("http.rate_limit: must be positive"))
	}
	if c.HTTP.Burst <= 0 {
		errs = append(errs, errors.New("http.burst: must be positive"))
	}
	timeouts := map[string]time.Duration{
		"http.read_header_timeout": c.HTTP.ReadHeaderTimeout,
		"http.idle_timeout":        c.HTTP.IdleTimeout,
		"http.handler_timeout":     c.HTTP.HandlerTimeout,
		"http.shutdown_timeout":    c.HTTP.ShutdownTimeout,
	}
	for key, d := range timeouts {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s: must be positive", key))
		}
	}
	return errors.Join(errs...)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

// loadLocalEnv reads .env.local when APP_ENV is "local"; variables already set
// in the environment win.
func loadLocalEnv() {
	if os.Getenv("APP_ENV") != "local" {
		return
	}
	if err := godotenv.Load(localEnvFile); err != nil {
		fmt.Printf("warning: %s not loaded: %v\n", localEnvFile, err)
	}
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	Locale=%q

	HTTP:
	Addr=%q
	RateLimit=%v
	Burst=%d
	ReadHeaderTimeout=%s
	IdleTimeout=%s
	HandlerTimeout=%s
	ShutdownTimeout=%s

	Storage:
	Driver=%q
	Migrate=%t

	Redis:
	Addr=%q
	TTL=%s
	Prefix=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.Locale,
		c.HTTP.Addr,
		c.HTTP.RateLimit,
		c.HTTP.Burst,
		c.HTTP.ReadHeaderTimeout,
		c.HTTP.IdleTimeout,
		c.HTTP.HandlerTimeout,
		c.HTTP.ShutdownTimeout,
		c.Storage.Driver,
		c.Storage.Migrate,
		c.Redis.Addr,
		c.Redis.TTL,
		c.Redis.Prefix,
	)
}
