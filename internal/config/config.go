// Package config loads server settings from flags, with PIXELCHESS_*
// environment variables taking precedence over flag defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "PIXELCHESS_"

type Config struct {
	Addr                string
	AllowOrigins        string
	LogLevel            zerolog.Level
	LogPretty           bool
	SearchDepth         int
	MoveTimeLimit       time.Duration
	MatchmakingInterval time.Duration
}

func Default() Config {
	return Config{
		Addr:                ":3000",
		AllowOrigins:        "http://localhost:5173",
		LogLevel:            zerolog.InfoLevel,
		SearchDepth:         2,
		MoveTimeLimit:       45 * time.Second,
		MatchmakingInterval: time.Second,
	}
}

// Load parses args. getenv is consulted for every flag not given on the
// command line, under the flag name upper-cased with dashes as underscores,
// e.g. PIXELCHESS_MOVE_TIME.
func Load(name string, args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	level := cfg.LogLevel.String()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", cfg.AllowOrigins, "comma separated CORS origins")
	fs.StringVar(&level, "log-level", level, "log level (trace, debug, info, warn, error)")
	fs.BoolVar(&cfg.LogPretty, "log-pretty", cfg.LogPretty, "human readable console logs")
	fs.IntVar(&cfg.SearchDepth, "depth", cfg.SearchDepth, "default engine search depth")
	fs.DurationVar(&cfg.MoveTimeLimit, "move-time", cfg.MoveTimeLimit, "time allowed per move, 0 disables")
	fs.DurationVar(&cfg.MatchmakingInterval, "matchmaking-interval", cfg.MatchmakingInterval, "matchmaking tick")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	var envErr error
	fs.VisitAll(func(f *flag.Flag) {
		if set[f.Name] || envErr != nil {
			return
		}
		key := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if v := getenv(key); v != "" {
			if err := fs.Set(f.Name, v); err != nil {
				envErr = fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
			}
		}
	})
	if envErr != nil {
		return cfg, envErr
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.LogLevel = lvl
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	case c.SearchDepth < 1:
		return fmt.Errorf("%w: depth must be positive", ErrInvalidConfig)
	case c.MoveTimeLimit < 0:
		return fmt.Errorf("%w: negative move time", ErrInvalidConfig)
	case c.MatchmakingInterval <= 0:
		return fmt.Errorf("%w: matchmaking interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// Origins splits AllowOrigins for the WebSocket origin check.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

