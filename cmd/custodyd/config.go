package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const configFile = "config.toml"

// Config is read from config.toml in the home directory. Every value is
// optional.
type Config struct {
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level"`
	// ChainID is mixed into every signature.
	ChainID string `toml:"chain_id"`
	// Debug exposes internal error details.
	Debug bool `toml:"debug"`
}

// DefaultConfig is used for a home directory without config.toml.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		ChainID:  "custody-local",
	}
}

func loadConfig(home string) (Config, error) {
	conf := DefaultConfig()
	path := filepath.Join(home, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "load %s: %s", path, err)
	}
	if meta.IsDefined("log_level") {
		conf.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("chain_id") {
		conf.ChainID = strings.TrimSpace(raw.ChainID)
	}
	if meta.IsDefined("debug") {
		conf.Debug = raw.Debug
	}
	return conf, nil
}

func writeConfig(home string, conf Config) error {
	fd, err := os.OpenFile(filepath.Join(home, configFile), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "create config: %s", err)
	}
	defer fd.Close()
	if err := toml.NewEncoder(fd).Encode(conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "write config: %s", err)
	}
	return fd.Close()
}

// newLogger returns a tendermint logger writing to w, dropping everything
// below the configured level.
func newLogger(w io.Writer, conf Config) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "custodyd")
	level := conf.LogLevel
	if conf.Debug {
		level = "debug"
	}
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}
