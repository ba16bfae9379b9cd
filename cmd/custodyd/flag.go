package main

import (
	"os"
	"path/filepath"

	"github.com/iov-one/custody/errors"
	flag "github.com/spf13/pflag"
)

// env returns the value of an environment variable if provided (even if
// empty) or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func homeFlag(fl *flag.FlagSet) *string {
	return fl.String("home", env("CUSTODY_HOME", filepath.Join(os.Getenv("HOME"), ".custodyd")),
		"Directory holding the configuration and the database. You can use CUSTODY_HOME environment variable to set it.")
}

func keyFlag(fl *flag.FlagSet) *string {
	return fl.String("key", env("CUSTODY_PRIV_KEY", filepath.Join(os.Getenv("HOME"), ".custodyd.priv.key")),
		"Path to the private key file. You can use CUSTODY_PRIV_KEY environment variable to set it.")
}

func newFlagSet(name, usage string) *flag.FlagSet {
	fl := flag.NewFlagSet(name, flag.ContinueOnError)
	fl.Usage = func() {
		os.Stderr.WriteString(usage)
		fl.PrintDefaults()
	}
	return fl
}

func parseFlags(fl *flag.FlagSet, args []string) error {
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
