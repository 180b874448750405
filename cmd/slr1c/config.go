package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/spf13/pflag"
)

// Config holds the settings of slr1c. It is read from a TOML file:
//
//    grammar   = "grammar/while.grammar"
//    trace     = "Error"
//    scanner   = "lexmachine"
//    output    = "output.txt"
//    max-steps = 100000
//    dump-dir  = "dump"
//    panic-on-syntax-error = false
//
type Config struct {
	Grammar  string `toml:"grammar"`
	Trace    string `toml:"trace"`
	Scanner  string `toml:"scanner"`
	Output   string `toml:"output"`
	MaxSteps int    `toml:"max-steps"`
	DumpDir  string `toml:"dump-dir"`
	// Panic on syntax errors instead of returning them, for post-mortem debugging.
	PanicOnSyntaxError bool `toml:"panic-on-syntax-error"`
}

func defaultConfig() Config {
	return Config{
		Grammar:  "grammar/while.grammar",
		Trace:    "Error",
		Scanner:  "lexmachine",
		MaxSteps: 100000,
	}
}

// loadConfig reads a configuration file. A missing file is an error only if
// it has been named explicitly; otherwise the defaults are used.
func loadConfig(path string, explicit bool) (Config, error) {
	c := defaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return c, fmt.Errorf("reading configuration: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return c, fmt.Errorf("unknown configuration keys in %s: %v", path, undecoded)
	}
	return c, c.validate()
}

// override copies flags which have been set on the command line.
func (c *Config) override(flags *pflag.FlagSet) error {
	var err error
	str := func(name string, v *string) {
		if err == nil && flags.Changed(name) {
			*v, err = flags.GetString(name)
		}
	}
	str("grammar", &c.Grammar)
	str("trace", &c.Trace)
	str("scanner", &c.Scanner)
	str("output", &c.Output)
	str("dump-dir", &c.DumpDir)
	if err == nil && flags.Changed("max-steps") {
		c.MaxSteps, err = flags.GetInt("max-steps")
	}
	if err == nil && flags.Changed("panic-on-syntax-error") {
		c.PanicOnSyntaxError, err = flags.GetBool("panic-on-syntax-error")
	}
	if err != nil {
		return err
	}
	return c.validate()
}

func (c *Config) validate() error {
	switch c.Scanner {
	case "lexmachine", "go":
	default:
		return fmt.Errorf("unknown scanner %q, expected lexmachine or go", c.Scanner)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max-steps must not be negative")
	}
	return nil
}

// globals converts the settings which are read by library packages through
// schuko/gconf.
func (c *Config) globals() testconfig.Conf {
	return testconfig.Conf{
		"panic-on-syntax-error": c.PanicOnSyntaxError,
	}
}
