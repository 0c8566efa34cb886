// Copyright 2024 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package env maps environment variables and an optional YAML config file
// onto command line flags that were not set explicitly.
package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type cmdFlags interface {
	CheckEnvironmentVariables(command *cobra.Command) error
}

type cmdFlagsImpl struct{}

var (
	CmdFlags           cmdFlags = cmdFlagsImpl{}
	errorMessagePrefix          = "error mapping environment variables to command flags"
)

const (
	globalPrefix = "tiny"

	// ConfigFileFlag names the flag holding the path of the config file.
	ConfigFileFlag = "config-file"
)

// CheckEnvironmentVariables sets every unchanged flag of command from, in
// order of precedence, the environment (TINY_<FLAG> for the root command,
// TINY_<CMD>_<FLAG> otherwise) and the config file. Root command flags are
// top-level keys of the config file and subcommand flags are nested under
// the subcommand name.
func (cmdFlagsImpl) CheckEnvironmentVariables(command *cobra.Command) error {
	var errs []string
	v := viper.New()
	v.AutomaticEnv()
	isRoot := command.Name() == globalPrefix
	if isRoot {
		v.SetEnvPrefix(command.Name())
	} else {
		v.SetEnvPrefix(fmt.Sprintf("%s_%s", globalPrefix, command.Name()))
	}

	cfg, err := readConfig(command)
	if err != nil {
		return fmt.Errorf("%s: %w", errorMessagePrefix, err)
	}

	command.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == ConfigFileFlag {
			return
		}
		configName := strings.ReplaceAll(f.Name, "-", "_")

		var val any
		switch {
		case v.IsSet(configName):
			val = v.Get(configName)
		case cfg == nil:
			return
		case isRoot && cfg.IsSet(f.Name):
			val = cfg.Get(f.Name)
		case !isRoot && cfg.IsSet(command.Name()+"."+f.Name):
			val = cfg.Get(command.Name() + "." + f.Name)
		default:
			return
		}

		if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
			errs = append(errs, err.Error())
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}

// readConfig returns the parsed config file named by the config file flag
// or by TINY_CONFIG_FILE, or nil if neither is set.
func readConfig(command *cobra.Command) (*viper.Viper, error) {
	var path string
	if f := command.Flags().Lookup(ConfigFileFlag); f != nil {
		path = f.Value.String()
	}
	if path == "" {
		e := viper.New()
		e.SetEnvPrefix(globalPrefix)
		e.AutomaticEnv()
		path = e.GetString(strings.ReplaceAll(ConfigFileFlag, "-", "_"))
	}
	if path == "" {
		return nil, nil
	}

	cfg := viper.New()
	cfg.SetConfigFile(path)
	cfg.SetConfigType("yaml")
	if err := cfg.ReadInConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}
