// Copyright 2025-2026, Coprocessor Labs, Inc.
// For license information, see https://github.com/coprocessor-labs/stateproof/blob/main/LICENSE

package util

import (
	"strings"

	"github.com/knadh/koanf"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
)

const envPrefix = "STATEPROOF_"

// BeginCommonParse parses args into the flag set and layers config
// sources the usual way: environment variables under STATEPROOF_, an
// optional JSON config file named by --conf-file, then command line
// flags, later sources winning.
func BeginCommonParse(f *flag.FlagSet, args []string) (*koanf.Koanf, error) {
	if err := f.Parse(args); err != nil {
		return nil, err
	}
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(name string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, envPrefix)), "_", "-")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "loading environment")
	}
	if confFile := f.Lookup("conf-file"); confFile != nil && confFile.Value.String() != "" {
		if err := k.Load(file.Provider(confFile.Value.String()), kjson.Parser()); err != nil {
			return nil, errors.Wrap(err, "loading config file")
		}
	}
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, errors.Wrap(err, "loading flags")
	}
	return k, nil
}

// EndCommonParse unmarshals the layered configuration into config.
func EndCommonParse(k *koanf.Koanf, config interface{}) error {
	return errors.Wrap(k.Unmarshal("", config), "unmarshaling config")
}
