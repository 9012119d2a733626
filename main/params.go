// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	versionKey     = "version"
	genesisFileKey = "genesis-file"
	httpAddrKey    = "http-addr"
	logLevelKey    = "log-level"
)

func buildFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("ouroborosvm", flag.ContinueOnError)

	fs.Bool(versionKey, false, "If true, prints version and quit")
	fs.String(genesisFileKey, "genesis.json", "Path to the genesis document")
	fs.String(httpAddrKey, ":9650", "Address the RPC and metrics server listens on")
	fs.String(logLevelKey, "info", "Log level (debug, info, warn, error)")

	return fs
}

// getViper returns the viper environment for the daemon
func getViper() (*viper.Viper, error) {
	v := viper.New()

	fs := buildFlagSet()
	pflag.CommandLine.AddGoFlagSet(fs)
	pflag.Parse()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}
	v.SetEnvPrefix("ouroborosvm")
	v.AutomaticEnv()

	return v, nil
}
