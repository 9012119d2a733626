// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"net/http"
	"os"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database/memdb"

	"github.com/ouroboros-finance/ouroborosvm/ouroborosvm"
)

func main() {
	v, err := getViper()
	if err != nil {
		fmt.Printf("couldn't get config: %s\n", err)
		os.Exit(1)
	}
	// Print version and exit
	if v.GetBool(versionKey) {
		fmt.Printf("%s@%s\n", ouroborosvm.Name, ouroborosvm.Version)
		os.Exit(0)
	}

	level, err := log.LvlFromString(v.GetString(logLevelKey))
	if err != nil {
		fmt.Printf("invalid log level: %s\n", err)
		os.Exit(1)
	}
	log.Root().SetHandler(log.LvlFilterHandler(level, log.StreamHandler(os.Stderr, log.TerminalFormat())))

	genesisBytes, err := os.ReadFile(v.GetString(genesisFileKey))
	if err != nil {
		log.Error("couldn't read genesis", "error", err)
		os.Exit(1)
	}

	// The devnet daemon keeps its ledger in memory; state lives for the
	// lifetime of the process.
	vm := &ouroborosvm.VM{}
	if err := vm.Initialize(memdb.New(), genesisBytes); err != nil {
		log.Error("couldn't initialize vm", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := vm.Shutdown(); err != nil {
			log.Error("error while shutting down vm", "error", err)
		}
	}()

	handler, err := vm.CreateHandler()
	if err != nil {
		log.Error("couldn't create handler", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", handler)
	mux.Handle("/metrics", vm.MetricsHandler())

	addr := v.GetString(httpAddrKey)
	log.Info("serving", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("server returned an error", "error", err)
		os.Exit(1)
	}
}
