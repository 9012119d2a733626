// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroborosvm

import (
	"net/http"
	"sync"

	"github.com/gorilla/rpc/v2"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/ava-labs/avalanchego/version"

	cjson "github.com/ava-labs/avalanchego/utils/json"

	"github.com/ouroboros-finance/ouroborosvm/gauges"
	"github.com/ouroboros-finance/ouroborosvm/ouroboros"
	"github.com/ouroboros-finance/ouroborosvm/pools"
)

const Name = "ouroborosvm"

var Version = &version.Semantic{Major: 1, Minor: 0, Patch: 0}

// VM hosts the three engines over one versioned database and executes every
// public operation as a single atomic instruction: the handler runs, and the
// pending writes are either committed together or dropped together.
type VM struct {
	mu      sync.Mutex
	state   State
	clock   mockable.Clock
	metrics *metrics

	pools  *pools.Engine
	escrow *ouroboros.Engine
	gauges *gauges.Engine
}

// Initialize this vm over [db]. If the database is empty it is created from
// [genesisBytes].
func (vm *VM) Initialize(db database.Database, genesisBytes []byte) error {
	log.Info("initializing Ouroboros VM", "version", Version)

	metrics, err := newMetrics()
	if err != nil {
		return err
	}
	vm.metrics = metrics

	vm.state = NewState(db)
	vm.pools = pools.NewEngine(vm.state.Pairs(), vm.state.Tokens())
	vm.escrow = ouroboros.NewEngine(vm.state.Escrow(), vm.state.Tokens())
	vm.gauges = gauges.NewEngine(vm.state.Gauges(), vm.state.Pairs(), vm.state.Tokens())

	// If database is empty, create it using the provided genesis data
	initialized, err := vm.state.IsInitialized()
	if err != nil {
		return err
	}
	if !initialized {
		genesis, err := ParseGenesis(genesisBytes)
		if err != nil {
			log.Error("error while parsing genesis", "error", err)
			return err
		}
		if err := vm.apply(genesis); err != nil {
			vm.state.Abort()
			log.Error("error while applying genesis", "error", err)
			return err
		}
		if err := vm.state.SetInitialized(); err != nil {
			return err
		}
		if err := vm.state.Commit(); err != nil {
			return err
		}
		log.Info("genesis applied", "ouroborosID", genesis.Ouroboros.ID)
	}
	return nil
}

// Shutdown closes the underlying database.
func (vm *VM) Shutdown() error {
	if vm.state == nil {
		return nil
	}
	return vm.state.Close()
}

// run executes one instruction: [fn] runs under the VM lock and its pending
// writes are committed on success or dropped entirely on failure.
func (vm *VM) run(op string, fn func() error) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := fn(); err != nil {
		vm.state.Abort()
		vm.metrics.aborted(op)
		log.Debug("instruction aborted", "op", op, "error", err)
		return err
	}
	if err := vm.state.Commit(); err != nil {
		vm.state.Abort()
		vm.metrics.aborted(op)
		log.Error("error while committing instruction", "op", op, "error", err)
		return err
	}
	vm.metrics.committed(op)
	return nil
}

// view runs a read-only [fn] under the VM lock.
func (vm *VM) view(fn func() error) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return fn()
}

// now reads the instruction timestamp. Each instruction observes the clock
// exactly once.
func (vm *VM) now() int64 {
	return vm.clock.Time().Unix()
}

// CreateHandler returns the JSON-RPC handler exposing the token, pools,
// ouroboros, and gauges services.
func (vm *VM) CreateHandler() (http.Handler, error) {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")

	if err := server.RegisterService(&TokenService{vm: vm}, "token"); err != nil {
		return nil, err
	}
	if err := server.RegisterService(&PoolsService{vm: vm}, "pools"); err != nil {
		return nil, err
	}
	if err := server.RegisterService(&OuroborosService{vm: vm}, "ouroboros"); err != nil {
		return nil, err
	}
	if err := server.RegisterService(&GaugesService{vm: vm}, "gauges"); err != nil {
		return nil, err
	}
	return server, nil
}

// MetricsHandler serves this VM's Prometheus metrics.
func (vm *VM) MetricsHandler() http.Handler {
	return vm.metrics.Handler()
}
