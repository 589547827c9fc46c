package tpcc

import (
	"context"

	g "github.com/hhkbp2/tpcc/generator"
)

type MakeWorkloadFunc func() Workload

var (
	Workloads = map[string]MakeWorkloadFunc{}
)

func NewWorkload(className string) (Workload, error) {
	f, ok := Workloads[className]
	if !ok {
		return nil, g.NewErrorf("unsupported workload: %s", className)
	}
	w := f()
	return w, nil
}

// Workload represents One experiment scenario.
// One object of this type will be instantiated and
// shared among all client routines.
// This type should be constructed using a no-argument constructor,
// so we can load it dynamically. Any argument-based initialization
// should be done by Init().
type Workload interface {
	// Initialize the scenario. Parse the configuration into immutable
	// values and create any shared objects here.
	// Called once in the main client routine, before any operations
	// are started.
	Init(p Properties, m Measurements) error

	// Initialize any state for a particular client routine.
	// Since the scenario object will be shared among all routines,
	// this is the place to create any state that is specific to one routine,
	// such as its random generators, seeded from the routine index.
	// The returned object will be passed to invocations of DoInsert()
	// and DoTransaction() for this routine.
	InitRoutine(p Properties, routine int64) (interface{}, error)

	// Cleanup the scenario.
	// Called once, in the main client routine, after all operations
	// have completed.
	Cleanup() error

	// LoadFixed is called once before any DoInsert(). It rejects a target
	// that is not empty and loads the data not owned by a warehouse.
	LoadFixed(ctx context.Context, db DB) error

	// DoInsert loads every row owned by one warehouse. Because it will be
	// called concurrently from multiple routines, this function must be
	// routine safe. Mutations to object do not need to be synchronized,
	// since each routine has its own object instance.
	DoInsert(ctx context.Context, db DB, object interface{}, warehouse int64) error

	// DoTransaction runs one transaction of the mix and records its outcome.
	// Failed transactions are recorded, not returned; a returned error means
	// the routine cannot continue.
	DoTransaction(ctx context.Context, db DB, object interface{}) error
}

// ProfileWorkload runs a named transaction profile on demand, for the shell.
type ProfileWorkload interface {
	Workload
	Profiles() []string
	DoProfile(ctx context.Context, db DB, object interface{}, profile string, warehouse int64) (*TransactionRecord, error)
}

// CheckWorkload verifies the consistency of a loaded database.
type CheckWorkload interface {
	Workload
	// Check returns one message per violated condition.
	Check(ctx context.Context, db DB) ([]string, error)
}
