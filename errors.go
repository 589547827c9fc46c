package tpcc

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Key    string
	Value  string
	Reason string
}

func NewConfigError(key, value, reason string) *ConfigError {
	return &ConfigError{
		Key:    key,
		Value:  value,
		Reason: reason,
	}
}

func (self *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s=%q: %s", self.Key, self.Value, self.Reason)
}

// LoadError aborts a load. Warehouse is 0 for the item table.
type LoadError struct {
	Table     string
	Warehouse int64
	Err       error
}

func NewLoadError(table string, warehouse int64, err error) *LoadError {
	return &LoadError{
		Table:     table,
		Warehouse: warehouse,
		Err:       err,
	}
}

func (self *LoadError) Error() string {
	if self.Warehouse == 0 {
		return fmt.Sprintf("fail to load %s: %s", self.Table, self.Err)
	}
	return fmt.Sprintf("fail to load %s of warehouse %d: %s", self.Table, self.Warehouse, self.Err)
}

func (self *LoadError) Cause() error {
	return self.Err
}

func (self *LoadError) Unwrap() error {
	return self.Err
}

// TransientError marks a database failure worth retrying: serialization
// conflicts, deadlocks, lock wait timeouts and broken connections.
type TransientError struct {
	Err error
}

func NewTransientError(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

func (self *TransientError) Error() string {
	return fmt.Sprintf("transient: %s", self.Err)
}

func (self *TransientError) Cause() error {
	return self.Err
}

func (self *TransientError) Unwrap() error {
	return self.Err
}

// FatalError marks a failure no retry can fix, such as a missing table. It
// stops the worker that hits it.
type FatalError struct {
	Err error
}

func NewFatalError(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

func (self *FatalError) Error() string {
	return fmt.Sprintf("fatal: %s", self.Err)
}

func (self *FatalError) Cause() error {
	return self.Err
}

func (self *FatalError) Unwrap() error {
	return self.Err
}

func IsTransient(err error) bool {
	var target *TransientError
	return errors.As(err, &target)
}

func IsFatal(err error) bool {
	var target *FatalError
	return errors.As(err, &target)
}

func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

func IsLoadError(err error) bool {
	var target *LoadError
	return errors.As(err, &target)
}
