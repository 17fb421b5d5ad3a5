package model

import "fmt"

// ConfigError reports invalid architecture or training parameters, including
// parameter shape mismatches during aggregation. Fatal to the operation.
type ConfigError struct {
	Message string
}

func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s", e.Message)
}

// DataError reports a malformed or missing dataset. Fatal to the training
// run, not to the process.
type DataError struct {
	Message string
}

func NewDataError(format string, args ...any) *DataError {
	return &DataError{Message: fmt.Sprintf(format, args...)}
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error: %s", e.Message)
}

// LoadError reports missing or corrupt artifact files. Recoverable: the
// prediction runtime converts it into a degraded "not ready" state.
type LoadError struct {
	Message string
}

func NewLoadError(format string, args ...any) *LoadError {
	return &LoadError{Message: fmt.Sprintf(format, args...)}
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error: %s", e.Message)
}

// ValidationError reports invalid per-request input. Scoped to the single
// request; never affects shared state.
type ValidationError struct {
	Message string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}
