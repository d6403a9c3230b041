package antenna

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned for bad element count, spacing, frequency or curvature
	ErrInvalidConfiguration = errors.New("invalid array configuration")
	// ErrInvalidSteeringAngle is returned for steering angles outside [-180,180] degree
	ErrInvalidSteeringAngle = errors.New("invalid steering angle")
)

// ConfigError reports the offending field of a SettingArray
type ConfigError struct {
	Field string
	Value float64
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("antenna: %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func invalid(field string, value float64) error {
	return &ConfigError{Field: field, Value: value, Err: ErrInvalidConfiguration}
}
