// Package scenario holds named collections of array settings and stores them on disk.
package scenario

import (
	"errors"
	"fmt"

	"github.com/wiless/beamforming/antenna"
)

// ErrValidation is returned by callers that need a usable scenario, e.g. at least one array
var ErrValidation = errors.New("scenario validation failed")

type Scenario struct {
	Name        string
	Description string
	Arrays      []antenna.SettingArray
}

func New(name string, arrays ...antenna.SettingArray) Scenario {
	s := Scenario{Name: name}
	s.Arrays = append(s.Arrays, arrays...)
	return s
}

// Clone returns a copy that does not share the Arrays slice
func (s Scenario) Clone() Scenario {
	result := s
	result.Arrays = make([]antenna.SettingArray, len(s.Arrays))
	copy(result.Arrays, s.Arrays)
	return result
}

// Validate requires at least one array and a valid setting for each of them.
func (s Scenario) Validate() error {
	if len(s.Arrays) == 0 {
		return fmt.Errorf("%w: scenario %q has no arrays", ErrValidation, s.Name)
	}
	for i, a := range s.Arrays {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("%w: scenario %q array %d: %w", ErrValidation, s.Name, i, err)
		}
	}
	return nil
}
