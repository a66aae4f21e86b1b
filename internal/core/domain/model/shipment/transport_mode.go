package shipment

import (
	"fmt"

	"freightops/internal/pkg/errs"
)

// TransportMode identifies how a shipment travels to its destination.
type TransportMode int

const (
	// TransportModeUnknown represents an invalid or undefined mode.
	TransportModeUnknown TransportMode = iota

	// Air marks an air freight shipment; arrival info carries a flight number.
	Air

	// Road marks a road freight shipment.
	Road
)

// TransportModeFromString parses the wire representation of a transport mode.
func TransportModeFromString(s string) (TransportMode, error) {
	switch s {
	case "air":
		return Air, nil
	case "road":
		return Road, nil
	default:
		return TransportModeUnknown, errs.NewValueIsInvalidErrorWithCause(
			"transport mode is invalid",
			fmt.Errorf("%q is not a valid transport mode", s),
		)
	}
}

// Validate checks if the TransportMode value is valid.
func (m TransportMode) Validate() error {
	if m != Air && m != Road {
		return errs.NewValueIsInvalidErrorWithCause(
			"transport mode is invalid",
			fmt.Errorf("%d is not a valid transport mode", m),
		)
	}
	return nil
}

// String returns the wire representation of the mode.
func (m TransportMode) String() string {
	switch m {
	case Air:
		return "air"
	case Road:
		return "road"
	default:
		return "unknown"
	}
}
