package query

import (
	"context"
	"errors"
	"time"

	"homeseed/internal/model"
)

// ErrNoResult is returned when a query expecting a single result finds
// nothing (for example, no thermostat has a measurement yet).
var ErrNoResult = errors.New("query: no matching result")

// UserDeviceType is one (user, user type, device type) tuple reachable
// through the device types permitted for the user's type.
type UserDeviceType struct {
	UserName   string
	UserType   string
	DeviceType string
	DeviceName string
}

// House identifies a house in a query result.
type House struct {
	ID      model.ID
	Address string
}

// ThermostatReading is the greatest thermostat measurement, paired with the
// address of the house its device belongs to.
type ThermostatReading struct {
	Address     string
	MeasureTime time.Time
	Value       float64
}

// Querier is the read-only facade over whichever backend was populated.
type Querier interface {
	// FindUserDeviceTypes returns every device type permitted to users
	// with the given name, via their user type.
	FindUserDeviceTypes(ctx context.Context, name string) ([]UserDeviceType, error)

	// HousesWithActivatedDevices returns the distinct houses having at
	// least one device referenced by at least one activation.
	HousesWithActivatedDevices(ctx context.Context) ([]House, error)

	// MaxThermostatMeasurement returns the measurement with the greatest
	// value among thermostat devices, ties broken by storage order.
	// Returns ErrNoResult when no thermostat measurement exists.
	MaxThermostatMeasurement(ctx context.Context) (*ThermostatReading, error)
}
