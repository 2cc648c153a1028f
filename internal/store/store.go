package store

import (
	"context"

	"homeseed/internal/model"
)

// Store is the persistence adapter: one synchronous create per entity type,
// each returning an identifier usable as a foreign key later in the same
// run. The postgres implementation buffers everything in one transaction
// and makes it durable on Commit; the back4app implementation makes every
// record durable on its individual call and Commit is a no-op.
type Store interface {
	CreateUserType(ctx context.Context, ut model.UserType) (model.ID, error)
	CreateDeviceType(ctx context.Context, dt model.DeviceType) (model.ID, error)
	CreateDeviceTypeUserType(ctx context.Context, link model.DeviceTypeUserType) (model.ID, error)
	CreateHouse(ctx context.Context, h model.House) (model.ID, error)
	CreateDevice(ctx context.Context, d model.Device) (model.ID, error)
	CreateUser(ctx context.Context, u model.User) (model.ID, error)
	CreateScenario(ctx context.Context, sc model.Scenario) (model.ID, error)
	CreateActivation(ctx context.Context, a model.Activation) (model.ID, error)
	CreateConjunction(ctx context.Context, c model.Conjunction) (model.ID, error)
	CreateEvent(ctx context.Context, ev model.Event) (model.ID, error)
	CreateMeasurement(ctx context.Context, m model.Measurement) (model.ID, error)

	// Clear removes every previously generated record, children before
	// parents. Backends without bulk delete return an error.
	Clear(ctx context.Context) error

	// Commit finalizes the run on transactional backends.
	Commit(ctx context.Context) error

	Close() error
}
