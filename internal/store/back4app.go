package store

import (
	"context"
	"errors"

	"homeseed/internal/back4app"
	"homeseed/internal/model"
)

// Parse class names form the wire contract with the Back4App application
// and its cloud functions; they intentionally differ from the SQL table
// names.
const (
	classUserTypes    = "UserTypes"
	classDeviceTypes  = "DeviceTypes"
	classDeviceLinks  = "DeviceTypesToUserTypes"
	classHouses       = "Houses"
	classDevices      = "Devices"
	classUsers        = "Users"
	classScenarios    = "Scenarios"
	classActivations  = "ActivationsToDevices"
	classConjunctions = "CoNEToDevices"
	classEvents       = "Events"
	classMeasures     = "Measures"
)

// Back4App persists each record with one blocking REST call. There is no
// transaction: a record is durable as soon as its call succeeds, and a
// failed call aborts the run with everything created so far left in place.
type Back4App struct {
	client *back4app.Client
}

func NewBack4App(client *back4app.Client) *Back4App {
	return &Back4App{client: client}
}

func (s *Back4App) CreateUserType(ctx context.Context, ut model.UserType) (model.ID, error) {
	id, err := s.client.CreateObject(ctx, classUserTypes, map[string]any{
		"type": ut.Type,
	})
	return model.ID(id), err
}

func (s *Back4App) CreateDeviceType(ctx context.Context, dt model.DeviceType) (model.ID, error) {
	id, err := s.client.CreateObject(ctx, classDeviceTypes, map[string]any{
		"type": dt.Type,
		"name": dt.Name,
	})
	return model.ID(id), err
}

func (s *Back4App) CreateDeviceTypeUserType(ctx context.Context, link model.DeviceTypeUserType) (model.ID, error) {
	id, err := s.client.CreateObject(ctx, classDeviceLinks, map[string]any{
		"device_type_id": back4app.NewPointer(classDeviceTypes, string(link.DeviceTypeID)),
		"user_type_id":   back4app.NewPointer(classUserTypes, string(link.UserTypeID)),
	})
	return model.ID(id), err
}

func (s *Back4App) CreateHouse(ctx context.Context, h model.House) (model.ID, error) {
	id, err := s.client.CreateObject(ctx, classHouses, map[string]any{
		"address": h.Address,
	})
	return model.ID(id), err
}

func (s *Back4App) CreateDevice(ctx context.Context, d model.Device) (model.ID, error) {
	id, err := s.client.CreateObject(ctx, classDevices, map[string]any{
		"house_id":       back4app.NewPointer(classHouses, string(d.HouseID)),
		"device_type_id": back4app.NewPointer(classDeviceTypes, string(d.DeviceTypeID)),
	})
	return model.ID(id), err
}

func (s *Back4App) CreateUser(ctx context.Context, u model.User) (model.ID, error) {
	id, err := s.client.CreateObject(ctx, classUsers, map[string]any{
		"name":         u.Name,
		"user_type_id": back4app.NewPointer(classUserTypes, string(u.UserTypeID)),
	})
	return model.ID(id), err
}

func (s *Back4App) CreateScenario(ctx context.Context, sc model.Scenario) (model.ID, error) {
	id, err := s.client.CreateObject(ctx, classScenarios, map[string]any{
		"time_from": sc.TimeFrom,
		"time_till": sc.TimeTill,
	})
	return model.ID(id), err
}

func (s *Back4App) CreateActivation(ctx context.Context, a model.Activation) (model.ID, error) {
	body := map[string]any{
		"scenario_id": back4app.NewPointer(classScenarios, string(a.ScenarioID)),
		"device_id":   back4app.NewPointer(classDevices, string(a.DeviceID)),
		"is_on":       a.IsOn,
	}
	if a.AffectTime != nil {
		body["affect_time"] = *a.AffectTime
	}
	id, err := s.client.CreateObject(ctx, classActivations, body)
	return model.ID(id), err
}

func (s *Back4App) CreateConjunction(ctx context.Context, c model.Conjunction) (model.ID, error) {
	id, err := s.client.CreateObject(ctx, classConjunctions, map[string]any{
		"scenario_id": back4app.NewPointer(classScenarios, string(c.ScenarioID)),
		"device_id":   back4app.NewPointer(classDevices, string(c.DeviceID)),
		"is_on":       c.IsOn,
	})
	return model.ID(id), err
}

func (s *Back4App) CreateEvent(ctx context.Context, ev model.Event) (model.ID, error) {
	body := map[string]any{
		"value": ev.Value,
	}
	if ev.UserID != nil {
		body["user_id"] = back4app.NewPointer(classUsers, string(*ev.UserID))
	}
	if ev.DeviceID != nil {
		body["device_id"] = back4app.NewPointer(classDevices, string(*ev.DeviceID))
	}
	if ev.ScenarioID != nil {
		body["scenario_id"] = back4app.NewPointer(classScenarios, string(*ev.ScenarioID))
	}
	id, err := s.client.CreateObject(ctx, classEvents, body)
	return model.ID(id), err
}

func (s *Back4App) CreateMeasurement(ctx context.Context, m model.Measurement) (model.ID, error) {
	body := map[string]any{
		"device_id":    back4app.NewPointer(classDevices, string(m.DeviceID)),
		"measure_time": m.MeasureTime.Unix(),
	}
	if m.Value != nil {
		body["value"] = *m.Value
	}
	id, err := s.client.CreateObject(ctx, classMeasures, body)
	return model.ID(id), err
}

// Clear is not supported: the REST backend has no bulk delete, so a
// regeneration against back4app always appends.
func (s *Back4App) Clear(ctx context.Context) error {
	return errors.New("back4app: clearing existing data is not supported, rerun with clear disabled")
}

// Commit is a no-op; every record was durable upon its successful call.
func (s *Back4App) Commit(ctx context.Context) error { return nil }

func (s *Back4App) Close() error { return nil }
