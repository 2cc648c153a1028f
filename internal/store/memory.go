package store

import (
	"context"

	"github.com/google/uuid"

	"homeseed/internal/model"
	"homeseed/internal/query"
)

// Memory keeps everything in slices, in insertion order. It backs dry runs
// and tests, and also implements query.Querier so the facade queries can be
// exercised without a database. Generation is single-threaded, so no
// locking is needed.
type Memory struct {
	UserTypes       []model.UserType
	DeviceTypes     []model.DeviceType
	DeviceTypeLinks []model.DeviceTypeUserType
	Houses          []model.House
	Devices         []model.Device
	Users           []model.User
	Scenarios       []model.Scenario
	Activations     []model.Activation
	Conjunctions    []model.Conjunction
	Events          []model.Event
	Measurements    []model.Measurement
}

func NewMemory() *Memory {
	return &Memory{}
}

func newID() model.ID {
	return model.ID(uuid.NewString())
}

func (s *Memory) CreateUserType(ctx context.Context, ut model.UserType) (model.ID, error) {
	ut.ID = newID()
	s.UserTypes = append(s.UserTypes, ut)
	return ut.ID, nil
}

func (s *Memory) CreateDeviceType(ctx context.Context, dt model.DeviceType) (model.ID, error) {
	dt.ID = newID()
	s.DeviceTypes = append(s.DeviceTypes, dt)
	return dt.ID, nil
}

func (s *Memory) CreateDeviceTypeUserType(ctx context.Context, link model.DeviceTypeUserType) (model.ID, error) {
	link.ID = newID()
	s.DeviceTypeLinks = append(s.DeviceTypeLinks, link)
	return link.ID, nil
}

func (s *Memory) CreateHouse(ctx context.Context, h model.House) (model.ID, error) {
	h.ID = newID()
	s.Houses = append(s.Houses, h)
	return h.ID, nil
}

func (s *Memory) CreateDevice(ctx context.Context, d model.Device) (model.ID, error) {
	d.ID = newID()
	s.Devices = append(s.Devices, d)
	return d.ID, nil
}

func (s *Memory) CreateUser(ctx context.Context, u model.User) (model.ID, error) {
	u.ID = newID()
	s.Users = append(s.Users, u)
	return u.ID, nil
}

func (s *Memory) CreateScenario(ctx context.Context, sc model.Scenario) (model.ID, error) {
	sc.ID = newID()
	s.Scenarios = append(s.Scenarios, sc)
	return sc.ID, nil
}

func (s *Memory) CreateActivation(ctx context.Context, a model.Activation) (model.ID, error) {
	s.Activations = append(s.Activations, a)
	return "", nil
}

func (s *Memory) CreateConjunction(ctx context.Context, c model.Conjunction) (model.ID, error) {
	s.Conjunctions = append(s.Conjunctions, c)
	return "", nil
}

func (s *Memory) CreateEvent(ctx context.Context, ev model.Event) (model.ID, error) {
	ev.ID = newID()
	s.Events = append(s.Events, ev)
	return ev.ID, nil
}

func (s *Memory) CreateMeasurement(ctx context.Context, m model.Measurement) (model.ID, error) {
	m.ID = newID()
	s.Measurements = append(s.Measurements, m)
	return m.ID, nil
}

func (s *Memory) Clear(ctx context.Context) error {
	*s = Memory{}
	return nil
}

func (s *Memory) Commit(ctx context.Context) error { return nil }

func (s *Memory) Close() error { return nil }

// ----- query.Querier -----

func (s *Memory) FindUserDeviceTypes(ctx context.Context, name string) ([]query.UserDeviceType, error) {
	userTypes := make(map[model.ID]model.UserType, len(s.UserTypes))
	for _, ut := range s.UserTypes {
		userTypes[ut.ID] = ut
	}
	deviceTypes := make(map[model.ID]model.DeviceType, len(s.DeviceTypes))
	for _, dt := range s.DeviceTypes {
		deviceTypes[dt.ID] = dt
	}

	var out []query.UserDeviceType
	for _, u := range s.Users {
		if u.Name != name {
			continue
		}
		for _, link := range s.DeviceTypeLinks {
			if link.UserTypeID != u.UserTypeID {
				continue
			}
			ut := userTypes[u.UserTypeID]
			dt := deviceTypes[link.DeviceTypeID]
			out = append(out, query.UserDeviceType{
				UserName:   u.Name,
				UserType:   ut.Type,
				DeviceType: dt.Type,
				DeviceName: dt.Name,
			})
		}
	}
	return out, nil
}

func (s *Memory) HousesWithActivatedDevices(ctx context.Context) ([]query.House, error) {
	activated := make(map[model.ID]bool, len(s.Activations))
	for _, a := range s.Activations {
		activated[a.DeviceID] = true
	}
	houseIDs := make(map[model.ID]bool)
	for _, d := range s.Devices {
		if activated[d.ID] {
			houseIDs[d.HouseID] = true
		}
	}

	var out []query.House
	for _, h := range s.Houses {
		if houseIDs[h.ID] {
			out = append(out, query.House{ID: h.ID, Address: h.Address})
		}
	}
	return out, nil
}

func (s *Memory) MaxThermostatMeasurement(ctx context.Context) (*query.ThermostatReading, error) {
	thermostats := make(map[model.ID]bool)
	for _, dt := range s.DeviceTypes {
		if dt.Type != "thermostat" {
			continue
		}
		for _, d := range s.Devices {
			if d.DeviceTypeID == dt.ID {
				thermostats[d.ID] = true
			}
		}
	}

	houses := make(map[model.ID]model.House, len(s.Houses))
	for _, h := range s.Houses {
		houses[h.ID] = h
	}
	deviceHouse := make(map[model.ID]model.ID, len(s.Devices))
	for _, d := range s.Devices {
		deviceHouse[d.ID] = d.HouseID
	}

	var best *query.ThermostatReading
	for _, m := range s.Measurements {
		if !thermostats[m.DeviceID] || m.Value == nil {
			continue
		}
		// Strictly greater keeps the first-stored row on ties.
		if best == nil || *m.Value > best.Value {
			best = &query.ThermostatReading{
				Address:     houses[deviceHouse[m.DeviceID]].Address,
				MeasureTime: m.MeasureTime,
				Value:       *m.Value,
			}
		}
	}
	if best == nil {
		return nil, query.ErrNoResult
	}
	return best, nil
}
