package factory

import (
	"errors"
	"fmt"
	"time"

	"homeseed/internal/model"
	"homeseed/internal/synth"
)

// ErrNoCandidates is returned when a constructor must sample from a parent
// collection that is empty (or too small). It always means the caller broke
// the stage ordering, so the whole run should abort.
var ErrNoCandidates = errors.New("no candidate parents to sample from")

// The reference catalogs are fixed; configuration only chooses how many
// entries of each to use.
var userTypeCatalog = []string{"Adult", "Child", "Guest", "Senior"}

var deviceTypeCatalog = []model.DeviceType{
	{Type: "light", Name: "Smart lamp"},
	{Type: "socket", Name: "Smart socket"},
	{Type: "thermostat", Name: "Thermostat"},
	{Type: "motion", Name: "Motion sensor"},
	{Type: "door", Name: "Door sensor"},
	{Type: "camera", Name: "Camera"},
}

// UserTypes returns the first n catalog user types.
func UserTypes(n int) ([]model.UserType, error) {
	if n < 1 || n > len(userTypeCatalog) {
		return nil, fmt.Errorf("user type count %d out of range [1, %d]", n, len(userTypeCatalog))
	}
	out := make([]model.UserType, n)
	for i := 0; i < n; i++ {
		out[i] = model.UserType{Type: userTypeCatalog[i]}
	}
	return out, nil
}

// DeviceTypes returns the first n catalog device types.
func DeviceTypes(n int) ([]model.DeviceType, error) {
	if n < 1 || n > len(deviceTypeCatalog) {
		return nil, fmt.Errorf("device type count %d out of range [1, %d]", n, len(deviceTypeCatalog))
	}
	out := make([]model.DeviceType, n)
	copy(out, deviceTypeCatalog[:n])
	return out, nil
}

// DeviceTypeLinks links every device type to a non-empty random subset of
// user types, sampled without replacement.
func DeviceTypeLinks(s *synth.Synth, deviceTypes []model.DeviceType, userTypes []model.UserType) ([]model.DeviceTypeUserType, error) {
	if len(deviceTypes) == 0 || len(userTypes) == 0 {
		return nil, fmt.Errorf("device/user type links: %w", ErrNoCandidates)
	}
	var links []model.DeviceTypeUserType
	for _, dt := range deviceTypes {
		k := s.IntBetween(1, len(userTypes))
		for _, ut := range synth.Sample(s, userTypes, k) {
			links = append(links, model.DeviceTypeUserType{
				DeviceTypeID: dt.ID,
				UserTypeID:   ut.ID,
			})
		}
	}
	return links, nil
}

// House constructs a house with a fake address.
func House(s *synth.Synth) model.House {
	return model.House{Address: s.Address()}
}

// HouseDevices instantiates one device per sampled device type for a house:
// min(perHouse, available types) distinct types, without replacement.
func HouseDevices(s *synth.Synth, houseID model.ID, deviceTypes []model.DeviceType, perHouse int) ([]model.Device, error) {
	if len(deviceTypes) == 0 {
		return nil, fmt.Errorf("house devices: %w", ErrNoCandidates)
	}
	k := perHouse
	if k > len(deviceTypes) {
		k = len(deviceTypes)
	}
	devices := make([]model.Device, 0, k)
	for _, dt := range synth.Sample(s, deviceTypes, k) {
		devices = append(devices, model.Device{
			HouseID:      houseID,
			DeviceTypeID: dt.ID,
		})
	}
	return devices, nil
}

// User constructs a user with a fake name and a random user type.
func User(s *synth.Synth, userTypes []model.UserType) (model.User, error) {
	if len(userTypes) == 0 {
		return model.User{}, fmt.Errorf("user: %w", ErrNoCandidates)
	}
	return model.User{
		Name:       s.PersonName(),
		UserTypeID: synth.Pick(s, userTypes).ID,
	}, nil
}

// Scenario samples an activation window. The start falls in hours [6, 22];
// the end falls in a strictly later hour, or is pinned to 23:59 when the
// start already landed in hour 22. The result always satisfies
// TimeTill > TimeFrom with both in [0, 1439].
func Scenario(s *synth.Synth) model.Scenario {
	from := s.MinuteBetween(6, 22)
	till := 23*60 + 59
	if from/60 < 22 {
		till = s.MinuteBetween(from/60+1, 23)
	}
	return model.Scenario{TimeFrom: from, TimeTill: till}
}

// ScenarioLinks samples 2..min(6, len(devices)) devices for a scenario and
// independently decides, per device, whether to create an activation
// (p=0.75, with affect_time populated at p=0.4) and a conjunction (p=0.35).
func ScenarioLinks(s *synth.Synth, scenarioID model.ID, devices []model.Device) ([]model.Activation, []model.Conjunction, error) {
	if len(devices) < 2 {
		return nil, nil, fmt.Errorf("scenario links: %w", ErrNoCandidates)
	}
	max := 6
	if len(devices) < max {
		max = len(devices)
	}
	k := s.IntBetween(2, max)

	var activations []model.Activation
	var conjunctions []model.Conjunction
	for _, dev := range synth.Sample(s, devices, k) {
		if s.Chance(0.75) {
			act := model.Activation{
				ScenarioID: scenarioID,
				DeviceID:   dev.ID,
				IsOn:       s.Bool(),
			}
			if s.Chance(0.4) {
				at := s.MinuteBetween(0, 23)
				act.AffectTime = &at
			}
			activations = append(activations, act)
		}
		if s.Chance(0.35) {
			conjunctions = append(conjunctions, model.Conjunction{
				ScenarioID: scenarioID,
				DeviceID:   dev.ID,
				IsOn:       s.Bool(),
			})
		}
	}
	return activations, conjunctions, nil
}

// Event constructs an event whose value is a fair coin flip and whose three
// references are each, independently, either absent or a uniformly random
// existing entity. All three absent at once is allowed.
func Event(s *synth.Synth, users []model.User, devices []model.Device, scenarios []model.Scenario) model.Event {
	ev := model.Event{Value: s.Bool()}
	if len(users) > 0 && s.Bool() {
		id := synth.Pick(s, users).ID
		ev.UserID = &id
	}
	if len(devices) > 0 && s.Bool() {
		id := synth.Pick(s, devices).ID
		ev.DeviceID = &id
	}
	if len(scenarios) > 0 && s.Bool() {
		id := synth.Pick(s, scenarios).ID
		ev.ScenarioID = &id
	}
	return ev
}

// Measurement attaches a reading to a random device, timestamped a uniform
// 0..lookbackDays days and 0..23 hours before now.
func Measurement(s *synth.Synth, now time.Time, devices []model.Device, lookbackDays int) (model.Measurement, error) {
	if len(devices) == 0 {
		return model.Measurement{}, fmt.Errorf("measurement: %w", ErrNoCandidates)
	}
	v := s.MeasureValue(0, 100)
	return model.Measurement{
		DeviceID:    synth.Pick(s, devices).ID,
		MeasureTime: s.PastTime(now, lookbackDays),
		Value:       &v,
	}, nil
}
