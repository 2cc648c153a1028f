package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"homeseed/internal/factory"
	"homeseed/internal/model"
	"homeseed/internal/store"
	"homeseed/internal/synth"
)

// Config holds the per-run generation targets.
type Config struct {
	UserTypes       int
	DeviceTypes     int
	Houses          int
	DevicesPerHouse int
	Users           int
	Scenarios       int
	Events          int
	Measurements    int
	LookbackDays    int
	ClearFirst      bool
}

// Summary counts everything one run created.
type Summary struct {
	UserTypes       int
	DeviceTypes     int
	DeviceTypeLinks int
	Houses          int
	Devices         int
	Users           int
	Scenarios       int
	Activations     int
	Conjunctions    int
	Events          int
	Measurements    int
}

// Generator drives one population run: factory calls and persistence calls
// in a fixed dependency order, so every foreign key handed to a child
// record was already assigned by the adapter. The first error aborts the
// whole run.
type Generator struct {
	store  store.Store
	synth  *synth.Synth
	cfg    Config
	logger *zap.Logger
}

func New(st store.Store, s *synth.Synth, cfg Config, logger *zap.Logger) *Generator {
	return &Generator{store: st, synth: s, cfg: cfg, logger: logger}
}

// Run executes the stages: user types → device types → type links →
// houses+devices → users → scenarios → activation/conjunction links →
// events+measurements, then commits the run as one unit where the backend
// supports it.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	if g.cfg.ClearFirst {
		color.Yellow("🗑️  Clearing existing data...")
		if err := g.store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear: %w", err)
		}
	}

	userTypes, deviceTypes, err := g.createReferenceData(ctx, sum)
	if err != nil {
		return nil, err
	}

	houses, devices, err := g.createHousesAndDevices(ctx, deviceTypes, sum)
	if err != nil {
		return nil, err
	}

	users, err := g.createUsers(ctx, userTypes, sum)
	if err != nil {
		return nil, err
	}

	scenarios, err := g.createScenarios(ctx, sum)
	if err != nil {
		return nil, err
	}

	if err := g.createScenarioLinks(ctx, devices, scenarios, sum); err != nil {
		return nil, err
	}

	if err := g.createEventsAndMeasurements(ctx, users, devices, scenarios, sum); err != nil {
		return nil, err
	}

	if err := g.store.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	g.logger.Info("dataset generated",
		zap.Int("houses", len(houses)),
		zap.Int("devices", sum.Devices),
		zap.Int("users", len(users)),
		zap.Int("scenarios", sum.Scenarios),
	)
	return sum, nil
}

// createReferenceData persists the user type and device type catalogs plus
// the many-to-many links between them.
func (g *Generator) createReferenceData(ctx context.Context, sum *Summary) ([]model.UserType, []model.DeviceType, error) {
	color.Cyan("  📝 Creating reference data...")

	userTypes, err := factory.UserTypes(g.cfg.UserTypes)
	if err != nil {
		return nil, nil, err
	}
	for i := range userTypes {
		id, err := g.store.CreateUserType(ctx, userTypes[i])
		if err != nil {
			return nil, nil, err
		}
		userTypes[i].ID = id
	}
	sum.UserTypes = len(userTypes)

	deviceTypes, err := factory.DeviceTypes(g.cfg.DeviceTypes)
	if err != nil {
		return nil, nil, err
	}
	for i := range deviceTypes {
		id, err := g.store.CreateDeviceType(ctx, deviceTypes[i])
		if err != nil {
			return nil, nil, err
		}
		deviceTypes[i].ID = id
	}
	sum.DeviceTypes = len(deviceTypes)

	links, err := factory.DeviceTypeLinks(g.synth, deviceTypes, userTypes)
	if err != nil {
		return nil, nil, err
	}
	for _, link := range links {
		if _, err := g.store.CreateDeviceTypeUserType(ctx, link); err != nil {
			return nil, nil, err
		}
	}
	sum.DeviceTypeLinks = len(links)

	return userTypes, deviceTypes, nil
}

// createHousesAndDevices persists each house and immediately the devices
// instantiated for it, so device foreign keys always point at an already
// assigned house id.
func (g *Generator) createHousesAndDevices(ctx context.Context, deviceTypes []model.DeviceType, sum *Summary) ([]model.House, []model.Device, error) {
	color.Cyan("  📝 Creating %d houses with devices...", g.cfg.Houses)

	houses := make([]model.House, 0, g.cfg.Houses)
	var devices []model.Device
	for i := 0; i < g.cfg.Houses; i++ {
		house := factory.House(g.synth)
		id, err := g.store.CreateHouse(ctx, house)
		if err != nil {
			return nil, nil, err
		}
		house.ID = id
		houses = append(houses, house)

		houseDevices, err := factory.HouseDevices(g.synth, house.ID, deviceTypes, g.cfg.DevicesPerHouse)
		if err != nil {
			return nil, nil, err
		}
		for _, dev := range houseDevices {
			devID, err := g.store.CreateDevice(ctx, dev)
			if err != nil {
				return nil, nil, err
			}
			dev.ID = devID
			devices = append(devices, dev)
		}
	}
	sum.Houses = len(houses)
	sum.Devices = len(devices)
	return houses, devices, nil
}

func (g *Generator) createUsers(ctx context.Context, userTypes []model.UserType, sum *Summary) ([]model.User, error) {
	color.Cyan("  📝 Creating %d users...", g.cfg.Users)

	users := make([]model.User, 0, g.cfg.Users)
	for i := 0; i < g.cfg.Users; i++ {
		user, err := factory.User(g.synth, userTypes)
		if err != nil {
			return nil, err
		}
		id, err := g.store.CreateUser(ctx, user)
		if err != nil {
			return nil, err
		}
		user.ID = id
		users = append(users, user)
	}
	sum.Users = len(users)
	return users, nil
}

func (g *Generator) createScenarios(ctx context.Context, sum *Summary) ([]model.Scenario, error) {
	color.Cyan("  📝 Creating %d scenarios...", g.cfg.Scenarios)

	scenarios := make([]model.Scenario, 0, g.cfg.Scenarios)
	for i := 0; i < g.cfg.Scenarios; i++ {
		sc := factory.Scenario(g.synth)
		id, err := g.store.CreateScenario(ctx, sc)
		if err != nil {
			return nil, err
		}
		sc.ID = id
		scenarios = append(scenarios, sc)
	}
	sum.Scenarios = len(scenarios)
	return scenarios, nil
}

func (g *Generator) createScenarioLinks(ctx context.Context, devices []model.Device, scenarios []model.Scenario, sum *Summary) error {
	color.Cyan("  📝 Linking scenarios to devices...")

	for _, sc := range scenarios {
		activations, conjunctions, err := factory.ScenarioLinks(g.synth, sc.ID, devices)
		if err != nil {
			return err
		}
		for _, a := range activations {
			if _, err := g.store.CreateActivation(ctx, a); err != nil {
				return err
			}
		}
		for _, c := range conjunctions {
			if _, err := g.store.CreateConjunction(ctx, c); err != nil {
				return err
			}
		}
		sum.Activations += len(activations)
		sum.Conjunctions += len(conjunctions)
	}
	return nil
}

func (g *Generator) createEventsAndMeasurements(ctx context.Context, users []model.User, devices []model.Device, scenarios []model.Scenario, sum *Summary) error {
	color.Cyan("  📝 Creating %d events and %d measurements...", g.cfg.Events, g.cfg.Measurements)

	for i := 0; i < g.cfg.Events; i++ {
		ev := factory.Event(g.synth, users, devices, scenarios)
		if _, err := g.store.CreateEvent(ctx, ev); err != nil {
			return err
		}
	}
	sum.Events = g.cfg.Events

	now := time.Now().UTC()
	for i := 0; i < g.cfg.Measurements; i++ {
		m, err := factory.Measurement(g.synth, now, devices, g.cfg.LookbackDays)
		if err != nil {
			return err
		}
		if _, err := g.store.CreateMeasurement(ctx, m); err != nil {
			return err
		}
	}
	sum.Measurements = g.cfg.Measurements

	return nil
}
