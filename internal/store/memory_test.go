package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"homeseed/internal/model"
	"homeseed/internal/query"
)

func seedMemory(t *testing.T) *Memory {
	t.Helper()
	ctx := context.Background()
	mem := NewMemory()

	adultID, err := mem.CreateUserType(ctx, model.UserType{Type: "Adult"})
	require.NoError(t, err)
	childID, err := mem.CreateUserType(ctx, model.UserType{Type: "Child"})
	require.NoError(t, err)

	lampID, err := mem.CreateDeviceType(ctx, model.DeviceType{Type: "light", Name: "Smart lamp"})
	require.NoError(t, err)
	thermoID, err := mem.CreateDeviceType(ctx, model.DeviceType{Type: "thermostat", Name: "Thermostat"})
	require.NoError(t, err)

	_, err = mem.CreateDeviceTypeUserType(ctx, model.DeviceTypeUserType{DeviceTypeID: lampID, UserTypeID: adultID})
	require.NoError(t, err)
	_, err = mem.CreateDeviceTypeUserType(ctx, model.DeviceTypeUserType{DeviceTypeID: thermoID, UserTypeID: adultID})
	require.NoError(t, err)
	_, err = mem.CreateDeviceTypeUserType(ctx, model.DeviceTypeUserType{DeviceTypeID: lampID, UserTypeID: childID})
	require.NoError(t, err)

	houseA, err := mem.CreateHouse(ctx, model.House{Address: "1 Apple Rd"})
	require.NoError(t, err)
	houseB, err := mem.CreateHouse(ctx, model.House{Address: "2 Birch St"})
	require.NoError(t, err)

	lampA, err := mem.CreateDevice(ctx, model.Device{HouseID: houseA, DeviceTypeID: lampID})
	require.NoError(t, err)
	thermoA, err := mem.CreateDevice(ctx, model.Device{HouseID: houseA, DeviceTypeID: thermoID})
	require.NoError(t, err)
	thermoB, err := mem.CreateDevice(ctx, model.Device{HouseID: houseB, DeviceTypeID: thermoID})
	require.NoError(t, err)

	_, err = mem.CreateUser(ctx, model.User{Name: "Ada", UserTypeID: adultID})
	require.NoError(t, err)
	_, err = mem.CreateUser(ctx, model.User{Name: "Finn", UserTypeID: childID})
	require.NoError(t, err)

	scID, err := mem.CreateScenario(ctx, model.Scenario{TimeFrom: 420, TimeTill: 600})
	require.NoError(t, err)

	_, err = mem.CreateActivation(ctx, model.Activation{ScenarioID: scID, DeviceID: lampA, IsOn: true})
	require.NoError(t, err)
	_, err = mem.CreateActivation(ctx, model.Activation{ScenarioID: scID, DeviceID: thermoA, IsOn: false})
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	vals := []struct {
		dev model.ID
		v   float64
		ts  time.Time
	}{
		{thermoA, 19.5, now.Add(-time.Hour)},
		{thermoB, 23.25, now.Add(-2 * time.Hour)},
		{thermoA, 23.25, now.Add(-3 * time.Hour)},
		{lampA, 99.0, now.Add(-4 * time.Hour)},
	}
	for _, m := range vals {
		v := m.v
		_, err = mem.CreateMeasurement(ctx, model.Measurement{DeviceID: m.dev, MeasureTime: m.ts, Value: &v})
		require.NoError(t, err)
	}

	return mem
}

func TestMemoryFindUserDeviceTypes(t *testing.T) {
	mem := seedMemory(t)

	rows, err := mem.FindUserDeviceTypes(context.Background(), "Ada")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		require.Equal(t, "Ada", r.UserName)
		require.Equal(t, "Adult", r.UserType)
	}

	rows, err = mem.FindUserDeviceTypes(context.Background(), "Finn")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "light", rows[0].DeviceType)
	require.Equal(t, "Smart lamp", rows[0].DeviceName)

	rows, err = mem.FindUserDeviceTypes(context.Background(), "Nobody")
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestMemoryHousesWithActivatedDevices(t *testing.T) {
	mem := seedMemory(t)

	houses, err := mem.HousesWithActivatedDevices(context.Background())
	require.NoError(t, err)
	// Both activated devices live in the same house, which appears once.
	require.Len(t, houses, 1)
	require.Equal(t, "1 Apple Rd", houses[0].Address)
}

func TestMemoryMaxThermostatMeasurement(t *testing.T) {
	mem := seedMemory(t)

	reading, err := mem.MaxThermostatMeasurement(context.Background())
	require.NoError(t, err)
	// The lamp's 99.0 reading does not count; on the 23.25 tie the
	// first-stored row wins, which is the one from house B.
	require.Equal(t, 23.25, reading.Value)
	require.Equal(t, "2 Birch St", reading.Address)
}

func TestMemoryMaxThermostatMeasurementSkipsNullValues(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	thermoType, err := mem.CreateDeviceType(ctx, model.DeviceType{Type: "thermostat", Name: "Thermostat"})
	require.NoError(t, err)
	houseID, err := mem.CreateHouse(ctx, model.House{Address: "3 Cedar Ln"})
	require.NoError(t, err)
	devID, err := mem.CreateDevice(ctx, model.Device{HouseID: houseID, DeviceTypeID: thermoType})
	require.NoError(t, err)

	_, err = mem.CreateMeasurement(ctx, model.Measurement{
		DeviceID:    devID,
		MeasureTime: time.Now(),
		Value:       nil,
	})
	require.NoError(t, err)

	_, err = mem.MaxThermostatMeasurement(ctx)
	require.ErrorIs(t, err, query.ErrNoResult)
}

func TestMemoryMaxThermostatMeasurementEmpty(t *testing.T) {
	mem := NewMemory()
	_, err := mem.MaxThermostatMeasurement(context.Background())
	require.ErrorIs(t, err, query.ErrNoResult)
}

func TestMemoryClear(t *testing.T) {
	mem := seedMemory(t)
	require.NoError(t, mem.Clear(context.Background()))
	require.Empty(t, mem.Houses)
	require.Empty(t, mem.Measurements)

	houses, err := mem.HousesWithActivatedDevices(context.Background())
	require.NoError(t, err)
	require.Empty(t, houses)
}
