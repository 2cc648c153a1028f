package query

import (
	"context"
	"fmt"
	"time"

	"homeseed/internal/back4app"
	"homeseed/internal/model"
)

// Cloud function names are part of the Back4App application contract.
const (
	fnFindUserDeviceTypes        = "findUserDeviceTypes"
	fnHousesWithActivatedDevices = "getHousesWithActivatedDevices"
	fnMaxThermostatValue         = "getMaxThermostatValue"
)

// Back4App answers the facade queries by calling the application's cloud
// functions.
type Back4App struct {
	client *back4app.Client
}

func NewBack4App(client *back4app.Client) *Back4App {
	return &Back4App{client: client}
}

func (q *Back4App) FindUserDeviceTypes(ctx context.Context, name string) ([]UserDeviceType, error) {
	var result []struct {
		UserName   string `json:"userName"`
		UserType   string `json:"userType"`
		DeviceType string `json:"deviceType"`
		DeviceName string `json:"deviceName"`
	}
	err := q.client.CallFunction(ctx, fnFindUserDeviceTypes, map[string]any{"name": name}, &result)
	if err != nil {
		return nil, err
	}

	out := make([]UserDeviceType, 0, len(result))
	for _, r := range result {
		out = append(out, UserDeviceType{
			UserName:   r.UserName,
			UserType:   r.UserType,
			DeviceType: r.DeviceType,
			DeviceName: r.DeviceName,
		})
	}
	return out, nil
}

func (q *Back4App) HousesWithActivatedDevices(ctx context.Context) ([]House, error) {
	var result struct {
		Houses []struct {
			ObjectID string `json:"objectId"`
			Address  string `json:"address"`
		} `json:"houses"`
	}
	if err := q.client.CallFunction(ctx, fnHousesWithActivatedDevices, nil, &result); err != nil {
		return nil, err
	}

	out := make([]House, 0, len(result.Houses))
	for _, h := range result.Houses {
		out = append(out, House{ID: model.ID(h.ObjectID), Address: h.Address})
	}
	return out, nil
}

func (q *Back4App) MaxThermostatMeasurement(ctx context.Context) (*ThermostatReading, error) {
	var result struct {
		Address     string   `json:"address"`
		MeasureTime int64    `json:"measure_time"`
		Value       *float64 `json:"value"`
	}
	if err := q.client.CallFunction(ctx, fnMaxThermostatValue, nil, &result); err != nil {
		return nil, err
	}
	if result.Value == nil {
		return nil, fmt.Errorf("%w: no thermostat measurements", ErrNoResult)
	}
	return &ThermostatReading{
		Address:     result.Address,
		MeasureTime: time.Unix(result.MeasureTime, 0).UTC(),
		Value:       *result.Value,
	}, nil
}
