package model

import "time"

// ID is an opaque, adapter-assigned identifier. The postgres backend formats
// its integer primary keys into it; the back4app backend stores Parse
// objectIds directly. An empty ID means the record has not been persisted.
type ID string

// UserType is a reference-table entry ("Adult", "Child", ...).
type UserType struct {
	ID   ID
	Type string
}

// DeviceType is a reference-table entry describing a kind of device.
type DeviceType struct {
	ID   ID
	Type string // machine-readable kind: "light", "thermostat", ...
	Name string // display name
}

// DeviceTypeUserType links a device type to a user type allowed to use it.
type DeviceTypeUserType struct {
	ID           ID
	DeviceTypeID ID
	UserTypeID   ID
}

type House struct {
	ID      ID
	Address string
}

type Device struct {
	ID           ID
	HouseID      ID
	DeviceTypeID ID
}

type User struct {
	ID         ID
	Name       string
	UserTypeID ID
}

// Scenario is an automation window. TimeFrom and TimeTill are minutes of
// day in [0, 1439]; TimeTill is always strictly greater than TimeFrom.
type Scenario struct {
	ID       ID
	TimeFrom int
	TimeTill int
}

// Activation switches a device on or off when a scenario fires.
// AffectTime, when set, is a minute of day.
type Activation struct {
	ScenarioID ID
	DeviceID   ID
	IsOn       bool
	AffectTime *int
}

// Conjunction marks a device state as a necessary condition for a scenario.
type Conjunction struct {
	ScenarioID ID
	DeviceID   ID
	IsOn       bool
}

// Event records something happening. Each reference is independently
// optional; an event may relate to no user, device or scenario at all.
type Event struct {
	ID         ID
	Value      bool
	UserID     *ID
	DeviceID   *ID
	ScenarioID *ID
}

type Measurement struct {
	ID          ID
	DeviceID    ID
	MeasureTime time.Time
	Value       *float64
}

// Tables lists every entity table in dependency order: any table appears
// after every table it references. The generator creates records in this
// order and clears them in the reverse one.
var Tables = []string{
	"user_types",
	"device_types",
	"device_type_user_types",
	"houses",
	"devices",
	"users",
	"scenarios",
	"activations",
	"conjunctions",
	"events",
	"measurements",
}

// ReverseTables returns Tables children-first, for clearing.
func ReverseTables() []string {
	out := make([]string, len(Tables))
	for i, name := range Tables {
		out[len(Tables)-1-i] = name
	}
	return out
}
