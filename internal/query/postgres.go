package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homeseed/internal/model"
)

// Postgres answers the facade queries with joins over the relational
// schema.
type Postgres struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{
		pool: pool,
		qb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (q *Postgres) FindUserDeviceTypes(ctx context.Context, name string) ([]UserDeviceType, error) {
	sql, args, err := q.qb.
		Select("u.name", "ut.type", "dt.type", "dt.name").
		From("users u").
		Join("user_types ut ON ut.id = u.user_type_id").
		Join("device_type_user_types dtut ON dtut.user_type_id = ut.id").
		Join("device_types dt ON dt.id = dtut.device_type_id").
		Where(squirrel.Eq{"u.name": name}).
		OrderBy("u.id", "dt.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("query: build findUserDeviceTypes: %w", err)
	}

	rows, err := q.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: findUserDeviceTypes: %w", err)
	}
	defer rows.Close()

	var out []UserDeviceType
	for rows.Next() {
		var r UserDeviceType
		if err := rows.Scan(&r.UserName, &r.UserType, &r.DeviceType, &r.DeviceName); err != nil {
			return nil, fmt.Errorf("query: findUserDeviceTypes scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *Postgres) HousesWithActivatedDevices(ctx context.Context) ([]House, error) {
	sql, args, err := q.qb.
		Select("h.id", "h.address").
		Distinct().
		From("houses h").
		Join("devices d ON d.house_id = h.id").
		Join("activations a ON a.device_id = d.id").
		OrderBy("h.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("query: build housesWithActivatedDevices: %w", err)
	}

	rows, err := q.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: housesWithActivatedDevices: %w", err)
	}
	defer rows.Close()

	var out []House
	for rows.Next() {
		var id int64
		var addr string
		if err := rows.Scan(&id, &addr); err != nil {
			return nil, fmt.Errorf("query: housesWithActivatedDevices scan: %w", err)
		}
		out = append(out, House{ID: model.ID(strconv.FormatInt(id, 10)), Address: addr})
	}
	return out, rows.Err()
}

func (q *Postgres) MaxThermostatMeasurement(ctx context.Context) (*ThermostatReading, error) {
	// Ties on value resolve to the earliest inserted row.
	sql, args, err := q.qb.
		Select("h.address", "m.measure_time", "m.value").
		From("measurements m").
		Join("devices d ON d.id = m.device_id").
		Join("device_types dt ON dt.id = d.device_type_id").
		Join("houses h ON h.id = d.house_id").
		Where(squirrel.Eq{"dt.type": "thermostat"}).
		Where("m.value IS NOT NULL").
		OrderBy("m.value DESC", "m.id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("query: build maxThermostatMeasurement: %w", err)
	}

	var r ThermostatReading
	err = q.pool.QueryRow(ctx, sql, args...).Scan(&r.Address, &r.MeasureTime, &r.Value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoResult
	}
	if err != nil {
		return nil, fmt.Errorf("query: maxThermostatMeasurement: %w", err)
	}
	return &r, nil
}
