package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homeseed/internal/model"
)

// Postgres runs one generation as a single transaction. Identifiers are
// assigned by the database via RETURNING as each record is inserted, so
// they can be used as foreign keys immediately, but nothing is durable
// until Commit.
type Postgres struct {
	pool      *pgxpool.Pool
	tx        pgx.Tx
	committed bool
}

func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: begin transaction: %w", err)
	}
	return &Postgres{pool: pool, tx: tx}, nil
}

// intID parses an adapter-assigned identifier back into the integer key
// the database expects as a parameter.
func intID(id model.ID) (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("postgres: malformed id %q: %w", id, err)
	}
	return n, nil
}

func optIntID(id *model.ID) (*int64, error) {
	if id == nil {
		return nil, nil
	}
	n, err := intID(*id)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Postgres) insertReturningID(ctx context.Context, query string, args ...any) (model.ID, error) {
	var id int64
	if err := s.tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", err
	}
	return model.ID(strconv.FormatInt(id, 10)), nil
}

func (s *Postgres) CreateUserType(ctx context.Context, ut model.UserType) (model.ID, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO user_types (type) VALUES ($1) RETURNING id`, ut.Type)
	if err != nil {
		return "", fmt.Errorf("postgres: insert user type: %w", err)
	}
	return id, nil
}

func (s *Postgres) CreateDeviceType(ctx context.Context, dt model.DeviceType) (model.ID, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO device_types (type, name) VALUES ($1, $2) RETURNING id`, dt.Type, dt.Name)
	if err != nil {
		return "", fmt.Errorf("postgres: insert device type: %w", err)
	}
	return id, nil
}

func (s *Postgres) CreateDeviceTypeUserType(ctx context.Context, link model.DeviceTypeUserType) (model.ID, error) {
	dtID, err := intID(link.DeviceTypeID)
	if err != nil {
		return "", err
	}
	utID, err := intID(link.UserTypeID)
	if err != nil {
		return "", err
	}
	id, err := s.insertReturningID(ctx,
		`INSERT INTO device_type_user_types (device_type_id, user_type_id) VALUES ($1, $2) RETURNING id`,
		dtID, utID)
	if err != nil {
		return "", fmt.Errorf("postgres: insert device/user type link: %w", err)
	}
	return id, nil
}

func (s *Postgres) CreateHouse(ctx context.Context, h model.House) (model.ID, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO houses (address) VALUES ($1) RETURNING id`, h.Address)
	if err != nil {
		return "", fmt.Errorf("postgres: insert house: %w", err)
	}
	return id, nil
}

func (s *Postgres) CreateDevice(ctx context.Context, d model.Device) (model.ID, error) {
	houseID, err := intID(d.HouseID)
	if err != nil {
		return "", err
	}
	dtID, err := intID(d.DeviceTypeID)
	if err != nil {
		return "", err
	}
	id, err := s.insertReturningID(ctx,
		`INSERT INTO devices (house_id, device_type_id) VALUES ($1, $2) RETURNING id`,
		houseID, dtID)
	if err != nil {
		return "", fmt.Errorf("postgres: insert device: %w", err)
	}
	return id, nil
}

func (s *Postgres) CreateUser(ctx context.Context, u model.User) (model.ID, error) {
	utID, err := intID(u.UserTypeID)
	if err != nil {
		return "", err
	}
	id, err := s.insertReturningID(ctx,
		`INSERT INTO users (name, user_type_id) VALUES ($1, $2) RETURNING id`, u.Name, utID)
	if err != nil {
		return "", fmt.Errorf("postgres: insert user: %w", err)
	}
	return id, nil
}

func (s *Postgres) CreateScenario(ctx context.Context, sc model.Scenario) (model.ID, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO scenarios (time_from, time_till) VALUES ($1, $2) RETURNING id`,
		sc.TimeFrom, sc.TimeTill)
	if err != nil {
		return "", fmt.Errorf("postgres: insert scenario: %w", err)
	}
	return id, nil
}

func (s *Postgres) CreateActivation(ctx context.Context, a model.Activation) (model.ID, error) {
	scID, err := intID(a.ScenarioID)
	if err != nil {
		return "", err
	}
	devID, err := intID(a.DeviceID)
	if err != nil {
		return "", err
	}
	_, err = s.tx.Exec(ctx,
		`INSERT INTO activations (scenario_id, device_id, is_on, affect_time) VALUES ($1, $2, $3, $4)`,
		scID, devID, a.IsOn, a.AffectTime)
	if err != nil {
		return "", fmt.Errorf("postgres: insert activation: %w", err)
	}
	// Composite key; there is no single id to hand back.
	return "", nil
}

func (s *Postgres) CreateConjunction(ctx context.Context, c model.Conjunction) (model.ID, error) {
	scID, err := intID(c.ScenarioID)
	if err != nil {
		return "", err
	}
	devID, err := intID(c.DeviceID)
	if err != nil {
		return "", err
	}
	_, err = s.tx.Exec(ctx,
		`INSERT INTO conjunctions (scenario_id, device_id, is_on) VALUES ($1, $2, $3)`,
		scID, devID, c.IsOn)
	if err != nil {
		return "", fmt.Errorf("postgres: insert conjunction: %w", err)
	}
	return "", nil
}

func (s *Postgres) CreateEvent(ctx context.Context, ev model.Event) (model.ID, error) {
	userID, err := optIntID(ev.UserID)
	if err != nil {
		return "", err
	}
	devID, err := optIntID(ev.DeviceID)
	if err != nil {
		return "", err
	}
	scID, err := optIntID(ev.ScenarioID)
	if err != nil {
		return "", err
	}
	id, err := s.insertReturningID(ctx,
		`INSERT INTO events (value, user_id, device_id, scenario_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		ev.Value, userID, devID, scID)
	if err != nil {
		return "", fmt.Errorf("postgres: insert event: %w", err)
	}
	return id, nil
}

func (s *Postgres) CreateMeasurement(ctx context.Context, m model.Measurement) (model.ID, error) {
	devID, err := intID(m.DeviceID)
	if err != nil {
		return "", err
	}
	id, err := s.insertReturningID(ctx,
		`INSERT INTO measurements (device_id, measure_time, value) VALUES ($1, $2, $3) RETURNING id`,
		devID, m.MeasureTime, m.Value)
	if err != nil {
		return "", fmt.Errorf("postgres: insert measurement: %w", err)
	}
	return id, nil
}

// Clear deletes every table in reverse dependency order, inside the same
// transaction the subsequent inserts will use.
func (s *Postgres) Clear(ctx context.Context) error {
	for _, table := range model.ReverseTables() {
		if _, err := s.tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("postgres: clear %s: %w", table, err)
		}
	}
	return nil
}

func (s *Postgres) Commit(ctx context.Context) error {
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	s.committed = true
	return nil
}

func (s *Postgres) Close() error {
	if !s.committed {
		// Abandoned run; throw the uncommitted work away.
		_ = s.tx.Rollback(context.Background())
	}
	s.pool.Close()
	return nil
}
