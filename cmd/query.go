package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"homeseed/internal/back4app"
	"homeseed/internal/config"
	"homeseed/internal/logging"
	"homeseed/internal/query"
)

// The three query functions are dispatched by exact name; anything else is
// an unknown-command error.
const (
	queryFindUserDeviceTypes   = "findUserDeviceTypes"
	queryHousesWithActivations = "getHousesWithActivatedDevices"
	queryMaxThermostatValue    = "getMaxThermostatValue"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one of the canned read queries against the populated backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync()

		ctx := context.Background()

		q, closeFn, err := openQuerier(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		return runPrompt(ctx, q, os.Stdin, os.Stdout)
	},
}

func openQuerier(ctx context.Context, cfg *config.Config, logger *zap.Logger) (query.Querier, func(), error) {
	switch cfg.Backend {
	case "postgres", "postgresql":
		url, err := cfg.GetDatabaseURL()
		if err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.New(ctx, url)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres: ping: %w", err)
		}
		return query.NewPostgres(pool), pool.Close, nil
	case "back4app":
		appID, apiKey, err := cfg.GetBack4AppCredentials()
		if err != nil {
			return nil, nil, err
		}
		client := back4app.NewClient(cfg.Back4App.BaseURL, appID, apiKey, logger)
		return query.NewBack4App(client), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("backend %s does not keep data between runs, nothing to query", cfg.Backend)
	}
}

// runPrompt reads one query name from in, dispatches it by exact match and
// prints the result to out.
func runPrompt(ctx context.Context, q query.Querier, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Available queries:")
	fmt.Fprintf(out, "  - %s\n", queryFindUserDeviceTypes)
	fmt.Fprintf(out, "  - %s\n", queryHousesWithActivations)
	fmt.Fprintf(out, "  - %s\n", queryMaxThermostatValue)
	fmt.Fprint(out, "> ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read query name: %w", err)
	}

	switch strings.TrimSpace(line) {
	case queryFindUserDeviceTypes:
		fmt.Fprint(out, "User name: ")
		nameLine, err := reader.ReadString('\n')
		if err != nil && nameLine == "" {
			return fmt.Errorf("read user name: %w", err)
		}
		rows, err := q.FindUserDeviceTypes(ctx, strings.TrimSpace(nameLine))
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Fprintln(out, "no matching users")
			return nil
		}
		for _, r := range rows {
			fmt.Fprintf(out, "%s (%s): %s / %s\n", r.UserName, r.UserType, r.DeviceType, r.DeviceName)
		}
		return nil

	case queryHousesWithActivations:
		houses, err := q.HousesWithActivatedDevices(ctx)
		if err != nil {
			return err
		}
		for _, h := range houses {
			fmt.Fprintf(out, "%s\t%s\n", h.ID, h.Address)
		}
		fmt.Fprintf(out, "%d houses\n", len(houses))
		return nil

	case queryMaxThermostatValue:
		reading, err := q.MaxThermostatMeasurement(ctx)
		if errors.Is(err, query.ErrNoResult) {
			return fmt.Errorf("no thermostat measurements found")
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%.2f at %s (%s)\n", reading.Value, reading.MeasureTime.Format("2006-01-02 15:04:05"), reading.Address)
		return nil

	default:
		color.Red("❌ Unknown query function: %q", strings.TrimSpace(line))
		return fmt.Errorf("unknown query function: %q", strings.TrimSpace(line))
	}
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
