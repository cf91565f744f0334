// Command migrate applies, inspects and rolls back the feed database schema.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/database"

	"gorm.io/gorm"
)

var errUsage = errors.New("usage")

type session struct {
	cfg *config.Config
	db  *gorm.DB
	out io.Writer
}

type command struct {
	summary string
	args    []string
	// offline commands never open a database connection.
	offline bool
	run     func(ctx context.Context, s *session, args []string) error
}

var commands = map[string]command{
	"up": {
		summary: "apply pending SQL migrations (postgres)",
		run:     migrateUp,
	},
	"auto": {
		summary: "create or update tables with GORM AutoMigrate",
		run:     autoMigrate,
	},
	"status": {
		summary: "show the schema plan and pending migrations",
		run:     schemaStatus,
	},
	"down": {
		summary: "roll back one applied migration (postgres)",
		args:    []string{"version"},
		run:     rollback,
	},
	"list": {
		summary: "list the registered SQL migrations",
		offline: true,
		run:     listMigrations,
	},
}

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "Abort the command after this long")
	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()

	cmd, args, err := resolve(flag.Args())
	if err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		log.Fatal(err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	s := &session{cfg: cfg, out: os.Stdout}

	if !cmd.offline {
		s.db, err = database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer func() { _ = database.Close() }()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := cmd.run(ctx, s, args); err != nil {
		cancel()
		_ = database.Close()
		log.Fatal(err)
	}
}

// resolve picks the command named by argv[0] and checks its arity.
func resolve(argv []string) (command, []string, error) {
	if len(argv) == 0 {
		return command{}, nil, errUsage
	}
	name := strings.ToLower(strings.TrimSpace(argv[0]))
	cmd, ok := commands[name]
	if !ok {
		return command{}, nil, fmt.Errorf("unknown command %q: %w", argv[0], errUsage)
	}
	args := argv[1:]
	if len(args) != len(cmd.args) {
		return command{}, nil, fmt.Errorf("%s takes %d argument(s): %w", name, len(cmd.args), errUsage)
	}
	return cmd, args, nil
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: migrate [-timeout d] <command> [args]")
	fmt.Fprintln(w)
	for _, name := range names {
		cmd := commands[name]
		usage := name
		for _, a := range cmd.args {
			usage += " <" + a + ">"
		}
		fmt.Fprintf(w, "  %-16s %s\n", usage, cmd.summary)
	}
}

// requirePostgres rejects SQL migration commands on SQLite, whose schema is
// managed by AutoMigrate only.
func requirePostgres(s *session, name string) error {
	if s.cfg.DBDriver == database.DriverSQLite {
		return fmt.Errorf("%s runs postgres SQL migrations; use auto for sqlite", name)
	}
	return nil
}

func migrateUp(ctx context.Context, s *session, _ []string) error {
	if err := requirePostgres(s, "up"); err != nil {
		return err
	}
	if err := database.RunMigrations(ctx, s.db); err != nil {
		return fmt.Errorf("sql migrations failed: %w", err)
	}
	fmt.Fprintln(s.out, "sql migrations applied")
	return nil
}

func autoMigrate(ctx context.Context, s *session, _ []string) error {
	cfg := *s.cfg
	cfg.DBSchemaMode = database.SchemaModeAuto
	if err := database.ApplySchema(ctx, s.db, &cfg); err != nil {
		return fmt.Errorf("auto schema apply failed: %w", err)
	}
	fmt.Fprintln(s.out, "automigrations applied")
	return nil
}

func schemaStatus(ctx context.Context, s *session, _ []string) error {
	status, err := database.GetSchemaStatus(ctx, s.db, s.cfg)
	if err != nil {
		return fmt.Errorf("schema status failed: %w", err)
	}
	fmt.Fprintf(s.out, "mode=%s env=%s driver=%s run_sql=%t run_auto=%t applied=%d pending=%d\n",
		status.Mode, status.Environment, s.cfg.DBDriver, status.WillRunSQL, status.WillRunAutoMigrate,
		len(status.AppliedVersions), len(status.PendingMigrations))
	for _, m := range status.PendingMigrations {
		fmt.Fprintf(s.out, "pending: %s\n", m.String())
	}
	return nil
}

func rollback(ctx context.Context, s *session, args []string) error {
	if err := requirePostgres(s, "down"); err != nil {
		return err
	}
	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	if err := database.RollbackMigration(ctx, s.db, version); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	fmt.Fprintf(s.out, "rolled back migration %d\n", version)
	return nil
}

func listMigrations(_ context.Context, s *session, _ []string) error {
	for _, m := range database.GetMigrations() {
		fmt.Fprintln(s.out, m.String())
	}
	return nil
}
