package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"reelchat/backend/internal/storage"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	flag "github.com/spf13/pflag"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type options struct {
	server      string
	adminToken  string
	redisAddr   string
	postgresDSN string
	timeout     time.Duration
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		color.Error.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	_ = godotenv.Load()

	var opts options
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.StringVarP(&opts.server, "server", "s", envOr("ADMIN_SERVER", "http://localhost:8080"), "Base URL of the chat server")
	fs.StringVarP(&opts.adminToken, "admin-token", "t", os.Getenv("ADMIN_TOKEN"), "Value for the X-Admin-Token header")
	fs.StringVar(&opts.redisAddr, "redis-addr", "", "Toggle maintenance directly in Redis instead of through the server")
	fs.StringVar(&opts.postgresDSN, "postgres-dsn", os.Getenv("POSTGRES_DSN"), "Postgres DSN, used by the user command")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(fs)
		return fmt.Errorf("command required")
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	api := newAPIClient(opts.server, opts.adminToken)

	switch rest[0] {
	case "sessions":
		sessions, err := api.liveSessions(ctx)
		if err != nil {
			return err
		}
		renderSessions(out, sessions)

	case "stats":
		stats, err := api.stats(ctx)
		if err != nil {
			return err
		}
		renderStats(out, stats)

	case "history":
		if len(rest) != 2 {
			return fmt.Errorf("usage: admin history <participant_id>")
		}
		sessions, err := api.history(ctx, rest[1])
		if err != nil {
			return err
		}
		renderHistory(out, rest[1], sessions)

	case "maintenance":
		return maintenance(ctx, out, api, opts, rest[1:])

	case "user":
		if len(rest) != 2 {
			return fmt.Errorf("usage: admin user <user_id>")
		}
		return showUser(ctx, out, opts.postgresDSN, rest[1])

	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
	return nil
}

func maintenance(ctx context.Context, out io.Writer, api *apiClient, opts options, args []string) error {
	if len(args) == 0 {
		on, err := api.maintenance(ctx)
		if err != nil {
			return err
		}
		printMaintenance(out, on)
		return nil
	}

	var on bool
	switch strings.ToLower(args[0]) {
	case "on":
		on = true
	case "off":
		on = false
	default:
		return fmt.Errorf("usage: admin maintenance [on|off]")
	}

	if opts.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: opts.redisAddr})
		defer rdb.Close()
		if err := storage.NewStorageService(nil, rdb).SetMaintenanceMode(ctx, on); err != nil {
			return err
		}
	} else if err := api.setMaintenance(ctx, on); err != nil {
		return err
	}
	printMaintenance(out, on)
	return nil
}

func printMaintenance(out io.Writer, on bool) {
	if on {
		fmt.Fprintln(out, color.Yellow.Sprint("maintenance: on"))
		return
	}
	fmt.Fprintln(out, color.Green.Sprint("maintenance: off"))
}

func showUser(ctx context.Context, out io.Writer, dsn, userID string) error {
	if dsn == "" {
		return fmt.Errorf("--postgres-dsn or POSTGRES_DSN is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	// No redis needed for user lookups
	user, err := storage.NewStorageService(db, nil).GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	renderUser(out, user)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprint(os.Stderr, `Usage: admin [options] <command> [args]

Commands:
  sessions                  List live sessions
  stats                     Show hub counters
  history <participant_id>  Show recent sessions of a participant
  maintenance [on|off]      Show or toggle maintenance mode
  user <user_id>            Show a stored user

Options:
`)
	fs.PrintDefaults()
}
