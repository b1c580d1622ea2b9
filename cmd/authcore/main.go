// Command authcore wires the credential core against its stores and
// exposes the gate's operations for provisioning and diagnostics. The
// surrounding resume API mounts the same services behind its own HTTP
// layer; this binary is the operator's path to them.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/term"

	"github.com/resumekit/authcore/internal/adapters/driven/hasher"
	"github.com/resumekit/authcore/internal/adapters/driven/postgres"
	redisadapter "github.com/resumekit/authcore/internal/adapters/driven/redis"
	"github.com/resumekit/authcore/internal/adapters/driven/signer"
	"github.com/resumekit/authcore/internal/config"
	"github.com/resumekit/authcore/internal/core/ports/driven"
	"github.com/resumekit/authcore/internal/core/ports/driving"
	"github.com/resumekit/authcore/internal/core/services"
	"github.com/resumekit/authcore/internal/hashwork"
)

var version = "dev"

const usage = `usage: authcore <command> [args]

commands:
  register <identifier> [scope ...]   create an identity (prompts for password)
  disable <identifier>                retire an identity
  login <identifier>                  exchange credentials for a token (prompts for password)
  authorize <token> [scope]           validate a token, optionally requiring a scope
  rotate <identifier>                 rotate a password (prompts for old and new)
  revoke <token>                      revoke a token before its expiry
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "authcore: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("authcore starting", "version", version)

	app, err := build(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close()

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "authcore: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wired core and its infrastructure handles
type app struct {
	gate        driving.AuthGate
	provisioner driving.Provisioner
	pool        *hashwork.Pool
	db          *postgres.DB
	redisClient *redis.Client
	logger      *slog.Logger
}

// build connects the stores and wires the services. Any failure here
// is startup-fatal: the process must not take requests half-configured.
func build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	hashAdapter, err := hasher.New(hasher.Config{
		Algorithm:     hasher.Algorithm(cfg.Hash.Algorithm),
		Argon2Time:    cfg.Hash.Argon2Time,
		Argon2Memory:  cfg.Hash.Argon2Memory,
		Argon2Threads: cfg.Hash.Argon2Threads,
		BcryptCost:    cfg.Hash.BcryptCost,
	})
	if err != nil {
		return nil, err
	}

	signAdapter, err := signer.New(signer.Config{
		Key:       []byte(cfg.SigningKey),
		Algorithm: cfg.SigningAlg,
		Leeway:    cfg.ClockLeeway,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("connecting to postgres")
	db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.InitSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	var redisClient *redis.Client
	var revocations driven.RevocationStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			db.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		revocations = redisadapter.NewRevocationStore(redisClient)
		logger.Info("revocation store enabled")
	} else {
		logger.Info("no redis configured, revocation disabled")
	}

	pool := hashwork.New(hashwork.Config{Size: cfg.HashWorkers, Logger: logger})
	pool.Start()

	store := postgres.NewCredentialStore(db)
	issuer := services.NewIssuer(services.IssuerConfig{
		Signer:     signAdapter,
		DefaultTTL: cfg.TokenTTL,
		MaxTTL:     cfg.TokenMaxTTL,
	})
	validator := services.NewValidator(services.ValidatorConfig{
		Signer:        signAdapter,
		Store:         store,
		Revocations:   revocations,
		LookupTimeout: cfg.LookupTimeout,
	})
	gate := services.NewGate(services.GateConfig{
		Store:         store,
		Hasher:        hashAdapter,
		Signer:        signAdapter,
		Revocations:   revocations,
		Issuer:        issuer,
		Validator:     validator,
		Pool:          pool,
		Logger:        logger,
		LookupTimeout: cfg.LookupTimeout,
	})

	return &app{
		gate:        gate,
		provisioner: services.NewProvisioner(store, hashAdapter, pool, logger),
		pool:        pool,
		db:          db,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

func (a *app) close() {
	a.pool.Stop()
	if a.redisClient != nil {
		a.redisClient.Close()
	}
	a.db.Close()
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		if len(args) < 1 {
			return fmt.Errorf("register: identifier required")
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		identity, err := a.provisioner.Register(ctx, args[0], password, args[1:])
		if err != nil {
			return err
		}
		return printJSON(identity.ToSummary())

	case "disable":
		if len(args) != 1 {
			return fmt.Errorf("disable: identifier required")
		}
		return a.provisioner.Disable(ctx, args[0])

	case "login":
		if len(args) != 1 {
			return fmt.Errorf("login: identifier required")
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		grant, err := a.gate.Login(ctx, args[0], password)
		if err != nil {
			return err
		}
		return printJSON(grant)

	case "authorize":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("authorize: token [scope]")
		}
		scope := ""
		if len(args) == 2 {
			scope = args[1]
		}
		identity, err := a.gate.Authorize(ctx, args[0], scope)
		if err != nil {
			return err
		}
		return printJSON(identity.ToSummary())

	case "rotate":
		if len(args) != 1 {
			return fmt.Errorf("rotate: identifier required")
		}
		oldPassword, err := promptPassword("Current password: ")
		if err != nil {
			return err
		}
		newPassword, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		return a.gate.RotatePassword(ctx, args[0], oldPassword, newPassword)

	case "revoke":
		if len(args) != 1 {
			return fmt.Errorf("revoke: token required")
		}
		return a.gate.Revoke(ctx, args[0])

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// promptPassword reads a password without echoing it. The plaintext is
// handed straight to the core and not retained here.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
