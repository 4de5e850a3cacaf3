package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/golang-migrate/migrate/v4"

	"posfinance/internal/actor"
	"posfinance/internal/config"
	"posfinance/internal/database"
	"posfinance/internal/logger"
	"posfinance/internal/middleware"
	"posfinance/internal/services"
	"posfinance/internal/uuid"
)

// Env is bound into every command's Run method.
type Env struct {
	Config *config.Config
	Out    io.Writer
}

type MigrateCmd struct {
	Up      MigrateUpCmd      `cmd:"" help:"Apply all pending migrations."`
	Down    MigrateDownCmd    `cmd:"" help:"Roll back migrations."`
	Version MigrateVersionCmd `cmd:"" help:"Print the current schema version."`
}

type MigrateUpCmd struct{}

func (cmd *MigrateUpCmd) Run(env *Env) error {
	m, err := database.NewMigrator(env.Config)
	if err != nil {
		return err
	}
	defer database.CloseMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	logger.Get().Info("Migrations applied successfully")
	return nil
}

type MigrateDownCmd struct {
	Steps int `arg:"" optional:"" default:"1" help:"Number of migrations to roll back."`
}

func (cmd *MigrateDownCmd) Run(env *Env) error {
	if cmd.Steps < 1 {
		return fmt.Errorf("step count must be positive, got %d", cmd.Steps)
	}
	m, err := database.NewMigrator(env.Config)
	if err != nil {
		return err
	}
	defer database.CloseMigrator(m)

	if err := m.Steps(-cmd.Steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	logger.Get().Infof("Rolled back %d migration(s)", cmd.Steps)
	return nil
}

type MigrateVersionCmd struct{}

func (cmd *MigrateVersionCmd) Run(env *Env) error {
	m, err := database.NewMigrator(env.Config)
	if err != nil {
		return err
	}
	defer database.CloseMigrator(m)

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get version: %w", err)
	}
	fmt.Fprintf(env.Out, "version %d dirty %v\n", version, dirty)
	return nil
}

type TokenCmd struct {
	UserID     string        `help:"Actor id (UUID)." required:""`
	Permission []string      `help:"Permission to grant; repeat for several. Grants everything when omitted." short:"p"`
	TTL        time.Duration `help:"Token lifetime; defaults to JWT_EXPIRES_IN."`
}

func (cmd *TokenCmd) Run(env *Env) error {
	id, err := uuid.Parse(cmd.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", cmd.UserID, err)
	}
	perms := cmd.Permission
	if len(perms) == 0 {
		perms = []string{actor.PermAll}
	}
	for _, p := range perms {
		if !knownPermission(p) {
			return fmt.Errorf("unknown permission %q", p)
		}
	}

	ttl := cmd.TTL
	if ttl <= 0 {
		ttl = env.Config.JWTExpirationDur
	}
	token, err := middleware.GenerateAccessToken(actor.Actor{UserID: id, Permissions: perms}, env.Config.JWTSecret, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Out, token)
	return nil
}

type AuditCmd struct {
	ResourceType string `help:"Resource type, e.g. budget, budget_item or category." default:"budget"`
	ResourceID   string `arg:"" optional:"" help:"Resource id; lists every resource of the type when omitted."`
	Limit        int    `help:"Maximum entries to print." default:"20"`
}

func (cmd *AuditCmd) Run(env *Env) error {
	mgr, err := database.NewManager(env.Config)
	if err != nil {
		return err
	}
	defer mgr.Close()

	entries, err := services.NewAuditService(mgr.DB()).Recent(cmd.ResourceType, cmd.ResourceID, cmd.Limit)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTOR\tACTION\tRESOURCE\tCHANGES")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.UTC().Format(time.RFC3339), e.UserID, e.Action, e.ResourceID, e.Changes)
	}
	return w.Flush()
}

func knownPermission(p string) bool {
	switch p {
	case actor.PermAll, actor.PermBudgetsWrite, actor.PermCategoriesWrite, actor.PermReportsRead:
		return true
	}
	return false
}
