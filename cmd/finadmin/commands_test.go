package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"

	"posfinance/internal/actor"
	"posfinance/internal/config"
	"posfinance/internal/database"
	"posfinance/internal/middleware"
	"posfinance/internal/models"
	"posfinance/internal/services"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIWith(t, &config.Config{JWTSecret: "cli-secret", JWTExpirationDur: time.Hour}, args...)
}

func runCLIWith(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var root struct {
		Migrate MigrateCmd `cmd:""`
		Token   TokenCmd   `cmd:""`
		Audit   AuditCmd   `cmd:""`
	}
	parser, err := kong.New(&root, kong.Name("finadmin"), kong.Exit(func(int) {}))
	assert.NoError(t, err)

	ctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	env := &Env{Config: cfg, Out: &out}
	err = ctx.Run(env)
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	out, err := runCLI(t, "token", "--user-id", "0190F5C2-6D1E-7A3B-9C4D-5E6F7A8B9C0D",
		"-p", actor.PermReportsRead, "-p", actor.PermBudgetsWrite)
	assert.NoError(t, err)

	a, err := middleware.ParseAccessToken(strings.TrimSpace(out), "cli-secret")
	assert.NoError(t, err)
	assert.Equal(t, "0190f5c2-6d1e-7a3b-9c4d-5e6f7a8b9c0d", a.UserID)
	assert.Equal(t, []string{actor.PermReportsRead, actor.PermBudgetsWrite}, a.Permissions)
}

func TestTokenCommandDefaultsToAllPermissions(t *testing.T) {
	out, err := runCLI(t, "token", "--user-id", "0190f5c2-6d1e-7a3b-9c4d-5e6f7a8b9c0d")
	assert.NoError(t, err)

	a, err := middleware.ParseAccessToken(strings.TrimSpace(out), "cli-secret")
	assert.NoError(t, err)
	assert.True(t, a.Can(actor.PermCategoriesWrite))
}

func TestTokenCommandRejectsBadInput(t *testing.T) {
	_, err := runCLI(t, "token", "--user-id", "42")
	assert.Error(t, err)

	_, err = runCLI(t, "token", "--user-id", "0190f5c2-6d1e-7a3b-9c4d-5e6f7a8b9c0d", "-p", "sales.delete")
	assert.EqualError(t, err, `unknown permission "sales.delete"`)

	_, err = runCLI(t, "token")
	assert.Error(t, err)
}

func TestMigrateDownRejectsNonPositiveSteps(t *testing.T) {
	_, err := runCLI(t, "migrate", "down", "0")
	assert.EqualError(t, err, "step count must be positive, got 0")
}

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DBDriver:       "sqlite",
		DBPath:         filepath.Join(t.TempDir(), "finadmin.db"),
		MigrationsPath: filepath.Join("..", "..", "migrations"),
	}
}

func TestMigrateUpAndVersion(t *testing.T) {
	cfg := sqliteConfig(t)

	_, err := runCLIWith(t, cfg, "migrate", "up")
	assert.NoError(t, err)

	out, err := runCLIWith(t, cfg, "migrate", "version")
	assert.NoError(t, err)
	assert.Equal(t, "version 4 dirty false\n", out)

	_, err = runCLIWith(t, cfg, "migrate", "down", "4")
	assert.NoError(t, err)
}

func TestAuditCommand(t *testing.T) {
	cfg := sqliteConfig(t)
	const budgetID = "0190f5c2-6d1e-7a3b-9c4d-000000000002"

	mgr, err := database.NewManager(cfg)
	assert.NoError(t, err)
	assert.NoError(t, mgr.DB().AutoMigrate(&models.AuditLog{}))
	services.NewAuditService(mgr.DB()).Log("0190f5c2-6d1e-7a3b-9c4d-5e6f7a8b9c0d", "CREATE_BUDGET", "budget", budgetID, "", nil)
	assert.NoError(t, mgr.Close())

	out, err := runCLIWith(t, cfg, "audit", budgetID)
	assert.NoError(t, err)
	assert.Contains(t, out, "CREATE_BUDGET")
	assert.Contains(t, out, budgetID)

	_, err = runCLIWith(t, cfg, "audit", "--resource-type", "budget", "not-a-uuid")
	assert.Error(t, err)
}
