// Command finadmin runs operator tasks against the posfinance database and
// issues access tokens.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"posfinance/internal/config"
	"posfinance/internal/logger"
)

var cli struct {
	Migrate MigrateCmd `cmd:"" help:"Apply or roll back SQL migrations."`
	Token   TokenCmd   `cmd:"" help:"Issue an access token for an actor."`
	Audit   AuditCmd   `cmd:"" help:"Print recent audit entries."`
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	ctx := kong.Parse(&cli,
		kong.Name("finadmin"),
		kong.Description("Operator tools for the POS finance service."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&Env{Config: cfg, Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
