package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"warden/internal/adapters/chat/discord"
	"warden/internal/modkit"
	"warden/internal/platform/config"
	"warden/internal/platform/logger"

	auditmod "warden/internal/services/audit/module"
	guarddom "warden/internal/services/guard/domain"
	guardmod "warden/internal/services/guard/module"

	"warden/internal/modkit/module"
)

func main() {
	// local runs keep secrets in .env; absent file is fine
	_ = godotenv.Load()

	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	token := root.MustString("DISCORD_BOT_TOKEN")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rest := discord.NewClient(discord.Options{Token: token})
	deps := modkit.Deps{Log: *l, Cfg: root}

	audit := auditmod.New(deps)
	guard := guardmod.New(deps, rest, module.MustPortsOf[auditmod.Ports](audit))
	handler := module.MustPortsOf[guarddom.HandlerPort](guard)

	gw := discord.NewGateway(rest, token, discord.Handlers{
		Ready:             func(appID string) { handler.RegisterCommands(ctx, appID) },
		MessageCreate:     handler.OnMessage,
		InteractionCreate: handler.OnInteraction,
	})

	l.Info().Msg("warden bot starting")
	if err := gw.Run(ctx); err != nil && ctx.Err() == nil {
		l.Panic().Err(err).Msg("gateway stopped")
	}
	l.Info().Msg("warden bot stopped")
}
