package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"warden/internal/platform/config"
	"warden/internal/platform/logger"
	phttp "warden/internal/platform/net/http"

	"warden/internal/services/api"
)

func main() {
	_ = godotenv.Load()

	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("ADMIN_API_")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{
		Config: root,
		Token:  apiCfg.MayString("TOKEN", ""),
	})

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			l.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
