package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/warehouse/internal/bootstrap"
	httpRouter "github.com/jhoicas/warehouse/internal/interfaces/http"
	"github.com/jhoicas/warehouse/pkg/config"
	"github.com/jhoicas/warehouse/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	wh, cleanup, err := bootstrap.Bootstrap(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicialización")
	}
	defer cleanup()

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName: cfg.App.Name,
		Money:   wh.Money,
		Log:     log.Named("http"),
	}, httpRouter.RouterDeps{
		BalanceUC:   wh.UseCases.Balance,
		SaleUC:      wh.UseCases.Sale,
		PurchaseUC:  wh.UseCases.Purchase,
		HistoryUC:   wh.UseCases.History,
		DashboardUC: wh.UseCases.Dashboard,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
