package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/warehouse/internal/bootstrap"
	"github.com/jhoicas/warehouse/pkg/config"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// loadEnv carga configuración y logger. Los logs van a stderr para no mezclarse con la salida.
func loadEnv() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.App.LogLevel,
		Output: os.Stderr,
	})
	return cfg, log, nil
}

// openApp arma la aplicación completa (almacén, saldo, casos de uso).
func openApp(ctx context.Context) (*bootstrap.App, func(), error) {
	cfg, log, err := loadEnv()
	if err != nil {
		return nil, nil, err
	}
	return bootstrap.Bootstrap(ctx, cfg, log.Named("warehousectl"))
}
