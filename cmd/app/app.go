package app

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/orderspot/connecthost-api/internal/api"
	"github.com/orderspot/connecthost-api/internal/config"
	"github.com/orderspot/connecthost-api/internal/db"
	"github.com/orderspot/connecthost-api/internal/logger"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	// Amounts go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	database, err := db.Open(conf, os.Getenv("DATABASE_URL"))
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	s, err := api.NewServer(conf, database)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	config.Watch(func(e fsnotify.Event, next *config.AppConfig) {
		s.Production.SetRefreshInterval(next.Production.RefreshInterval)
		zap.L().Info("config reloaded",
			zap.String("file", e.Name),
			zap.Duration("production_refresh_interval", s.Production.RefreshInterval()),
		)
	}, func(err error) {
		zap.L().Warn("ignoring invalid config change", zap.Error(err))
	})

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr), zap.String("backend", conf.Data.Backend))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
