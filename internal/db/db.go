package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orderspot/connecthost-api/internal/config"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
}

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return OpenPostgresWithURL(conf.DSN())
}

// OpenPostgresWithURL connects, retrying a few times while the database
// comes up, then migrates the schema. The last connection error is returned
// as is; callers must not substitute another backend.
func OpenPostgresWithURL(dsn string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig())
		if err == nil {
			break
		}

		zap.L().Warn("postgres not reachable", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(connectBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	if err = dao.InitTables(db); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	return db, nil
}

// OpenSQLiteMemory opens a private in-memory database named name, migrates
// it and, when seed is set, loads the demo fixtures used by the mock backend.
func OpenSQLiteMemory(name string, seed bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	if err = dao.InitTables(db); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	if seed {
		if err = dao.Seed(db); err != nil {
			return nil, fmt.Errorf("dao.Seed -> %w", err)
		}
	}

	return db, nil
}

// Open picks the entity store from conf.Data.Backend. DATABASE_URL, when
// given, wins over the postgres section.
func Open(conf *config.AppConfig, databaseURL string) (*gorm.DB, error) {
	switch conf.Data.Backend {
	case config.BackendMock:
		zap.L().Info("using the mock entity store (seeded in-memory sqlite)")
		return OpenSQLiteMemory("connecthost_mock", true)
	case config.BackendLive:
		if databaseURL != "" {
			return OpenPostgresWithURL(databaseURL)
		}
		return OpenPostgres(conf.Postgres)
	}

	return nil, fmt.Errorf("unknown data backend %q", conf.Data.Backend)
}
