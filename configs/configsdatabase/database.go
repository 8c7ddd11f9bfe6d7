package configsdatabase

import (
	"time"

	"undangan.link/configs"
	"undangan.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the connection selected by DB_DRIVER (postgres or sqlite).
func InitDB() {
	cfg := configs.GetConfig()

	conn, err := Open(cfg.DBDriver, cfg.DBDSN, !cfg.IsProduction())
	if err != nil {
		configslog.Log.Fatal("Database connection failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("Could not obtain sql.DB handle", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db = conn
	configslog.SLog.Infof("Database connection established (%s)", cfg.DBDriver)
}

// Open creates a gorm connection without touching the package state.
func Open(driver, dsn string, verbose bool) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	if verbose {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(dsn)
	}
	return gorm.Open(dialector, gormCfg)
}

// GetDB returns the shared connection. InitDB must have been called.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB called before InitDB")
	}
	return db
}

// CloseDB closes the underlying pool.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Could not obtain sql.DB handle for close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Database close failed", zap.Error(err))
		return
	}
	configslog.SLog.Info("Database connection closed")
}
