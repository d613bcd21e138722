package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDatabase اتصال به دیتابیس را بر اساس DB_DRIVER راه‌اندازی می‌کند
func OpenDatabase(s *Settings) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch s.DBDriver {
	case "postgres":
		dialector = postgres.Open(s.DBDSN)
	default:
		dialector = mysql.Open(s.DBDSN)
	}

	cfg := &gorm.Config{TranslateError: true}
	if s.AppEnv == "production" {
		cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", s.DBDriver, err)
	}
	return db, nil
}
