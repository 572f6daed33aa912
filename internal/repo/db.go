package repo

import (
	"strings"

	"ClipKeeper/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB открывает БД по DSN и прогоняет миграции. Postgres — для боевого
// развёртывания; пустой или файловый DSN открывает локальный SQLite.
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "clipkeeper-server.db"
		}
		dial = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.SyncedItem{}, &model.SyncedPinboard{}); err != nil {
		return nil, err
	}
	return db, nil
}
