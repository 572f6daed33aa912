package model

import "time"

// User — учётная запись на сервере синхронизации.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Login        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
