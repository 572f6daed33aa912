package model

import "time"

// SyncedItem — серверная копия записи истории пользователя.
// Payload — JSON-конверт клиентской модели; Timestamp дублируется колонкой,
// чтобы слияние и выборки не разворачивали конверт.
type SyncedItem struct {
	UserID int64  `gorm:"primaryKey;autoIncrement:false"`
	ID     string `gorm:"primaryKey;type:uuid"`

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Timestamp time.Time `gorm:"not null;index"`
	Payload   []byte    `gorm:"not null"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// SyncedPinboard — серверная копия доски пользователя.
type SyncedPinboard struct {
	UserID int64  `gorm:"primaryKey;autoIncrement:false"`
	ID     string `gorm:"primaryKey;type:uuid"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	ModifiedAt time.Time `gorm:"not null;index"`
	Payload    []byte    `gorm:"not null"`

	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
