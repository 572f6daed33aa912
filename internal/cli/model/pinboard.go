package model

import (
	"time"

	"github.com/google/uuid"
)

// ShareStatus — режим доступа к доске.
type ShareStatus string

const (
	SharePrivate  ShareStatus = "private"
	ShareShared   ShareStatus = "shared"
	ShareViewOnly ShareStatus = "view-only"
)

// Pinboard — именованная упорядоченная коллекция ссылок на записи истории.
// Порядок ItemIDs задаёт пользователь, он сохраняется как есть.
type Pinboard struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ItemIDs    []string  `json:"item_ids,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`

	IconRef   string `json:"icon_ref,omitempty"`
	ColorRef  string `json:"color_ref,omitempty"`
	SortOrder int    `json:"sort_order"`

	ShareStatus   ShareStatus `json:"share_status"`
	ShareLink     string      `json:"share_link,omitempty"`
	Collaborators []string    `json:"collaborators,omitempty"`
}

// NewPinboard создаёт приватную доску с новым ID.
func NewPinboard(name string, sortOrder int, now time.Time) Pinboard {
	return Pinboard{
		ID:          uuid.NewString(),
		Name:        name,
		CreatedAt:   now,
		ModifiedAt:  now,
		SortOrder:   sortOrder,
		ShareStatus: SharePrivate,
	}
}

// HasItem сообщает, привязана ли запись к доске.
func (p *Pinboard) HasItem(itemID string) bool {
	for _, id := range p.ItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// RemoveItem убирает запись из доски. Возвращает true, если запись была в списке.
func (p *Pinboard) RemoveItem(itemID string) bool {
	for i, id := range p.ItemIDs {
		if id == itemID {
			p.ItemIDs = append(p.ItemIDs[:i], p.ItemIDs[i+1:]...)
			return true
		}
	}
	return false
}
