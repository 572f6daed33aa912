package model

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// Kind — тип содержимого записи истории буфера обмена.
type Kind string

const (
	KindText  Kind = "text"
	KindLink  Kind = "link"
	KindImage Kind = "image"
	KindFile  Kind = "file"
)

// TextPayload — содержимое текстовой записи.
type TextPayload struct {
	Text string `json:"text"`
}

// LinkPayload — содержимое записи-ссылки.
type LinkPayload struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// ImagePayload — содержимое записи-изображения (байты сериализуются в base64).
type ImagePayload struct {
	Data      []byte `json:"data"`
	Thumbnail []byte `json:"thumbnail,omitempty"`
}

// FilePayload — ссылка на файл.
type FilePayload struct {
	Ref       []byte `json:"ref"`
	Name      string `json:"name,omitempty"`
	Thumbnail []byte `json:"thumbnail,omitempty"`
}

// Item — запись истории буфера обмена. Идентичность неизменяемая,
// метаданные (теги, привязка к доскам, превью) — изменяемые.
// Ровно одно из полей Text/Link/Image/File заполнено и соответствует Kind.
type Item struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"kind"`

	Text  *TextPayload  `json:"text,omitempty"`
	Link  *LinkPayload  `json:"link,omitempty"`
	Image *ImagePayload `json:"image,omitempty"`
	File  *FilePayload  `json:"file,omitempty"`

	Preview   string   `json:"preview,omitempty"`
	SourceApp string   `json:"source_app,omitempty"`
	Tags      []string `json:"tags,omitempty"`

	// Инвариант: Pinned == (len(PinboardIDs) > 0). PinboardIDs не содержит дублей.
	Pinned      bool     `json:"pinned"`
	PinboardIDs []string `json:"pinboard_ids,omitempty"`
}

// NewTextItem создаёт текстовую запись с новым ID и текущей меткой времени.
func NewTextItem(text, sourceApp string, now time.Time) Item {
	return Item{
		ID:        uuid.NewString(),
		Timestamp: now,
		Kind:      KindText,
		Text:      &TextPayload{Text: text},
		Preview:   MakePreview(text),
		SourceApp: sourceApp,
	}
}

// NewLinkItem создаёт запись-ссылку.
func NewLinkItem(url, title, sourceApp string, now time.Time) Item {
	return Item{
		ID:        uuid.NewString(),
		Timestamp: now,
		Kind:      KindLink,
		Link:      &LinkPayload{URL: url, Title: title},
		Preview:   MakePreview(url),
		SourceApp: sourceApp,
	}
}

// NewImageItem создаёт запись-изображение.
func NewImageItem(data, thumbnail []byte, sourceApp string, now time.Time) Item {
	return Item{
		ID:        uuid.NewString(),
		Timestamp: now,
		Kind:      KindImage,
		Image:     &ImagePayload{Data: data, Thumbnail: thumbnail},
		SourceApp: sourceApp,
	}
}

// NewFileItem создаёт запись-ссылку на файл.
func NewFileItem(ref []byte, name, sourceApp string, now time.Time) Item {
	return Item{
		ID:        uuid.NewString(),
		Timestamp: now,
		Kind:      KindFile,
		File:      &FilePayload{Ref: ref, Name: name},
		Preview:   name,
		SourceApp: sourceApp,
	}
}

const previewLimit = 200

// MakePreview возвращает укороченный однострочный вариант текста для показа в списке.
func MakePreview(s string) string {
	if len(s) > previewLimit {
		s = s[:previewLimit]
	}
	return s
}

// RawContent возвращает каноническое содержимое записи: UTF-8 текст для
// text/link, base64 от байтов для image/file. Используется как ключ дедупликации.
func (it *Item) RawContent() string {
	switch it.Kind {
	case KindText:
		if it.Text != nil {
			return it.Text.Text
		}
	case KindLink:
		if it.Link != nil {
			return it.Link.URL
		}
	case KindImage:
		if it.Image != nil {
			return base64.StdEncoding.EncodeToString(it.Image.Data)
		}
	case KindFile:
		if it.File != nil {
			return base64.StdEncoding.EncodeToString(it.File.Ref)
		}
	}
	return ""
}

// AttachPinboard добавляет доску в список привязок (без дублей) и поддерживает Pinned.
func (it *Item) AttachPinboard(boardID string) {
	for _, id := range it.PinboardIDs {
		if id == boardID {
			it.Pinned = len(it.PinboardIDs) > 0
			return
		}
	}
	it.PinboardIDs = append(it.PinboardIDs, boardID)
	it.Pinned = true
}

// DetachPinboard убирает доску из списка привязок и поддерживает Pinned.
func (it *Item) DetachPinboard(boardID string) {
	out := it.PinboardIDs[:0]
	for _, id := range it.PinboardIDs {
		if id != boardID {
			out = append(out, id)
		}
	}
	it.PinboardIDs = out
	it.Pinned = len(it.PinboardIDs) > 0
}
