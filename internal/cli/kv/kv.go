package kv

import "encoding/json"

// Стабильные ключи сериализованных коллекций.
const (
	KeyItems     = "items"
	KeyPinboards = "pinboards"
	KeyRules     = "rules"
)

// Store определяет порт доступа к локальному key-value хранилищу.
// Коллекции хранятся как JSON-блобы под стабильными ключами, настройки — как скаляры.
type Store interface {
	// Get возвращает значение по ключу. ok=false, если ключа нет.
	Get(key string) (value []byte, ok bool, err error)

	// Put сохраняет значение по ключу, затирая предыдущее.
	Put(key string, value []byte) error

	// Delete удаляет ключ. Отсутствие ключа ошибкой не считается.
	Delete(key string) error

	Close() error
}

// LoadJSON читает и декодирует JSON-блоб по ключу. Отсутствующий или
// некорректный блоб трактуется как пустая коллекция: v не меняется, ошибки нет.
func LoadJSON(s Store, key string, v any) error {
	b, ok, err := s.Get(key)
	if err != nil {
		return err
	}
	if !ok || len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		// повреждённый блоб — не фатальная ошибка (см. политику обработки ошибок)
		return nil
	}
	return nil
}

// SaveJSON сериализует значение и сохраняет его по ключу.
func SaveJSON(s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(key, b)
}
