package items

import (
	"fmt"
	"sync"
	"time"

	"ClipKeeper/internal/cli/events"
	"ClipKeeper/internal/cli/kv"
	"ClipKeeper/internal/cli/model"
)

// PinboardReconciler — порт для каскадного удаления: убирает ссылки на
// удалённые записи из всех досок. Реализуется хранилищем досок.
type PinboardReconciler interface {
	DetachItems(itemIDs []string)
}

// SettingsSource — настройки, которые нужны ежедневной чистке истории.
type SettingsSource interface {
	RetentionDays() int // 0 = хранить вечно
	LastCleanup() time.Time
	SetLastCleanup(t time.Time) error
}

// Store — авторитетная коллекция записей истории. Список в памяти всегда
// упорядочен по убыванию Timestamp (поддерживается вставкой в голову, а не
// сортировкой) и зеркалируется в kv после каждой мутации (write-through).
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	hub      *events.Hub
	capacity int
	now      func() time.Time

	items []model.Item

	pinboards PinboardReconciler
}

// NewStore загружает записи из kv. Отсутствующий или нечитаемый блоб
// трактуется как пустая история.
func NewStore(kvs kv.Store, hub *events.Hub, capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = 10000
	}
	s := &Store{kv: kvs, hub: hub, capacity: capacity, now: time.Now}
	if err := kv.LoadJSON(kvs, kv.KeyItems, &s.items); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return s, nil
}

// BindPinboards подключает хранилище досок для каскадных удалений.
// Вызывается один раз при сборке приложения.
func (s *Store) BindPinboards(p PinboardReconciler) {
	s.pinboards = p
}

// persist пишет весь список под стабильным ключом. Вызывается под mu.
func (s *Store) persist() error {
	return kv.SaveJSON(s.kv, kv.KeyItems, s.items)
}

func (s *Store) notify(ids ...string) {
	if s.hub != nil {
		s.hub.Publish(events.Event{Kind: events.ItemsChanged, IDs: ids})
	}
}

// List возвращает снимок списка (по убыванию Timestamp).
func (s *Store) List() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Count возвращает число записей.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get возвращает запись по ID.
func (s *Store) Get(id string) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// Insert добавляет кандидата в историю. Если запись с тем же RawContent уже
// существует — дубликат не создаётся: существующая запись переносится в
// голову списка со свежей меткой времени (dedup-bump), её ID, теги и
// привязки к доскам сохраняются. После вставки самые старые незакреплённые
// записи вытесняются до предела ёмкости; закреплённые не вытесняются никогда.
func (s *Store) Insert(candidate model.Item) (model.Item, error) {
	raw := candidate.RawContent()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := candidate
	dup := -1
	for i := range s.items {
		if s.items[i].RawContent() == raw {
			dup = i
			break
		}
	}
	if dup >= 0 {
		stored = s.items[dup]
		stored.Timestamp = candidate.Timestamp
		if stored.SourceApp == "" {
			stored.SourceApp = candidate.SourceApp
		}
		s.items = append(s.items[:dup], s.items[dup+1:]...)
	}

	// вставка в голову сохраняет порядок по убыванию Timestamp
	s.items = append([]model.Item{stored}, s.items...)

	evicted := s.evictOverCapacityLocked()

	if err := s.persist(); err != nil {
		return model.Item{}, err
	}
	s.notify(append([]string{stored.ID}, evicted...)...)
	return stored, nil
}

// evictOverCapacityLocked вытесняет старейшие незакреплённые записи, пока
// размер не окажется в пределах ёмкости. Возвращает ID вытесненных записей.
func (s *Store) evictOverCapacityLocked() []string {
	var evicted []string
	for len(s.items) > s.capacity {
		victim := -1
		for i := len(s.items) - 1; i >= 0; i-- {
			if !s.items[i].Pinned {
				victim = i
				break
			}
		}
		if victim < 0 {
			// все записи закреплены — вытеснять нечего
			break
		}
		evicted = append(evicted, s.items[victim].ID)
		s.items = append(s.items[:victim], s.items[victim+1:]...)
	}
	return evicted
}

// Update заменяет запись по ID. Отсутствующий ID — no-op без ошибки.
func (s *Store) Update(item model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			if err := s.persist(); err != nil {
				return err
			}
			s.notify(item.ID)
			return nil
		}
	}
	return nil
}

// Delete удаляет запись и каскадно убирает её ID из всех досок.
func (s *Store) Delete(id string) error {
	return s.DeleteMany([]string{id})
}

// DeleteMany удаляет набор записей одной операцией.
func (s *Store) DeleteMany(ids []string) error {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	s.mu.Lock()
	var removed []string
	kept := s.items[:0]
	for _, it := range s.items {
		if want[it.ID] {
			removed = append(removed, it.ID)
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	var err error
	if len(removed) > 0 {
		err = s.persist()
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if len(removed) == 0 {
		return nil
	}
	// каскад после снятия собственной блокировки, чтобы не фиксировать
	// порядок захвата мьютексов между хранилищами
	if s.pinboards != nil {
		s.pinboards.DetachItems(removed)
	}
	s.notify(removed...)
	return nil
}

// AttachPinboard отмечает привязку записи к доске (обратная сторона
// членства; прямую сторону ведёт хранилище досок).
func (s *Store) AttachPinboard(itemID, boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].AttachPinboard(boardID)
			if err := s.persist(); err != nil {
				return err
			}
			s.notify(itemID)
			return nil
		}
	}
	// висячая ссылка: запись уже удалена — молча пропускаем
	return nil
}

// DetachPinboard снимает привязку записи к доске.
func (s *Store) DetachPinboard(itemID, boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].DetachPinboard(boardID)
			if err := s.persist(); err != nil {
				return err
			}
			s.notify(itemID)
			return nil
		}
	}
	return nil
}

// SetTags заменяет список тегов записи.
func (s *Store) SetTags(itemID string, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Tags = tags
			if err := s.persist(); err != nil {
				return err
			}
			s.notify(itemID)
			return nil
		}
	}
	return nil
}

// CleanupIfNeeded выполняет чистку по сроку хранения не чаще раза в
// календарные сутки. Удаляются незакреплённые записи старше окна;
// retention = 0 отключает чистку полностью.
func (s *Store) CleanupIfNeeded(settings SettingsSource) error {
	days := settings.RetentionDays()
	if days <= 0 {
		return nil
	}
	now := s.now()
	last := settings.LastCleanup()
	ly, lm, ld := last.Date()
	ny, nm, nd := now.Date()
	if ly == ny && lm == nm && ld == nd {
		return nil
	}

	cutoff := now.AddDate(0, 0, -days)

	s.mu.Lock()
	var removed []string
	kept := s.items[:0]
	for _, it := range s.items {
		if !it.Pinned && it.Timestamp.Before(cutoff) {
			removed = append(removed, it.ID)
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	var err error
	if len(removed) > 0 {
		err = s.persist()
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if err := settings.SetLastCleanup(now); err != nil {
		return err
	}
	if len(removed) > 0 {
		s.notify(removed...)
	}
	return nil
}
