package pinboards

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"ClipKeeper/internal/cli/events"
	"ClipKeeper/internal/cli/kv"
	"ClipKeeper/internal/cli/model"
)

// ErrNotFound возвращается при обращении к несуществующей доске.
var ErrNotFound = errors.New("pinboard not found")

// ItemBackrefs — порт к хранилищу записей: обе стороны отношения
// «запись ↔ доска» обновляются в рамках одной логической операции.
type ItemBackrefs interface {
	AttachPinboard(itemID, boardID string) error
	DetachPinboard(itemID, boardID string) error
}

// Store — хранилище досок. Членство ведётся в Pinboard.ItemIDs (порядок
// задаёт пользователь), обратные ссылки — в записях истории.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	hub    *events.Hub
	boards []model.Pinboard
	now    func() time.Time

	items ItemBackrefs
}

// NewStore загружает доски из kv. Нечитаемый блоб = пустой список.
func NewStore(kvs kv.Store, hub *events.Hub) (*Store, error) {
	s := &Store{kv: kvs, hub: hub, now: time.Now}
	if err := kv.LoadJSON(kvs, kv.KeyPinboards, &s.boards); err != nil {
		return nil, fmt.Errorf("load pinboards: %w", err)
	}
	return s, nil
}

// BindItems подключает хранилище записей для поддержания обратных ссылок.
func (s *Store) BindItems(items ItemBackrefs) {
	s.items = items
}

func (s *Store) persist() error {
	return kv.SaveJSON(s.kv, kv.KeyPinboards, s.boards)
}

func (s *Store) notify(ids ...string) {
	if s.hub != nil {
		s.hub.Publish(events.Event{Kind: events.PinboardsChanged, IDs: ids})
	}
}

// List возвращает снимок списка досок, отсортированный по SortOrder.
func (s *Store) List() []model.Pinboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Pinboard, len(s.boards))
	copy(out, s.boards)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

// Get возвращает доску по ID.
func (s *Store) Get(id string) (model.Pinboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.boards {
		if b.ID == id {
			return b, true
		}
	}
	return model.Pinboard{}, false
}

// Create создаёт доску с именем name в конце текущего порядка.
func (s *Store) Create(name string) (model.Pinboard, error) {
	if name == "" {
		return model.Pinboard{}, errors.New("pinboard name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := model.NewPinboard(name, len(s.boards), s.now())
	s.boards = append(s.boards, b)
	if err := s.persist(); err != nil {
		s.boards = s.boards[:len(s.boards)-1]
		return model.Pinboard{}, err
	}
	s.notify(b.ID)
	return b, nil
}

// Update изменяет метаданные доски (имя, иконку, цвет, режим доступа).
func (s *Store) Update(board model.Pinboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.boards {
		if s.boards[i].ID != board.ID {
			continue
		}
		// членство и порядок меняются только профильными операциями
		board.ItemIDs = s.boards[i].ItemIDs
		board.SortOrder = s.boards[i].SortOrder
		board.CreatedAt = s.boards[i].CreatedAt
		board.ModifiedAt = s.now()
		s.boards[i] = board
		if err := s.persist(); err != nil {
			return err
		}
		s.notify(board.ID)
		return nil
	}
	return ErrNotFound
}

// Delete удаляет доску и каскадно снимает её ID со всех записей-участников;
// запись, оставшаяся без досок, перестаёт быть закреплённой.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	var members []string
	found := false
	for i := range s.boards {
		if s.boards[i].ID == id {
			members = append(members, s.boards[i].ItemIDs...)
			s.boards = append(s.boards[:i], s.boards[i+1:]...)
			found = true
			break
		}
	}
	var err error
	if found {
		err = s.persist()
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if s.items != nil {
		for _, itemID := range members {
			_ = s.items.DetachPinboard(itemID, id)
		}
	}
	s.notify(id)
	return nil
}

// AddItem привязывает запись к доске: ID добавляется в конец ItemIDs доски,
// обратная ссылка и флаг закрепления обновляются на записи.
func (s *Store) AddItem(boardID, itemID string) error {
	s.mu.Lock()
	found := false
	for i := range s.boards {
		if s.boards[i].ID != boardID {
			continue
		}
		found = true
		if s.boards[i].HasItem(itemID) {
			s.mu.Unlock()
			return nil
		}
		s.boards[i].ItemIDs = append(s.boards[i].ItemIDs, itemID)
		s.boards[i].ModifiedAt = s.now()
		break
	}
	var err error
	if found {
		err = s.persist()
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if s.items != nil {
		if err := s.items.AttachPinboard(itemID, boardID); err != nil {
			return err
		}
	}
	s.notify(boardID)
	return nil
}

// RemoveItem отвязывает запись от доски и обновляет обратную ссылку.
func (s *Store) RemoveItem(boardID, itemID string) error {
	s.mu.Lock()
	found := false
	removed := false
	for i := range s.boards {
		if s.boards[i].ID != boardID {
			continue
		}
		found = true
		removed = s.boards[i].RemoveItem(itemID)
		if removed {
			s.boards[i].ModifiedAt = s.now()
		}
		break
	}
	var err error
	if removed {
		err = s.persist()
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if removed && s.items != nil {
		if err := s.items.DetachPinboard(itemID, boardID); err != nil {
			return err
		}
	}
	if removed {
		s.notify(boardID)
	}
	return nil
}

// Reorder переназначает SortOrder 0..n-1 по позиции доски в newOrder и
// обновляет ModifiedAt каждой затронутой доски. Доски, не упомянутые в
// newOrder, сохраняют относительный порядок после упомянутых.
func (s *Store) Reorder(newOrder []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := make(map[string]int, len(newOrder))
	for i, id := range newOrder {
		pos[id] = i
	}
	next := len(newOrder)
	changed := make([]string, 0, len(s.boards))
	for i := range s.boards {
		order, ok := pos[s.boards[i].ID]
		if !ok {
			order = next
			next++
		}
		if s.boards[i].SortOrder != order {
			s.boards[i].SortOrder = order
			s.boards[i].ModifiedAt = s.now()
			changed = append(changed, s.boards[i].ID)
		}
	}
	if len(changed) == 0 {
		return nil
	}
	if err := s.persist(); err != nil {
		return err
	}
	s.notify(changed...)
	return nil
}

// DetachItems убирает удалённые записи из всех досок (каскад со стороны
// хранилища записей). Обратные ссылки не трогаются: записей уже нет.
func (s *Store) DetachItems(itemIDs []string) {
	gone := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		gone[id] = true
	}

	s.mu.Lock()
	var changed []string
	for i := range s.boards {
		kept := s.boards[i].ItemIDs[:0]
		before := len(s.boards[i].ItemIDs)
		for _, id := range s.boards[i].ItemIDs {
			if !gone[id] {
				kept = append(kept, id)
			}
		}
		s.boards[i].ItemIDs = kept
		if len(kept) != before {
			s.boards[i].ModifiedAt = s.now()
			changed = append(changed, s.boards[i].ID)
		}
	}
	if len(changed) > 0 {
		_ = s.persist()
	}
	s.mu.Unlock()

	if len(changed) > 0 {
		s.notify(changed...)
	}
}
