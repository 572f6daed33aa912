package items

import (
	"strings"
	"time"

	"ClipKeeper/internal/cli/model"
)

// Filter — параметры поиска по истории. Нулевые поля не ограничивают выборку.
type Filter struct {
	Query string       // подстрока, без учёта регистра
	Kinds []model.Kind // пустой список = все типы
	From  *time.Time   // включительно
	To    *time.Time   // включительно
}

// Search выполняет поиск: регистронезависимое вхождение подстроки в превью,
// каноническое содержимое или теги, И-комбинированное с фильтром по типам и
// датам. Ранжирования нет: порядок результата — естественный порядок
// хранилища (по убыванию Timestamp).
func (s *Store) Search(f Filter) []model.Item {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	kindSet := make(map[model.Kind]bool, len(f.Kinds))
	for _, k := range f.Kinds {
		kindSet[k] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Item
	for _, it := range s.items {
		if len(kindSet) > 0 && !kindSet[it.Kind] {
			continue
		}
		if f.From != nil && it.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && it.Timestamp.After(*f.To) {
			continue
		}
		if q != "" && !matchesQuery(&it, q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// matchesQuery проверяет вхождение подстроки в превью, содержимое и теги.
// Совпадение по тегу — тоже подстрочное, не точное.
func matchesQuery(it *model.Item, q string) bool {
	if strings.Contains(strings.ToLower(it.Preview), q) {
		return true
	}
	if strings.Contains(strings.ToLower(it.RawContent()), q) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
