package search

import (
	"sync"
	"time"

	"ClipKeeper/internal/cli/items"
	"ClipKeeper/internal/cli/model"
)

// DefaultDebounce — окно дебаунса поисковой сессии.
const DefaultDebounce = 300 * time.Millisecond

// Querier — порт к слою запросов хранилища записей.
type Querier interface {
	Search(f items.Filter) []model.Item
}

// Session — обёртка поискового запроса с дебаунсом: обновление запроса
// отменяет незавершённый таймер и заводит новый; до хранилища доходит
// только последний запрос в окне дебаунса.
type Session struct {
	store     Querier
	delay     time.Duration
	onResults func(items []model.Item)

	mu    sync.Mutex
	timer *time.Timer
}

// NewSession создаёт сессию. delay <= 0 означает окно по умолчанию.
func NewSession(store Querier, delay time.Duration, onResults func([]model.Item)) *Session {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Session{store: store, delay: delay, onResults: onResults}
}

// SetQuery обновляет текущий запрос сессии. Выполнение откладывается на окно
// дебаунса; результат придёт в onResults.
func (s *Session) SetQuery(f items.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		res := s.store.Search(f)
		if s.onResults != nil {
			s.onResults(res)
		}
	})
}

// Cancel отменяет отложенный запрос, если он ещё не выполнился.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
