package events

import "sync"

// Kind — тип события, публикуемого хранилищами при мутациях.
type Kind string

const (
	ItemsChanged     Kind = "items_changed"
	PinboardsChanged Kind = "pinboards_changed"
	RulesChanged     Kind = "rules_changed"
)

// Event описывает произошедшую мутацию. IDs — затронутые идентификаторы
// (может быть пустым при массовых операциях).
type Event struct {
	Kind Kind
	IDs  []string
}

// Hub — список подписчиков, которых хранилища уведомляют о мутациях.
// Замена реактивных привязок исходного дизайна: подписка явная.
type Hub struct {
	mu   sync.Mutex
	subs []func(Event)
}

// NewHub создаёт пустой хаб.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe регистрирует обработчик. Обработчики вызываются синхронно,
// в порядке подписки.
func (h *Hub) Subscribe(fn func(Event)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, fn)
}

// Publish рассылает событие всем подписчикам.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	subs := make([]func(Event), len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()
	for _, fn := range subs {
		fn(e)
	}
}
