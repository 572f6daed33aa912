package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"ClipKeeper/internal/cli/events"
	"ClipKeeper/internal/cli/kv"
	"ClipKeeper/internal/cli/model"

	"github.com/google/uuid"
)

// ErrNotFound возвращается при обращении к несуществующему правилу.
var ErrNotFound = errors.New("rule not found")

// CompilePattern компилирует паттерн правила. Поиск всегда регистронезависимый.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, errors.New("empty pattern")
	}
	return regexp.Compile("(?i)" + pattern)
}

// builtinRules — заводской набор встроенных правил. Порядок значим:
// классификация работает по принципу первого совпадения.
func builtinRules(now time.Time) []model.Rule {
	mk := func(name, pattern string, action model.Action) model.Rule {
		return model.Rule{
			ID:         uuid.NewString(),
			Name:       name,
			Pattern:    pattern,
			Action:     action,
			Enabled:    true,
			BuiltIn:    true,
			CreatedAt:  now,
			ModifiedAt: now,
		}
	}
	return []model.Rule{
		mk("Passwords", `password\s*[:=]\s*\S+`, model.ActionIgnore),
		mk("API tokens", `(api[_-]?key|secret|authorization:\s*bearer)\s*[:=]?\s*\S+`, model.ActionClear),
		mk("Credit card numbers", `\b(?:\d[ -]?){13,16}\b`, model.ActionMask),
		mk("Private keys", `-----BEGIN [A-Z ]*PRIVATE KEY-----`, model.ActionIgnore),
	}
}

// Store хранит упорядоченный список правил (встроенные + пользовательские)
// и целиком пересериализует его в kv после каждой мутации.
type Store struct {
	mu    sync.Mutex
	kv    kv.Store
	hub   *events.Hub
	rules []model.Rule
	now   func() time.Time
}

// NewStore загружает список правил из kv. Пустое или нечитаемое хранилище
// трактуется как первый запуск: список засевается встроенными правилами.
func NewStore(kvs kv.Store, hub *events.Hub) (*Store, error) {
	s := &Store{kv: kvs, hub: hub, now: time.Now}
	var loaded []model.Rule
	if err := kv.LoadJSON(kvs, kv.KeyRules, &loaded); err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	if len(loaded) == 0 {
		loaded = builtinRules(s.now())
	}
	s.rules = loaded
	if err := s.persist(); err != nil {
		return nil, err
	}
	return s, nil
}

// persist пишет весь список под стабильным ключом. Вызывается под mu.
func (s *Store) persist() error {
	return kv.SaveJSON(s.kv, kv.KeyRules, s.rules)
}

func (s *Store) notify(ids ...string) {
	if s.hub != nil {
		s.hub.Publish(events.Event{Kind: events.RulesChanged, IDs: ids})
	}
}

// List возвращает копию списка правил в хранимом порядке.
func (s *Store) List() []model.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Enabled возвращает включённые правила в хранимом порядке.
func (s *Store) Enabled() []model.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Rule, 0, len(s.rules))
	for _, r := range s.rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// Add создаёт пользовательское правило. Паттерн проверяется до записи:
// некорректное регулярное выражение отклоняется, хранилище не меняется.
func (s *Store) Add(name, pattern string, action model.Action) (model.Rule, error) {
	if _, err := CompilePattern(pattern); err != nil {
		return model.Rule{}, fmt.Errorf("invalid pattern: %w", err)
	}
	now := s.now()
	r := model.Rule{
		ID:         uuid.NewString(),
		Name:       name,
		Pattern:    pattern,
		Action:     action,
		Enabled:    true,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, r)
	if err := s.persist(); err != nil {
		s.rules = s.rules[:len(s.rules)-1]
		return model.Rule{}, err
	}
	s.notify(r.ID)
	return r, nil
}

// Update заменяет имя/паттерн/действие правила по ID.
func (s *Store) Update(id, name, pattern string, action model.Action) error {
	if _, err := CompilePattern(pattern); err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rules {
		if s.rules[i].ID != id {
			continue
		}
		prev := s.rules[i]
		s.rules[i].Name = name
		s.rules[i].Pattern = pattern
		s.rules[i].Action = action
		s.rules[i].ModifiedAt = s.now()
		if err := s.persist(); err != nil {
			s.rules[i] = prev
			return err
		}
		s.notify(id)
		return nil
	}
	return ErrNotFound
}

// SetEnabled включает/выключает правило. Встроенные правила можно выключать.
func (s *Store) SetEnabled(id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rules {
		if s.rules[i].ID != id {
			continue
		}
		if s.rules[i].Enabled == enabled {
			return nil
		}
		s.rules[i].Enabled = enabled
		s.rules[i].ModifiedAt = s.now()
		if err := s.persist(); err != nil {
			s.rules[i].Enabled = !enabled
			return err
		}
		s.notify(id)
		return nil
	}
	return ErrNotFound
}

// Remove удаляет правило по ID.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rules {
		if s.rules[i].ID != id {
			continue
		}
		s.rules = append(s.rules[:i], s.rules[i+1:]...)
		if err := s.persist(); err != nil {
			return err
		}
		s.notify(id)
		return nil
	}
	return ErrNotFound
}

// ResetBuiltIns возвращает встроенные правила к заводскому состоянию.
// Пользовательские правила сохраняются и остаются после встроенных.
func (s *Store) ResetBuiltIns() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := builtinRules(s.now())
	for _, r := range s.rules {
		if !r.BuiltIn {
			fresh = append(fresh, r)
		}
	}
	prev := s.rules
	s.rules = fresh
	if err := s.persist(); err != nil {
		s.rules = prev
		return err
	}
	s.notify()
	return nil
}
