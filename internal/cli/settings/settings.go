package settings

import (
	"strconv"
	"time"

	"ClipKeeper/internal/cli/kv"
)

// Ключи скалярных настроек в kv.
const (
	keyRetentionDays = "settings.retention_days"
	keySyncEnabled   = "settings.sync_enabled"
	keyClearDelaySec = "settings.clear_delay_sec"
	keyLastCleanup   = "settings.last_cleanup"
	keyLastSyncAt    = "settings.last_sync_at"
)

// Store — типизированные аксессоры к пользовательским настройкам поверх kv.
// Значения по умолчанию приходят из конфигурации при сборке приложения.
type Store struct {
	kv kv.Store

	defaultRetentionDays int
	defaultClearDelaySec int
}

// NewStore создаёт хранилище настроек с указанными значениями по умолчанию.
func NewStore(kvs kv.Store, defaultRetentionDays, defaultClearDelaySec int) *Store {
	return &Store{
		kv:                   kvs,
		defaultRetentionDays: defaultRetentionDays,
		defaultClearDelaySec: defaultClearDelaySec,
	}
}

func (s *Store) getInt(key string, def int) int {
	b, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return def
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return def
	}
	return n
}

func (s *Store) putInt(key string, n int) error {
	return s.kv.Put(key, []byte(strconv.Itoa(n)))
}

func (s *Store) getTime(key string) time.Time {
	b, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, string(b))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *Store) putTime(key string, t time.Time) error {
	return s.kv.Put(key, []byte(t.Format(time.RFC3339)))
}

// RetentionDays — срок хранения незакреплённых записей в днях; 0 = вечно.
func (s *Store) RetentionDays() int {
	return s.getInt(keyRetentionDays, s.defaultRetentionDays)
}

func (s *Store) SetRetentionDays(days int) error {
	if days < 0 {
		days = 0
	}
	return s.putInt(keyRetentionDays, days)
}

// SyncEnabled — включена ли фоновая синхронизация со вспомогательным сервером.
func (s *Store) SyncEnabled() bool {
	return s.getInt(keySyncEnabled, 0) != 0
}

func (s *Store) SetSyncEnabled(enabled bool) error {
	v := 0
	if enabled {
		v = 1
	}
	return s.putInt(keySyncEnabled, v)
}

// ClearDelay — задержка отложенной очистки буфера для clear-правил.
func (s *Store) ClearDelay() time.Duration {
	return time.Duration(s.getInt(keyClearDelaySec, s.defaultClearDelaySec)) * time.Second
}

func (s *Store) SetClearDelaySec(sec int) error {
	if sec < 0 {
		sec = 0
	}
	return s.putInt(keyClearDelaySec, sec)
}

// LastCleanup — момент последней чистки по сроку хранения.
func (s *Store) LastCleanup() time.Time {
	return s.getTime(keyLastCleanup)
}

func (s *Store) SetLastCleanup(t time.Time) error {
	return s.putTime(keyLastCleanup, t)
}

// LastSyncAt — момент последней успешной синхронизации.
func (s *Store) LastSyncAt() time.Time {
	return s.getTime(keyLastSyncAt)
}

func (s *Store) SetLastSyncAt(t time.Time) error {
	return s.putTime(keyLastSyncAt, t)
}
