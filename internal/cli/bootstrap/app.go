package bootstrap

import (
	"fmt"

	"ClipKeeper/internal/cli/events"
	"ClipKeeper/internal/cli/items"
	"ClipKeeper/internal/cli/kv"
	"ClipKeeper/internal/cli/pinboards"
	"ClipKeeper/internal/cli/rules"
	"ClipKeeper/internal/cli/settings"
	"ClipKeeper/internal/config"
)

// App — собранный набор сервисов клиента. Хранилища — явно сконструированные
// объекты, зависимость передаётся тому, кому нужна; глобальных синглтонов нет.
type App struct {
	KV         kv.Store
	Hub        *events.Hub
	Rules      *rules.Store
	Classifier *rules.Classifier
	Items      *items.Store
	Pinboards  *pinboards.Store
	Settings   *settings.Store
}

// OpenApp открывает локальную БД и собирает хранилища с перекрёстными
// связями. Возвращает (app, cleanup, error); cleanup закрывает БД.
func OpenApp(cfg *config.Config) (*App, func() error, error) {
	kvs, err := kv.Open(cfg.ClientDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open client db: %w", err)
	}
	app, err := BuildApp(cfg, kvs)
	if err != nil {
		_ = kvs.Close()
		return nil, nil, err
	}
	cleanup := func() error { return kvs.Close() }
	return app, cleanup, nil
}

// BuildApp собирает сервисы поверх уже открытого kv (в тестах — in-memory).
func BuildApp(cfg *config.Config, kvs kv.Store) (*App, error) {
	hub := events.NewHub()

	ruleStore, err := rules.NewStore(kvs, hub)
	if err != nil {
		return nil, fmt.Errorf("rules store: %w", err)
	}
	classifier := rules.NewClassifier(ruleStore)
	// смена набора правил делает закэшированные вердикты недействительными
	hub.Subscribe(func(e events.Event) {
		if e.Kind == events.RulesChanged {
			classifier.InvalidateCache()
		}
	})

	itemStore, err := items.NewStore(kvs, hub, cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("items store: %w", err)
	}
	boardStore, err := pinboards.NewStore(kvs, hub)
	if err != nil {
		return nil, fmt.Errorf("pinboards store: %w", err)
	}
	// обе стороны отношения «запись ↔ доска» обновляются согласованно
	itemStore.BindPinboards(boardStore)
	boardStore.BindItems(itemStore)

	settingsStore := settings.NewStore(kvs, cfg.RetentionDays, cfg.ClearDelaySec)

	return &App{
		KV:         kvs,
		Hub:        hub,
		Rules:      ruleStore,
		Classifier: classifier,
		Items:      itemStore,
		Pinboards:  boardStore,
		Settings:   settingsStore,
	}, nil
}
