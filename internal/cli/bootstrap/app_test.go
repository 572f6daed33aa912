package bootstrap

import (
	"testing"
	"time"

	"ClipKeeper/internal/cli/kv"
	"ClipKeeper/internal/cli/model"
	"ClipKeeper/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{HistoryLimit: 100, RetentionDays: 0, ClearDelaySec: 30}
}

// Тест: сборка связывает хранилища — удаление записи чистит доски и наоборот
func TestBuildApp_CrossStoreWiring(t *testing.T) {
	app, err := BuildApp(testConfig(), kv.NewMemory())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}

	it, err := app.Items.Insert(model.NewTextItem("wired", "", time.Now()))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	board, err := app.Pinboards.Create("Board")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if err := app.Pinboards.AddItem(board.ID, it.ID); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := app.Items.Delete(it.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	b, _ := app.Pinboards.Get(board.ID)
	if len(b.ItemIDs) != 0 {
		t.Fatalf("board must drop the deleted item: %v", b.ItemIDs)
	}
}

// Тест: смена правил автоматически сбрасывает кэш классификатора
func TestBuildApp_RulesChangeInvalidatesClassifier(t *testing.T) {
	app, err := BuildApp(testConfig(), kv.NewMemory())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}

	content := "weird-content-42"
	if app.Classifier.ShouldIgnore(content) {
		t.Fatalf("content must not match builtin rules")
	}

	// добавляем правило: событие RulesChanged обязано сбросить кэш вердиктов
	if _, err := app.Rules.Add("Weird", `weird-content-\d+`, model.ActionIgnore); err != nil {
		t.Fatalf("add rule: %v", err)
	}
	if !app.Classifier.ShouldIgnore(content) {
		t.Fatalf("new rule must take effect without manual cache reset")
	}
}

// Тест: настройки получают значения по умолчанию из конфигурации
func TestBuildApp_SettingsDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.RetentionDays = 14
	cfg.ClearDelaySec = 60
	app, err := BuildApp(cfg, kv.NewMemory())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if app.Settings.RetentionDays() != 14 {
		t.Fatalf("retention default must come from config")
	}
	if app.Settings.ClearDelay() != time.Minute {
		t.Fatalf("clear delay default must come from config")
	}
}
