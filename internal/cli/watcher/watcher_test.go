package watcher

import (
	"testing"
	"time"

	"ClipKeeper/internal/cli/events"
	"ClipKeeper/internal/cli/items"
	"ClipKeeper/internal/cli/kv"
	"ClipKeeper/internal/cli/model"
	"ClipKeeper/internal/cli/rules"
)

const pollStep = 5 * time.Millisecond

func newWatcherFixture(t *testing.T, clearDelay time.Duration) (*Memory, *items.Store, *Watcher) {
	t.Helper()
	clip := NewMemory()
	store, err := items.NewStore(kv.NewMemory(), events.NewHub(), 100)
	if err != nil {
		t.Fatalf("items store: %v", err)
	}
	ruleStore, err := rules.NewStore(kv.NewMemory(), nil)
	if err != nil {
		t.Fatalf("rules store: %v", err)
	}
	w := New(clip, rules.NewClassifier(ruleStore), store, nil, Config{
		PollInterval: pollStep,
		ClearDelay:   func() time.Duration { return clearDelay },
	})
	return clip, store, w
}

// waitFor опрашивает условие до таймаута: тики наблюдателя асинхронны.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(pollStep)
	}
	t.Fatalf("condition not reached before deadline")
}

// settle даёт наблюдателю несколько тактов, чтобы убедиться в отсутствии эффекта.
func settle() { time.Sleep(20 * pollStep) }

// Тест: скопированный текст попадает в историю
func TestWatcher_CapturesText(t *testing.T) {
	clip, store, w := newWatcherFixture(t, time.Minute)
	w.Start()
	defer w.Stop()

	clip.SetText("hello from the clipboard", "Editor")
	waitFor(t, func() bool { return store.Count() == 1 })

	it := store.List()[0]
	if it.Kind != model.KindText || it.RawContent() != "hello from the clipboard" {
		t.Fatalf("unexpected captured item: %+v", it)
	}
	if it.SourceApp != "Editor" {
		t.Fatalf("source app must be recorded: %q", it.SourceApp)
	}
}

// Тест: URL распознаётся и сохраняется как ссылка
func TestWatcher_PromotesURLToLink(t *testing.T) {
	clip, store, w := newWatcherFixture(t, time.Minute)
	w.Start()
	defer w.Stop()

	clip.SetText("  https://example.com/page?q=1  ", "Browser")
	waitFor(t, func() bool { return store.Count() == 1 })

	it := store.List()[0]
	if it.Kind != model.KindLink {
		t.Fatalf("URL must be captured as link, got %s", it.Kind)
	}
	if it.Link.URL != "https://example.com/page?q=1" {
		t.Fatalf("link URL must be trimmed: %q", it.Link.URL)
	}

	// текст с URL внутри — обычный текст
	clip.SetText("see https://example.com for details", "Browser")
	waitFor(t, func() bool { return store.Count() == 2 })
	if store.List()[0].Kind != model.KindText {
		t.Fatalf("prose containing a URL is still text")
	}
}

// Тест: изображение и файловая ссылка классифицируются по виду
func TestWatcher_CapturesImageAndFile(t *testing.T) {
	clip, store, w := newWatcherFixture(t, time.Minute)
	w.Start()
	defer w.Stop()

	clip.SetImage([]byte{0xff, 0xd8, 0xff}, "Shot")
	waitFor(t, func() bool { return store.Count() == 1 })
	if store.List()[0].Kind != model.KindImage {
		t.Fatalf("image payload must be captured as image")
	}

	clip.SetFileRef([]byte("/tmp/report.pdf"), "report.pdf", "Files")
	waitFor(t, func() bool { return store.Count() == 2 })
	it := store.List()[0]
	if it.Kind != model.KindFile || it.File.Name != "report.pdf" {
		t.Fatalf("file ref must be captured with its name: %+v", it)
	}
}

// Тест: пустой и пробельный текст не сохраняется
func TestWatcher_SkipsEmptyText(t *testing.T) {
	clip, store, w := newWatcherFixture(t, time.Minute)
	w.Start()
	defer w.Stop()

	clip.SetText("   \n\t ", "Editor")
	settle()
	if store.Count() != 0 {
		t.Fatalf("whitespace-only text must be skipped")
	}
}

// Тест: содержимое под ignore-правилом не попадает в историю
func TestWatcher_SuppressesPasswords(t *testing.T) {
	clip, store, w := newWatcherFixture(t, time.Minute)
	w.Start()
	defer w.Stop()

	clip.SetText("password: hunter2", "Terminal")
	settle()
	if store.Count() != 0 {
		t.Fatalf("password must never reach the history")
	}

	// а обычный текст после него — сохраняется
	clip.SetText("plain note", "Terminal")
	waitFor(t, func() bool { return store.Count() == 1 })
}

// Тест: clear-правило ставит отложенную очистку буфера
func TestWatcher_ClearRuleSchedulesWipe(t *testing.T) {
	clip, store, w := newWatcherFixture(t, 30*pollStep)
	w.Start()
	defer w.Stop()

	clip.SetText("api_key=sk-123456", "Terminal")
	settle()
	if store.Count() != 0 {
		t.Fatalf("clear content must not be stored")
	}
	// буфер ещё не очищен: задержка не истекла... затем очищен
	waitFor(t, func() bool {
		_, ok := clip.Text()
		return !ok
	})
}

// Тест: новая копия отменяет запланированную очистку
func TestWatcher_NewCopyCancelsPendingClear(t *testing.T) {
	clip, store, w := newWatcherFixture(t, 50*pollStep)
	w.Start()
	defer w.Stop()

	clip.SetText("api_key=sk-123456", "Terminal")
	settle()

	// пользователь успел скопировать другое до истечения задержки
	clip.SetText("innocent text", "Editor")
	waitFor(t, func() bool { return store.Count() == 1 })

	time.Sleep(70 * pollStep)
	if s, ok := clip.Text(); !ok || s != "innocent text" {
		t.Fatalf("superseded clear must not wipe the new content: %q ok=%v", s, ok)
	}
}

// Тест: префильтр недавних хэшей гасит немедленные повторы
func TestWatcher_RecentHashPrefilter(t *testing.T) {
	clip, store, w := newWatcherFixture(t, time.Minute)
	w.Start()
	defer w.Stop()

	clip.SetText("same thing", "Editor")
	waitFor(t, func() bool { return store.Count() == 1 })
	first := store.List()[0].Timestamp

	clip.SetText("same thing", "Editor") // счётчик изменился, содержимое то же
	settle()
	if store.Count() != 1 {
		t.Fatalf("repeat copy must not duplicate")
	}
	if !store.List()[0].Timestamp.Equal(first) {
		t.Fatalf("prefiltered repeat must not even bump the item")
	}
}

// Тест: Stop останавливает опрос; повторный Start заводит свежую сессию
func TestWatcher_StartStopLifecycle(t *testing.T) {
	clip, store, w := newWatcherFixture(t, time.Minute)

	w.Start()
	w.Start() // повторный Start — no-op
	clip.SetText("first", "Editor")
	waitFor(t, func() bool { return store.Count() == 1 })
	w.Stop()
	w.Stop() // повторный Stop — no-op

	clip.SetText("while idle", "Editor")
	settle()
	if store.Count() != 1 {
		t.Fatalf("idle watcher must not capture")
	}

	w.Start()
	defer w.Stop()
	// новая сессия стартует от текущего счётчика: старое содержимое не подхватывается
	settle()
	if store.Count() != 1 {
		t.Fatalf("restart must baseline the change counter")
	}
	clip.SetText("after restart", "Editor")
	waitFor(t, func() bool { return store.Count() == 2 })
}

// Тест: CheckNow форсирует внеочередной такт
func TestWatcher_CheckNow(t *testing.T) {
	clip, store, w := newWatcherFixture(t, time.Minute)
	// большой интервал: без CheckNow захват не успеет
	w.cfg.PollInterval = time.Hour
	w.Start()
	defer w.Stop()

	clip.SetText("foreground hook", "Editor")
	w.CheckNow()
	waitFor(t, func() bool { return store.Count() == 1 })
}

// Тест: recentSet ограничен и вытесняет старейший хэш
func TestRecentSet_FIFO(t *testing.T) {
	r := newRecentSet(2)
	h1, h2, h3 := hashContent("1"), hashContent("2"), hashContent("3")
	if r.seen(h1) || r.seen(h2) {
		t.Fatalf("fresh hashes must not be seen")
	}
	if !r.seen(h1) {
		t.Fatalf("repeat must be seen")
	}
	if r.seen(h3) {
		t.Fatalf("h3 is fresh")
	}
	// h1 вытеснен (ёмкость 2: остались h2, h3)
	if r.seen(h1) {
		t.Fatalf("oldest hash must have been evicted")
	}
}
