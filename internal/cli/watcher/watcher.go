package watcher

import (
	"crypto/sha256"
	"net/url"
	"strings"
	"sync"
	"time"

	"ClipKeeper/internal/cli/model"

	"go.uber.org/zap"
)

// recentCap — ёмкость FIFO-набора недавних хэшей содержимого.
// Это дешёвый префильтр повторов в рамках одной сессии наблюдения,
// а не замена авторитетной дедупликации хранилища.
const recentCap = 100

// Inserter — порт к хранилищу записей.
type Inserter interface {
	Insert(candidate model.Item) (model.Item, error)
}

// Sensitivity — порт к классификатору чувствительности.
type Sensitivity interface {
	ShouldIgnore(content string) bool
	ShouldClear(content string) bool
}

// Config — параметры наблюдателя.
type Config struct {
	PollInterval time.Duration
	// ClearDelay вычисляется на каждое срабатывание: задержка может быть
	// изменена пользователем между срабатываниями.
	ClearDelay func() time.Duration
}

// Watcher опрашивает буфер обмена и отправляет новые записи в хранилище.
// Состояния: Idle ↔ Monitoring. Такты сериализованы одной горутиной —
// перекрытие тактов исключено по построению.
type Watcher struct {
	clip       Clipboard
	classifier Sensitivity
	store      Inserter
	log        *zap.SugaredLogger
	cfg        Config

	mu         sync.Mutex
	monitoring bool
	lastChange int
	recent     *recentSet
	clearTimer *time.Timer // одноместный регистр отложенной очистки
	stop       chan struct{}
	checkNow   chan struct{}
	done       chan struct{}
}

// New создаёт наблюдатель в состоянии Idle.
func New(clip Clipboard, classifier Sensitivity, store Inserter, log *zap.SugaredLogger, cfg Config) *Watcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Watcher{
		clip:       clip,
		classifier: classifier,
		store:      store,
		log:        log,
		cfg:        cfg,
	}
}

// Start переводит наблюдатель в Monitoring: фиксирует базовое значение
// счётчика изменений и запускает периодический опрос. Повторный Start — no-op.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.monitoring {
		w.mu.Unlock()
		return
	}
	w.monitoring = true
	w.lastChange = w.clip.ChangeCount()
	w.recent = newRecentSet(recentCap)
	w.stop = make(chan struct{})
	w.checkNow = make(chan struct{}, 1)
	w.done = make(chan struct{})
	w.mu.Unlock()

	w.log.Infow("clipboard watcher started", "poll_interval", w.cfg.PollInterval)
	go w.loop()
}

// Stop переводит наблюдатель в Idle, отменяет опрос и отложенную очистку.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.monitoring {
		w.mu.Unlock()
		return
	}
	w.monitoring = false
	close(w.stop)
	w.cancelClearLocked()
	done := w.done
	w.mu.Unlock()

	<-done
	w.log.Infow("clipboard watcher stopped")
}

// CheckNow форсирует внеочередную проверку буфера (хук возврата приложения
// на передний план). В состоянии Idle ничего не делает.
func (w *Watcher) CheckNow() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.monitoring {
		return
	}
	select {
	case w.checkNow <- struct{}{}:
	default:
	}
}

func (w *Watcher) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.tick()
		case <-w.checkNow:
			w.tick()
		}
	}
}

// tick — одна короткая неблокирующая единица работы: сравнить счётчик,
// классифицировать новый payload, отфильтровать и отправить в хранилище.
func (w *Watcher) tick() {
	cc := w.clip.ChangeCount()

	w.mu.Lock()
	if cc == w.lastChange {
		w.mu.Unlock()
		return
	}
	w.lastChange = cc
	// буфер изменился — запланированная ранее очистка больше не актуальна
	w.cancelClearLocked()
	w.mu.Unlock()

	candidate, ok := w.buildCandidate()
	if !ok {
		return
	}

	raw := candidate.RawContent()
	if w.recent.seen(hashContent(raw)) {
		return
	}

	if candidate.Kind == model.KindText || candidate.Kind == model.KindLink {
		if w.classifier.ShouldIgnore(raw) {
			w.log.Debugw("sensitive content suppressed", "kind", candidate.Kind)
			if w.classifier.ShouldClear(raw) {
				w.scheduleClear()
			}
			return
		}
	}

	if _, err := w.store.Insert(candidate); err != nil {
		w.log.Errorw("failed to store clipboard item", "error", err)
		return
	}
	w.log.Debugw("clipboard item captured", "kind", candidate.Kind)
}

// buildCandidate классифицирует текущий payload буфера по виду содержимого:
// текст (ссылки распознаются внутри текста), затем изображение, затем файл.
func (w *Watcher) buildCandidate() (model.Item, bool) {
	now := time.Now()
	source := w.clip.SourceApp()

	if s, ok := w.clip.Text(); ok {
		if strings.TrimSpace(s) == "" {
			return model.Item{}, false
		}
		if isLink(s) {
			return model.NewLinkItem(strings.TrimSpace(s), "", source, now), true
		}
		return model.NewTextItem(s, source, now), true
	}
	if data, ok := w.clip.Image(); ok {
		return model.NewImageItem(data, nil, source, now), true
	}
	if ref, name, ok := w.clip.FileRef(); ok {
		return model.NewFileItem(ref, name, source, now), true
	}
	return model.Item{}, false
}

// isLink распознаёт абсолютный URL.
func isLink(s string) bool {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \n\t") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// scheduleClear ставит отложенную очистку буфера. Регистр одноместный:
// новая постановка вытесняет предыдущую; смена буфера или Stop отменяют её.
func (w *Watcher) scheduleClear() {
	delay := time.Duration(0)
	if w.cfg.ClearDelay != nil {
		delay = w.cfg.ClearDelay()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.monitoring {
		return
	}
	w.cancelClearLocked()
	w.clearTimer = time.AfterFunc(delay, func() {
		w.log.Infow("clearing sensitive clipboard content")
		w.clip.Clear()
	})
}

func (w *Watcher) cancelClearLocked() {
	if w.clearTimer != nil {
		w.clearTimer.Stop()
		w.clearTimer = nil
	}
}

func hashContent(s string) [32]byte {
	return sha256.Sum256([]byte(s))
}

// recentSet — ограниченный FIFO-набор хэшей недавнего содержимого.
type recentSet struct {
	mu    sync.Mutex
	cap   int
	order [][32]byte
	set   map[[32]byte]bool
}

func newRecentSet(capacity int) *recentSet {
	return &recentSet{cap: capacity, set: make(map[[32]byte]bool, capacity)}
}

// seen возвращает true, если хэш уже встречался; иначе запоминает его,
// вытесняя самый старый при переполнении.
func (r *recentSet) seen(h [32]byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.set[h] {
		return true
	}
	r.set[h] = true
	r.order = append(r.order, h)
	if len(r.order) > r.cap {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.set, oldest)
	}
	return false
}
