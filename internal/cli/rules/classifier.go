package rules

import (
	"crypto/sha256"
	"regexp"
	"sync"

	"ClipKeeper/internal/cli/model"
)

// MaskPlaceholder подставляется вместо каждого совпавшего фрагмента при маскировании.
const MaskPlaceholder = "•••••"

// maxCacheEntries — предел кэша вердиктов; при переполнении кэш
// прореживается примерно до половины.
const maxCacheEntries = 500

// Source — поставщик включённых правил в хранимом порядке.
type Source interface {
	Enabled() []model.Rule
}

// Classifier вычисляет вердикт чувствительности для текста.
// Классификация — по первому совпавшему правилу; маскирование — по всем
// mask-правилам сразу (эта асимметрия намеренная).
type Classifier struct {
	rules Source

	mu       sync.Mutex
	cache    map[[32]byte]model.Verdict
	compiled map[string]*regexp.Regexp // pattern -> compiled
}

// NewClassifier создаёт классификатор поверх источника правил.
func NewClassifier(rules Source) *Classifier {
	return &Classifier{
		rules:    rules,
		cache:    make(map[[32]byte]model.Verdict),
		compiled: make(map[string]*regexp.Regexp),
	}
}

// InvalidateCache сбрасывает кэш вердиктов. Обязателен при любой смене
// набора правил: закэшированный вердикт становится недействительным.
func (c *Classifier) InvalidateCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[[32]byte]model.Verdict)
	c.compiled = make(map[string]*regexp.Regexp)
}

// compile возвращает скомпилированный паттерн из кэша компиляций.
// Некомпилируемые паттерны сюда не попадают: их отклоняет хранилище правил.
func (c *Classifier) compile(pattern string) *regexp.Regexp {
	if re, ok := c.compiled[pattern]; ok {
		return re
	}
	re, err := CompilePattern(pattern)
	if err != nil {
		return nil
	}
	c.compiled[pattern] = re
	return re
}

// Classify возвращает вердикт для содержимого: первое совпавшее включённое
// правило в хранимом порядке. Результат кэшируется по хэшу содержимого.
func (c *Classifier) Classify(content string) model.Verdict {
	key := sha256.Sum256([]byte(content))

	c.mu.Lock()
	if v, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	verdict := model.Verdict{}
	for _, r := range c.rules.Enabled() {
		c.mu.Lock()
		re := c.compile(r.Pattern)
		c.mu.Unlock()
		if re == nil {
			continue
		}
		if re.MatchString(content) {
			verdict = model.Verdict{Matched: true, Action: r.Action}
			break
		}
	}

	c.mu.Lock()
	c.cache[key] = verdict
	if len(c.cache) > maxCacheEntries {
		c.evictLocked()
	}
	c.mu.Unlock()
	return verdict
}

// evictLocked прореживает кэш до половины предела. Порядок обхода map
// недетерминирован между запусками, но память ограничена всегда.
func (c *Classifier) evictLocked() {
	target := maxCacheEntries / 2
	for k := range c.cache {
		if len(c.cache) <= target {
			break
		}
		delete(c.cache, k)
	}
}

// ShouldIgnore: запись не должна попасть в историю.
func (c *Classifier) ShouldIgnore(content string) bool {
	v := c.Classify(content)
	return v.Matched && (v.Action == model.ActionIgnore || v.Action == model.ActionClear)
}

// ShouldClear: дополнительно к игнорированию буфер обмена надо очистить с задержкой.
func (c *Classifier) ShouldClear(content string) bool {
	v := c.Classify(content)
	return v.Matched && v.Action == model.ActionClear
}

// ShouldMask: при показе содержимое надо маскировать.
func (c *Classifier) ShouldMask(content string) bool {
	v := c.Classify(content)
	return v.Matched && v.Action == model.ActionMask
}

// Mask заменяет каждый фрагмент, совпавший с любым включённым mask-правилом,
// на фиксированный плейсхолдер. В отличие от Classify проверяются все правила,
// а не только первое совпавшее.
func (c *Classifier) Mask(content string) string {
	out := content
	for _, r := range c.rules.Enabled() {
		if r.Action != model.ActionMask {
			continue
		}
		c.mu.Lock()
		re := c.compile(r.Pattern)
		c.mu.Unlock()
		if re == nil {
			continue
		}
		out = re.ReplaceAllString(out, MaskPlaceholder)
	}
	return out
}
