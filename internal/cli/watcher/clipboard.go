package watcher

import "sync"

// Clipboard — порт к платформенному буферу обмена. Ядро только читает эту
// поверхность; единственная запись — Clear, используемая отложенной очисткой.
type Clipboard interface {
	// ChangeCount — монотонный счётчик изменений буфера обмена платформы.
	ChangeCount() int

	// Text возвращает текущий текстовый payload, ok=false если его нет.
	Text() (s string, ok bool)

	// Image возвращает текущие байты изображения.
	Image() (data []byte, ok bool)

	// FileRef возвращает ссылку на файл (байты закладки) и имя файла.
	FileRef() (ref []byte, name string, ok bool)

	// SourceApp — идентификатор приложения-источника (best-effort, может быть пустым).
	SourceApp() string

	// Clear очищает буфер обмена.
	Clear()
}

// Memory — in-memory реализация Clipboard для тестов и платформ без биндинга.
type Memory struct {
	mu      sync.Mutex
	changes int
	text    string
	hasText bool
	image   []byte
	ref     []byte
	refName string
	source  string
}

var _ Clipboard = (*Memory)(nil)

// NewMemory создаёт пустой буфер обмена.
func NewMemory() *Memory {
	return &Memory{}
}

// SetText кладёт текст в буфер и увеличивает счётчик изменений.
func (m *Memory) SetText(s, sourceApp string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	m.text, m.hasText = s, true
	m.source = sourceApp
	m.changes++
}

// SetImage кладёт изображение в буфер.
func (m *Memory) SetImage(data []byte, sourceApp string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	m.image = data
	m.source = sourceApp
	m.changes++
}

// SetFileRef кладёт ссылку на файл в буфер.
func (m *Memory) SetFileRef(ref []byte, name, sourceApp string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	m.ref, m.refName = ref, name
	m.source = sourceApp
	m.changes++
}

func (m *Memory) reset() {
	m.text, m.hasText = "", false
	m.image = nil
	m.ref, m.refName = nil, ""
	m.source = ""
}

func (m *Memory) ChangeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.changes
}

func (m *Memory) Text() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.hasText
}

func (m *Memory) Image() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.image, len(m.image) > 0
}

func (m *Memory) FileRef() ([]byte, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ref, m.refName, len(m.ref) > 0
}

func (m *Memory) SourceApp() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	m.changes++
}
