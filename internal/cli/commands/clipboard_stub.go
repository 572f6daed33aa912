package commands

import "ClipKeeper/internal/cli/watcher"

// PlatformClipboard возвращает системный буфер обмена, если для платформы
// есть нативная реализация. Сейчас поставляется только in-memory реализация
// для тестов и эмуляции; нативные бэкенды подключаются build-тегами.
func PlatformClipboard() (watcher.Clipboard, bool) {
	return nil, false
}
