package items

import "ClipKeeper/internal/cli/model"

// ApplyRemote применяет запись, пришедшую от сервера синхронизации:
// существующая запись с тем же ID заменяется, новая вставляется в позицию по
// её метке времени. В отличие от Insert метка времени не обновляется и
// дедупликации по содержимому нет: конфликт уже разрешён сервером.
func (s *Store) ApplyRemote(it model.Item) error {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == it.ID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	pos := len(s.items)
	for i := range s.items {
		if s.items[i].Timestamp.Before(it.Timestamp) {
			pos = i
			break
		}
	}
	s.items = append(s.items[:pos], append([]model.Item{it}, s.items[pos:]...)...)
	err := s.persist()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notify(it.ID)
	return nil
}
