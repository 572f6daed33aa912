package pinboards

import "ClipKeeper/internal/cli/model"

// ApplyRemote применяет доску, пришедшую от сервера синхронизации:
// замена по ID либо добавление в конец порядка.
func (s *Store) ApplyRemote(b model.Pinboard) error {
	s.mu.Lock()
	replaced := false
	for i := range s.boards {
		if s.boards[i].ID == b.ID {
			s.boards[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		b.SortOrder = len(s.boards)
		s.boards = append(s.boards, b)
	}
	err := s.persist()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notify(b.ID)
	return nil
}
