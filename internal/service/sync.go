package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	cmodel "ClipKeeper/internal/cli/model"
	"ClipKeeper/internal/model"
	"ClipKeeper/internal/repo"
)

// SyncRequest — вход сервиса синхронизации: снимок клиента.
type SyncRequest struct {
	LastSyncAt *time.Time
	Items      []cmodel.Item
	Pinboards  []cmodel.Pinboard
}

// Conflict — запись, для которой победила серверная версия.
type Conflict struct {
	ID     string
	Reason string
}

// SyncResult — результат слияния снимка клиента с состоянием сервера.
type SyncResult struct {
	Applied         []string
	Conflicts       []Conflict
	ServerItems     []cmodel.Item
	ServerPinboards []cmodel.Pinboard
	ServerTime      time.Time
}

// SyncService сливает клиентские снимки с серверными копиями.
// Политика конфликтов: базой становится сторона с более новой меткой
// времени, Tags и PinboardIDs объединяются (см. cmodel.MergeItems).
type SyncService struct {
	repo repo.SnapshotRepository
}

// NewSyncService создаёт сервис синхронизации.
func NewSyncService(r repo.SnapshotRepository) *SyncService {
	return &SyncService{repo: r}
}

// Sync применяет снимок клиента и возвращает изменения, которые клиент
// должен применить у себя.
func (s *SyncService) Sync(ctx context.Context, userID int64, req SyncRequest) (SyncResult, error) {
	res := SyncResult{ServerTime: time.Now().UTC()}
	pushed := make(map[string]bool, len(req.Items)+len(req.Pinboards))

	for _, clientItem := range req.Items {
		pushed[clientItem.ID] = true
		merged, conflict, err := s.mergeItem(ctx, userID, clientItem)
		if err != nil {
			return SyncResult{}, err
		}
		if conflict != nil {
			res.Conflicts = append(res.Conflicts, *conflict)
			res.ServerItems = append(res.ServerItems, merged)
			continue
		}
		res.Applied = append(res.Applied, clientItem.ID)
	}

	for _, clientBoard := range req.Pinboards {
		pushed[clientBoard.ID] = true
		merged, conflict, err := s.mergePinboard(ctx, userID, clientBoard)
		if err != nil {
			return SyncResult{}, err
		}
		if conflict != nil {
			res.Conflicts = append(res.Conflicts, *conflict)
			res.ServerPinboards = append(res.ServerPinboards, merged)
			continue
		}
		res.Applied = append(res.Applied, clientBoard.ID)
	}

	// изменения с других устройств, не затронутые этим снимком
	if req.LastSyncAt != nil {
		rows, err := s.repo.ItemsUpdatedSince(ctx, userID, *req.LastSyncAt)
		if err != nil {
			return SyncResult{}, err
		}
		for _, row := range rows {
			if pushed[row.ID] {
				continue
			}
			var it cmodel.Item
			if err := json.Unmarshal(row.Payload, &it); err != nil {
				continue // повреждённый конверт пропускаем, не роняем синхронизацию
			}
			res.ServerItems = append(res.ServerItems, it)
		}
		boards, err := s.repo.PinboardsUpdatedSince(ctx, userID, *req.LastSyncAt)
		if err != nil {
			return SyncResult{}, err
		}
		for _, row := range boards {
			if pushed[row.ID] {
				continue
			}
			var b cmodel.Pinboard
			if err := json.Unmarshal(row.Payload, &b); err != nil {
				continue
			}
			res.ServerPinboards = append(res.ServerPinboards, b)
		}
	}

	return res, nil
}

// mergeItem сливает клиентскую версию записи с серверной. Возвращает
// итоговую версию и описание конфликта, если победила серверная сторона.
func (s *SyncService) mergeItem(ctx context.Context, userID int64, clientItem cmodel.Item) (cmodel.Item, *Conflict, error) {
	row, err := s.repo.GetItem(ctx, userID, clientItem.ID)
	if err != nil {
		return cmodel.Item{}, nil, err
	}

	if row == nil {
		if err := s.storeItem(ctx, userID, clientItem); err != nil {
			return cmodel.Item{}, nil, err
		}
		return clientItem, nil, nil
	}

	var serverItem cmodel.Item
	if err := json.Unmarshal(row.Payload, &serverItem); err != nil {
		// повреждённая серверная копия — клиентская версия становится истиной
		if err := s.storeItem(ctx, userID, clientItem); err != nil {
			return cmodel.Item{}, nil, err
		}
		return clientItem, nil, nil
	}

	clientPayload, _ := json.Marshal(clientItem)
	if bytes.Equal(clientPayload, row.Payload) {
		return clientItem, nil, nil
	}

	merged := cmodel.MergeItems(clientItem, serverItem)
	if err := s.storeItem(ctx, userID, merged); err != nil {
		return cmodel.Item{}, nil, err
	}
	if serverItem.Timestamp.After(clientItem.Timestamp) {
		return merged, &Conflict{ID: clientItem.ID, Reason: "server version is newer"}, nil
	}
	return merged, nil, nil
}

func (s *SyncService) storeItem(ctx context.Context, userID int64, it cmodel.Item) error {
	payload, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("marshal item envelope: %w", err)
	}
	return s.repo.UpsertItem(ctx, &model.SyncedItem{
		UserID:    userID,
		ID:        it.ID,
		Timestamp: it.Timestamp,
		Payload:   payload,
	})
}

// mergePinboard сливает доску: побеждает сторона с более новой ModifiedAt.
func (s *SyncService) mergePinboard(ctx context.Context, userID int64, clientBoard cmodel.Pinboard) (cmodel.Pinboard, *Conflict, error) {
	row, err := s.repo.GetPinboard(ctx, userID, clientBoard.ID)
	if err != nil {
		return cmodel.Pinboard{}, nil, err
	}

	if row == nil {
		if err := s.storePinboard(ctx, userID, clientBoard); err != nil {
			return cmodel.Pinboard{}, nil, err
		}
		return clientBoard, nil, nil
	}

	var serverBoard cmodel.Pinboard
	if err := json.Unmarshal(row.Payload, &serverBoard); err != nil {
		if err := s.storePinboard(ctx, userID, clientBoard); err != nil {
			return cmodel.Pinboard{}, nil, err
		}
		return clientBoard, nil, nil
	}

	if serverBoard.ModifiedAt.After(clientBoard.ModifiedAt) {
		return serverBoard, &Conflict{ID: clientBoard.ID, Reason: "server version is newer"}, nil
	}
	if err := s.storePinboard(ctx, userID, clientBoard); err != nil {
		return cmodel.Pinboard{}, nil, err
	}
	return clientBoard, nil, nil
}

func (s *SyncService) storePinboard(ctx context.Context, userID int64, b cmodel.Pinboard) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal pinboard envelope: %w", err)
	}
	return s.repo.UpsertPinboard(ctx, &model.SyncedPinboard{
		UserID:     userID,
		ID:         b.ID,
		ModifiedAt: b.ModifiedAt,
		Payload:    payload,
	})
}
