package service

import (
	"encoding/json"
	"fmt"
	"time"

	"ClipKeeper/internal/cli/api"
	"ClipKeeper/internal/cli/model"
	fsrepo "ClipKeeper/internal/cli/repo/fs"
	"ClipKeeper/internal/config"
)

// syncRequest/response DTOs соответствуют серверному API /api/sync
type syncRequest struct {
	LastSyncAt string           `json:"last_sync_at,omitempty"`
	Items      []model.Item     `json:"items"`
	Pinboards  []model.Pinboard `json:"pinboards"`
}

type conflictDTO struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type syncResponse struct {
	Applied         []string         `json:"applied"`
	Conflicts       []conflictDTO    `json:"conflicts"`
	ServerItems     []model.Item     `json:"server_items"`
	ServerPinboards []model.Pinboard `json:"server_pinboards"`
	ServerTime      string           `json:"server_time"`
}

// SyncStatus — итог попытки синхронизации для слоя представления.
// Ядро не ретраит само: любая политика повторов — дело внешнего коллаборатора.
type SyncStatus string

const (
	SyncApplied      SyncStatus = "applied"
	SyncConflicts    SyncStatus = "conflicts"
	SyncUnauthorized SyncStatus = "unauthorized"
	SyncFailed       SyncStatus = "failed"
)

// SyncResult — статусное значение синхронизации.
type SyncResult struct {
	Status    SyncStatus
	Applied   int
	Conflicts []string // краткие описания конфликтов
	Err       error
}

// ItemSnapshot — порт к хранилищу записей для синхронизации.
type ItemSnapshot interface {
	List() []model.Item
	ApplyRemote(it model.Item) error
}

// PinboardSnapshot — порт к хранилищу досок для синхронизации.
type PinboardSnapshot interface {
	List() []model.Pinboard
	ApplyRemote(b model.Pinboard) error
}

// SyncClock — отметка последней успешной синхронизации.
type SyncClock interface {
	LastSyncAt() time.Time
	SetLastSyncAt(t time.Time) error
}

// SyncAll отправляет на сервер снимок записей и досок одним запросом
// (best-effort, fire-and-forget) и применяет присланные сервером изменения.
func SyncAll(cfg *config.Config, itemsSrc ItemSnapshot, boardsSrc PinboardSnapshot, clock SyncClock) SyncResult {
	if cfg == nil {
		return SyncResult{Status: SyncFailed, Err: fmt.Errorf("nil config")}
	}
	token, err := (fsrepo.AuthFSStore{}).Load()
	if err != nil {
		return SyncResult{Status: SyncUnauthorized, Err: fmt.Errorf("нет токена авторизации: %w", err)}
	}

	payload := syncRequest{
		Items:     itemsSrc.List(),
		Pinboards: boardsSrc.List(),
	}
	if last := clock.LastSyncAt(); !last.IsZero() {
		payload.LastSyncAt = last.UTC().Format(time.RFC3339)
	}

	url := cfg.ServerURL + "/api/sync"
	resp, body, err := api.PostJSON(url, payload, token)
	if err != nil {
		return SyncResult{Status: SyncFailed, Err: err}
	}
	if resp.StatusCode == 401 {
		return SyncResult{Status: SyncUnauthorized, Err: fmt.Errorf("server returned 401")}
	}
	if resp.StatusCode != 200 {
		return SyncResult{Status: SyncFailed, Err: fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))}
	}

	var sr syncResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return SyncResult{Status: SyncFailed, Err: err}
	}

	// применяем изменения сервера: конфликт уже разрешён на той стороне
	for _, it := range sr.ServerItems {
		if err := itemsSrc.ApplyRemote(it); err != nil {
			return SyncResult{Status: SyncFailed, Err: fmt.Errorf("apply server item: %w", err)}
		}
	}
	for _, b := range sr.ServerPinboards {
		if err := boardsSrc.ApplyRemote(b); err != nil {
			return SyncResult{Status: SyncFailed, Err: fmt.Errorf("apply server pinboard: %w", err)}
		}
	}

	if t, err := time.Parse(time.RFC3339, sr.ServerTime); err == nil {
		// не фатальная ошибка: отметку можно обновить при следующем заходе
		_ = clock.SetLastSyncAt(t)
	}

	res := SyncResult{Status: SyncApplied, Applied: len(sr.Applied)}
	if len(sr.Conflicts) > 0 {
		res.Status = SyncConflicts
		for _, c := range sr.Conflicts {
			res.Conflicts = append(res.Conflicts, fmt.Sprintf("%s: %s", c.ID, c.Reason))
		}
	}
	return res
}
