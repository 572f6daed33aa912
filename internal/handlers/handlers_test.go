package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cmodel "ClipKeeper/internal/cli/model"
	"ClipKeeper/internal/config"
	"ClipKeeper/internal/handlers"
	"ClipKeeper/internal/middleware"
	"ClipKeeper/internal/model"
	"ClipKeeper/internal/repo"
	"ClipKeeper/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- in-memory fakes ---

type memUserRepo struct {
	byLogin map[string]*model.User
	nextID  int64
}

var _ repo.UserRepository = (*memUserRepo)(nil)

func (f *memUserRepo) Create(_ context.Context, user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	f.byLogin[user.Login] = user
	return nil
}

func (f *memUserRepo) GetByLogin(_ context.Context, login string) (*model.User, error) {
	return f.byLogin[login], nil
}

type memSnapshotRepo struct {
	items  map[string]model.SyncedItem
	boards map[string]model.SyncedPinboard
}

var _ repo.SnapshotRepository = (*memSnapshotRepo)(nil)

func (f *memSnapshotRepo) GetItem(_ context.Context, userID int64, id string) (*model.SyncedItem, error) {
	row, ok := f.items[id]
	if !ok || row.UserID != userID {
		return nil, nil
	}
	return &row, nil
}

func (f *memSnapshotRepo) UpsertItem(_ context.Context, row *model.SyncedItem) error {
	row.UpdatedAt = time.Now()
	f.items[row.ID] = *row
	return nil
}

func (f *memSnapshotRepo) ItemsUpdatedSince(_ context.Context, userID int64, since time.Time) ([]model.SyncedItem, error) {
	var out []model.SyncedItem
	for _, row := range f.items {
		if row.UserID == userID && row.UpdatedAt.After(since) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *memSnapshotRepo) GetPinboard(_ context.Context, userID int64, id string) (*model.SyncedPinboard, error) {
	row, ok := f.boards[id]
	if !ok || row.UserID != userID {
		return nil, nil
	}
	return &row, nil
}

func (f *memSnapshotRepo) UpsertPinboard(_ context.Context, row *model.SyncedPinboard) error {
	row.UpdatedAt = time.Now()
	f.boards[row.ID] = *row
	return nil
}

func (f *memSnapshotRepo) PinboardsUpdatedSince(_ context.Context, userID int64, since time.Time) ([]model.SyncedPinboard, error) {
	var out []model.SyncedPinboard
	for _, row := range f.boards {
		if row.UserID == userID && row.UpdatedAt.After(since) {
			out = append(out, row)
		}
	}
	return out, nil
}

// --- helpers ---

func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	cfg := &config.Config{AuthSecret: "test-secret"}
	logger := zap.NewNop().Sugar()

	userSvc := service.NewUserService(&memUserRepo{byLogin: map[string]*model.User{}})
	syncSvc := service.NewSyncService(&memSnapshotRepo{
		items:  map[string]model.SyncedItem{},
		boards: map[string]model.SyncedPinboard{},
	})

	h := handlers.NewHandler(userSvc, syncSvc, logger, cfg)
	return h.Router, cfg
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

func hasAuthCookie(rr *httptest.ResponseRecorder) bool {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "auth_token" {
			return true
		}
	}
	return false
}

// --- tests ---

func TestUser_Register(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("ok", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"login":"john","password":"p"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, hasAuthCookie(rr), "Set-Cookie auth_token expected")
	})

	t.Run("conflict", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"login":"john","password":"p"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{broken`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUser_Login(t *testing.T) {
	router, _ := newTestRouter(t)

	reg := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"login":"alice","password":"secret"}`))
	rrReg := httptest.NewRecorder()
	router.ServeHTTP(rrReg, reg)
	require.Equal(t, http.StatusOK, rrReg.Code)

	t.Run("ok", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"login":"alice","password":"secret"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, hasAuthCookie(rr))
	})

	t.Run("unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"login":"alice","password":"bad"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUser_Status(t *testing.T) {
	router, cfg := newTestRouter(t)

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/test", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Result string `json:"result"`
		}
		_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&body)
		assert.Equal(t, "anonymous", body.Result)
	})

	t.Run("authorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/test", nil)
		addAuthCookie(t, req, 77, cfg.AuthSecret)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Result string `json:"result"`
		}
		_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&body)
		assert.Contains(t, body.Result, "User ID = 77")
	})
}

func TestSync_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{"items":[],"pinboards":[]}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSync_AppliesClientSnapshot(t *testing.T) {
	router, cfg := newTestRouter(t)

	it := cmodel.NewTextItem("synced note", "Editor", time.Now().UTC())
	body, err := json.Marshal(map[string]any{
		"items":     []cmodel.Item{it},
		"pinboards": []cmodel.Pinboard{},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthCookie(t, req, 9, cfg.AuthSecret)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Applied         []string `json:"applied"`
		Conflicts       []any    `json:"conflicts"`
		ServerItems     []any    `json:"server_items"`
		ServerPinboards []any    `json:"server_pinboards"`
		ServerTime      string   `json:"server_time"`
	}
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&resp))
	assert.Equal(t, []string{it.ID}, resp.Applied)
	assert.Empty(t, resp.Conflicts)

	_, err = time.Parse(time.RFC3339, resp.ServerTime)
	assert.NoError(t, err, "server_time must be RFC3339")
}

// некорректный last_sync_at не приводит к 400 — хендлер логгирует и продолжает
func TestSync_InvalidLastSyncAtStillOK(t *testing.T) {
	router, cfg := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{"last_sync_at":"bad","items":[],"pinboards":[]}`))
	req.Header.Set("Content-Type", "application/json")
	addAuthCookie(t, req, 9, cfg.AuthSecret)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var m map[string]any
	_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&m)
	_, hasApplied := m["applied"]
	_, hasConflicts := m["conflicts"]
	_, hasServerTime := m["server_time"]
	assert.True(t, hasApplied && hasConflicts && hasServerTime)
}

func TestSync_SecondDeviceReceivesItems(t *testing.T) {
	router, cfg := newTestRouter(t)

	// устройство A загружает запись
	it := cmodel.NewTextItem("cross-device", "", time.Now().UTC())
	bodyA, _ := json.Marshal(map[string]any{"items": []cmodel.Item{it}, "pinboards": []cmodel.Pinboard{}})
	reqA := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader(bodyA))
	addAuthCookie(t, reqA, 5, cfg.AuthSecret)
	rrA := httptest.NewRecorder()
	router.ServeHTTP(rrA, reqA)
	require.Equal(t, http.StatusOK, rrA.Code)

	// устройство B с меткой последней синхронизации в прошлом получает её
	since := time.Now().Add(-time.Hour).Format(time.RFC3339)
	bodyB, _ := json.Marshal(map[string]any{"last_sync_at": since, "items": []cmodel.Item{}, "pinboards": []cmodel.Pinboard{}})
	reqB := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader(bodyB))
	addAuthCookie(t, reqB, 5, cfg.AuthSecret)
	rrB := httptest.NewRecorder()
	router.ServeHTTP(rrB, reqB)
	require.Equal(t, http.StatusOK, rrB.Code)

	var resp struct {
		ServerItems []cmodel.Item `json:"server_items"`
	}
	require.NoError(t, json.NewDecoder(bytes.NewReader(rrB.Body.Bytes())).Decode(&resp))
	require.Len(t, resp.ServerItems, 1)
	assert.Equal(t, it.ID, resp.ServerItems[0].ID)
}
