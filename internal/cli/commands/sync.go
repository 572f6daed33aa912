package commands

import (
	"context"
	"fmt"
	"strings"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/cli/service"
	"ClipKeeper/internal/config"
)

type syncCmd struct{}

func (syncCmd) Name() string { return "sync" }
func (syncCmd) Description() string {
	return "Синхронизировать историю и доски с сервером"
}
func (syncCmd) Usage() string { return "sync" }

func (syncCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	fmt.Fprintln(Out, "→ Запуск синхронизации…")
	res := service.SyncAll(cfg, app.Items, app.Pinboards, app.Settings)
	switch res.Status {
	case service.SyncApplied:
		fmt.Fprintf(Out, "✓ Применено изменений: %d\n", res.Applied)
	case service.SyncConflicts:
		fmt.Fprintf(Out, "! Конфликты (%d): %s\n", len(res.Conflicts), strings.Join(res.Conflicts, "; "))
		fmt.Fprintf(Out, "✓ Применено изменений: %d\n", res.Applied)
	case service.SyncUnauthorized:
		fmt.Fprintln(Out, "× Нужна авторизация: выполните login")
	case service.SyncFailed:
		fmt.Fprintf(Out, "× Ошибка синхронизации: %v\n", res.Err)
	}
	return nil
}

func init() { RegisterCmd(syncCmd{}) }
